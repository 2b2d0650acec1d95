// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access for the content collection.
// ContentStore validates records against the schema invariants before any
// persistence side effect.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"mediacms/internal/database"
	"mediacms/internal/models"
)

// ErrNotFound is returned when an id does not resolve to an existing record.
var ErrNotFound = errors.New("content not found")

// ErrDuplicateSlug is returned when an insert or update would violate the
// global slug uniqueness constraint. The existing record is left untouched.
var ErrDuplicateSlug = errors.New("slug already in use")

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

const contentColumns = `id, type, title, description, body, audio_url, video_url,
	       image_url, slug, author, published, published_at, created_at, updated_at`

// ListFilter narrows List results. The zero value returns everything.
type ListFilter struct {
	Type          *models.ContentType
	PublishedOnly bool
}

// ContentStore handles all content-related database operations. It obtains
// its connection through the shared lazy handle, so the first operation of
// the process establishes the pool and later ones reuse it.
type ContentStore struct {
	conn *database.Lazy
}

// NewContentStore creates a ContentStore over the given lazy connection handle.
func NewContentStore(conn *database.Lazy) *ContentStore {
	return &ContentStore{conn: conn}
}

// List returns content matching the filter, newest createdAt first.
func (s *ContentStore) List(filter ListFilter) ([]models.Content, error) {
	db, err := s.conn.DB()
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + contentColumns + ` FROM content`
	var args []any
	var where []string

	if filter.Type != nil {
		args = append(args, *filter.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.PublishedOnly {
		where = append(where, "published = TRUE")
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	items := []models.Content{}
	for rows.Next() {
		var c models.Content
		if err := scanContent(rows.Scan, &c); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a content record by its UUID. Returns nil if not found.
func (s *ContentStore) FindByID(id uuid.UUID) (*models.Content, error) {
	db, err := s.conn.DB()
	if err != nil {
		return nil, err
	}

	c := &models.Content{}
	row := db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE id = $1`, id)
	if err := scanContent(row.Scan, c); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// Create validates and inserts a new content record, returning the stored
// record with its generated id and timestamps. Validation completes before
// any persistence side effect. The author defaults when blank; publishedAt
// is stamped when the record is created already published and carries none.
func (s *ContentStore) Create(c *models.Content) (*models.Content, error) {
	if c.Author == "" {
		c.Author = models.DefaultAuthor
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Published && c.PublishedAt == nil {
		now := time.Now()
		c.PublishedAt = &now
	}

	db, err := s.conn.DB()
	if err != nil {
		return nil, err
	}

	result := &models.Content{}
	row := db.QueryRow(`
		INSERT INTO content (type, title, description, body, audio_url, video_url,
		                     image_url, slug, author, published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+contentColumns,
		c.Type, c.Title, c.Description, c.Body, c.AudioURL, c.VideoURL,
		c.ImageURL, c.Slug, c.Author, c.Published, c.PublishedAt,
	)
	if err := scanContent(row.Scan, result); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create content: %w", err)
	}
	return result, nil
}

// Update merges the patch into the stored record, revalidates the merged
// record against the same type-conditional rules, and persists it with a
// refreshed updatedAt. A transition into the published state stamps
// publishedAt when none is set; unpublishing leaves it in place.
func (s *ContentStore) Update(id uuid.UUID, patch *models.ContentPatch) (*models.Content, error) {
	current, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}

	wasPublished := current.Published
	patch.Apply(current)
	if err := current.Validate(); err != nil {
		return nil, err
	}
	if current.Published && !wasPublished && current.PublishedAt == nil {
		now := time.Now()
		current.PublishedAt = &now
	}

	db, err := s.conn.DB()
	if err != nil {
		return nil, err
	}

	result := &models.Content{}
	row := db.QueryRow(`
		UPDATE content SET
			type = $1, title = $2, description = $3, body = $4, audio_url = $5,
			video_url = $6, image_url = $7, slug = $8, author = $9,
			published = $10, published_at = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING `+contentColumns,
		current.Type, current.Title, current.Description, current.Body,
		current.AudioURL, current.VideoURL, current.ImageURL, current.Slug,
		current.Author, current.Published, current.PublishedAt, id,
	)
	if err := scanContent(row.Scan, result); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("update content: %w", err)
	}
	return result, nil
}

// Delete removes a content record by id. Irreversible.
func (s *ContentStore) Delete(id uuid.UUID) error {
	db, err := s.conn.DB()
	if err != nil {
		return err
	}

	res, err := db.Exec(`DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanContent reads one content row using the given Scan function.
func scanContent(scan func(...any) error, c *models.Content) error {
	return scan(
		&c.ID, &c.Type, &c.Title, &c.Description, &c.Body, &c.AudioURL,
		&c.VideoURL, &c.ImageURL, &c.Slug, &c.Author, &c.Published,
		&c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
}

// isUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation. The only unique constraint on content is the slug.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
