package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates an empty database with a sample draft so the API has
// something to serve on a fresh development install. No-op when any content
// already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM content").Scan(&count); err != nil {
		return fmt.Errorf("seed check content: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO content (type, title, description, body, slug, published)
		VALUES ($1, $2, $3, $4, $5, FALSE)
	`, "blog", "Welcome to MediaCMS",
		"A sample draft created on first run.",
		"<p>Edit or delete this draft through the content API.</p>",
		"welcome-to-mediacms",
	)
	if err != nil {
		return fmt.Errorf("seed insert sample content: %w", err)
	}

	slog.Info("database seeded with sample draft", "slug", "welcome-to-mediacms")
	return nil
}
