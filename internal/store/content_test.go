// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"mediacms/internal/models"
)

func strPtr(s string) *string { return &s }

func testSlug(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func blogDraft(slug string) *models.Content {
	return &models.Content{
		Type:        models.ContentTypeBlog,
		Title:       "Test Post",
		Description: "A test post",
		Body:        strPtr("<p>Test body</p>"),
		Slug:        slug,
	}
}

func TestContentStoreCreateAndFind(t *testing.T) {
	s := NewContentStore(testConn(t))

	slug := testSlug("test-create")
	t.Cleanup(func() { cleanContent(t, s.conn, slug) })

	created, err := s.Create(blogDraft(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.Author != models.DefaultAuthor {
		t.Errorf("author: got %q, want default %q", created.Author, models.DefaultAuthor)
	}
	if created.Published {
		t.Error("expected draft by default")
	}
	if created.PublishedAt != nil {
		t.Error("expected nil publishedAt for draft")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v on creation", created.CreatedAt, created.UpdatedAt)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected content, got nil")
	}
	if found.Slug != slug {
		t.Errorf("slug: got %q, want %q", found.Slug, slug)
	}
}

func TestContentStoreCreateValidatesByType(t *testing.T) {
	s := NewContentStore(testConn(t))

	// A podcast without audioUrl must fail before any persistence.
	slug := testSlug("test-invalid")
	_, err := s.Create(&models.Content{
		Type:        models.ContentTypePodcast,
		Title:       "No Audio",
		Description: "missing payload",
		Slug:        slug,
	})

	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *models.ValidationError, got %v", err)
	}

	// Nothing was written.
	list, err := s.List(ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, c := range list {
		if c.Slug == slug {
			t.Error("invalid draft was persisted")
		}
	}
}

func TestContentStoreCreatePublishedStampsTimestamp(t *testing.T) {
	s := NewContentStore(testConn(t))

	slug := testSlug("test-pub")
	t.Cleanup(func() { cleanContent(t, s.conn, slug) })

	draft := blogDraft(slug)
	draft.Published = true

	created, err := s.Create(draft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.PublishedAt == nil {
		t.Error("expected publishedAt stamped for published content")
	}
}

func TestContentStoreDuplicateSlug(t *testing.T) {
	s := NewContentStore(testConn(t))

	slug := testSlug("test-dup")
	t.Cleanup(func() { cleanContent(t, s.conn, slug) })

	first, err := s.Create(blogDraft(slug))
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}

	second := blogDraft(slug)
	second.Title = "Second"
	if _, err := s.Create(second); !errors.Is(err, ErrDuplicateSlug) {
		t.Fatalf("Create second: got %v, want ErrDuplicateSlug", err)
	}

	// The first record is unaffected.
	found, err := s.FindByID(first.ID)
	if err != nil || found == nil {
		t.Fatalf("FindByID after duplicate: %v, %v", found, err)
	}
	if found.Title != "Test Post" {
		t.Errorf("first record changed: title %q", found.Title)
	}
}

func TestContentStoreUpdate(t *testing.T) {
	s := NewContentStore(testConn(t))

	slug := testSlug("test-update")
	t.Cleanup(func() { cleanContent(t, s.conn, slug) })

	created, err := s.Create(blogDraft(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	time.Sleep(10 * time.Millisecond) // ensure a measurable updatedAt advance

	published := true
	updated, err := s.Update(created.ID, &models.ContentPatch{
		Title:     strPtr("Updated Title"),
		Published: &published,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != "Updated Title" {
		t.Errorf("title: got %q, want %q", updated.Title, "Updated Title")
	}
	if updated.Description != "A test post" {
		t.Errorf("description changed by partial update: %q", updated.Description)
	}
	if !updated.Published {
		t.Error("published: got false, want true")
	}
	if updated.PublishedAt == nil {
		t.Error("expected publishedAt stamped on first publish")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updatedAt not advanced: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
}

func TestContentStoreUpdateUnpublishKeepsTimestamp(t *testing.T) {
	s := NewContentStore(testConn(t))

	slug := testSlug("test-unpub")
	t.Cleanup(func() { cleanContent(t, s.conn, slug) })

	draft := blogDraft(slug)
	draft.Published = true
	created, err := s.Create(draft)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	unpublished := false
	updated, err := s.Update(created.ID, &models.ContentPatch{Published: &unpublished})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Published {
		t.Error("published: got true, want false")
	}
	if updated.PublishedAt == nil {
		t.Error("publishedAt cleared on unpublish")
	}
}

func TestContentStoreUpdateRevalidates(t *testing.T) {
	s := NewContentStore(testConn(t))

	slug := testSlug("test-reval")
	t.Cleanup(func() { cleanContent(t, s.conn, slug) })

	created, err := s.Create(blogDraft(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Blanking the blog body removes the record's only required payload field.
	_, err = s.Update(created.ID, &models.ContentPatch{Body: strPtr("")})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *models.ValidationError, got %v", err)
	}

	// The stored record is unchanged.
	found, _ := s.FindByID(created.ID)
	if found == nil || found.Body == nil || *found.Body != "<p>Test body</p>" {
		t.Error("record mutated by failed update")
	}
}

func TestContentStoreUpdateNotFound(t *testing.T) {
	s := NewContentStore(testConn(t))

	_, err := s.Update(uuid.New(), &models.ContentPatch{Title: strPtr("x")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update: got %v, want ErrNotFound", err)
	}
}

func TestContentStoreDelete(t *testing.T) {
	s := NewContentStore(testConn(t))

	slug := testSlug("test-delete")

	created, err := s.Create(blogDraft(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID after delete: %v", err)
	}
	if found != nil {
		t.Error("expected nil after delete")
	}

	if err := s.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}

func TestContentStoreListFiltersAndOrder(t *testing.T) {
	s := NewContentStore(testConn(t))

	blogSlug := testSlug("test-list-blog")
	podSlug := testSlug("test-list-pod")
	t.Cleanup(func() { cleanContent(t, s.conn, blogSlug, podSlug) })

	if _, err := s.Create(blogDraft(blogSlug)); err != nil {
		t.Fatalf("Create blog: %v", err)
	}
	pod := &models.Content{
		Type:        models.ContentTypePodcast,
		Title:       "Episode 1",
		Description: "A podcast",
		AudioURL:    strPtr("https://cdn.example.com/ep1.mp3"),
		Slug:        podSlug,
		Published:   true,
	}
	if _, err := s.Create(pod); err != nil {
		t.Fatalf("Create podcast: %v", err)
	}

	// Type filter.
	podType := models.ContentTypePodcast
	podcasts, err := s.List(ListFilter{Type: &podType})
	if err != nil {
		t.Fatalf("List(type=podcast): %v", err)
	}
	for _, c := range podcasts {
		if c.Type != models.ContentTypePodcast {
			t.Errorf("type filter leaked %q record %q", c.Type, c.Slug)
		}
	}
	if !containsSlug(podcasts, podSlug) {
		t.Error("podcast missing from type-filtered list")
	}

	// Published filter.
	published, err := s.List(ListFilter{PublishedOnly: true})
	if err != nil {
		t.Fatalf("List(publishedOnly): %v", err)
	}
	if containsSlug(published, blogSlug) {
		t.Error("draft leaked into published-only list")
	}
	if !containsSlug(published, podSlug) {
		t.Error("published record missing from published-only list")
	}

	// Newest createdAt first.
	all, err := s.List(ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Errorf("list not ordered newest-first at index %d", i)
			break
		}
	}
}

func containsSlug(items []models.Content, slug string) bool {
	for _, c := range items {
		if c.Slug == slug {
			return true
		}
	}
	return false
}
