// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentType distinguishes the three kinds of content served by the API.
// Each type carries its own mandatory payload field.
type ContentType string

const (
	ContentTypeBlog    ContentType = "blog"
	ContentTypePodcast ContentType = "podcast"
	ContentTypeVideo   ContentType = "video"
)

// Valid reports whether the type is one of the recognized content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeBlog, ContentTypePodcast, ContentTypeVideo:
		return true
	}
	return false
}

// DefaultAuthor is recorded on content created without an explicit author.
const DefaultAuthor = "Admin"

// Content represents a single content record: a blog post, podcast episode,
// or video. The payload field (Body, AudioURL, or VideoURL) required depends
// on Type. JSON field names follow the public API wire format.
type Content struct {
	ID          uuid.UUID   `json:"id"`
	Type        ContentType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Body        *string     `json:"content,omitempty"`
	AudioURL    *string     `json:"audioUrl,omitempty"`
	VideoURL    *string     `json:"videoUrl,omitempty"`
	ImageURL    *string     `json:"imageUrl,omitempty"`
	Slug        string      `json:"slug"`
	Author      string      `json:"author"`
	Published   bool        `json:"published"`
	PublishedAt *time.Time  `json:"publishedAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// FieldError names a single violated constraint.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every constraint violated by a content record.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks the record against the schema invariants: required base
// fields, a recognized type, and the payload field mandated by that type.
// All violations are collected, not just the first.
func (c *Content) Validate() error {
	var fields []FieldError

	if !c.Type.Valid() {
		fields = append(fields, FieldError{
			Field:  "type",
			Reason: fmt.Sprintf("must be one of %q, %q, %q", ContentTypeBlog, ContentTypePodcast, ContentTypeVideo),
		})
	}
	if strings.TrimSpace(c.Title) == "" {
		fields = append(fields, FieldError{Field: "title", Reason: "is required"})
	}
	if strings.TrimSpace(c.Description) == "" {
		fields = append(fields, FieldError{Field: "description", Reason: "is required"})
	}
	if strings.TrimSpace(c.Slug) == "" {
		fields = append(fields, FieldError{Field: "slug", Reason: "is required"})
	}

	// Exactly one payload field is mandatory, selected by type.
	switch c.Type {
	case ContentTypeBlog:
		if !present(c.Body) {
			fields = append(fields, FieldError{Field: "content", Reason: "is required for blog content"})
		}
	case ContentTypePodcast:
		if !present(c.AudioURL) {
			fields = append(fields, FieldError{Field: "audioUrl", Reason: "is required for podcast content"})
		}
	case ContentTypeVideo:
		if !present(c.VideoURL) {
			fields = append(fields, FieldError{Field: "videoUrl", Reason: "is required for video content"})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ContentPatch is a partial update to a content record. Nil fields are left
// unchanged by Apply; non-nil fields replace the current value. A patch can
// therefore blank a field (pointer to empty string) but never remove the
// payload requirement imposed by the record's type.
type ContentPatch struct {
	Type        *ContentType `json:"type"`
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Body        *string      `json:"content"`
	AudioURL    *string      `json:"audioUrl"`
	VideoURL    *string      `json:"videoUrl"`
	ImageURL    *string      `json:"imageUrl"`
	Slug        *string      `json:"slug"`
	Author      *string      `json:"author"`
	Published   *bool        `json:"published"`
	PublishedAt *time.Time   `json:"publishedAt"`
}

// Apply merges the patch into the record in place.
func (p *ContentPatch) Apply(c *Content) {
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Body != nil {
		c.Body = p.Body
	}
	if p.AudioURL != nil {
		c.AudioURL = p.AudioURL
	}
	if p.VideoURL != nil {
		c.VideoURL = p.VideoURL
	}
	if p.ImageURL != nil {
		c.ImageURL = p.ImageURL
	}
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
	if p.Author != nil {
		c.Author = *p.Author
	}
	if p.Published != nil {
		c.Published = *p.Published
	}
	if p.PublishedAt != nil {
		c.PublishedAt = p.PublishedAt
	}
}

// present reports whether an optional string field carries a non-blank value.
func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
