// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"mediacms/internal/models"
	"mediacms/internal/store"
)

// Content groups the content CRUD handlers.
type Content struct {
	store *store.ContentStore
	dev   bool
}

// NewContent creates the content handler group.
func NewContent(contentStore *store.ContentStore, dev bool) *Content {
	return &Content{store: contentStore, dev: dev}
}

// List handles GET /content. Supports ?type= (exact match) and
// ?published=true (published records only). Results are ordered newest first.
func (h *Content) List(w http.ResponseWriter, r *http.Request) {
	var filter store.ListFilter

	if t := r.URL.Query().Get("type"); t != "" {
		contentType := models.ContentType(t)
		filter.Type = &contentType
	}
	if r.URL.Query().Get("published") == "true" {
		filter.PublishedOnly = true
	}

	items, err := h.store.List(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch content", err, h.dev)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /content. The full draft comes from the caller; the
// server generates the id and timestamps. A missing slug is derived from the
// title before validation.
func (h *Content) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.Content
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err, h.dev)
		return
	}

	// Caller-supplied identity and timestamps are ignored.
	draft.ID = uuid.Nil
	if draft.Slug == "" && draft.Title != "" {
		draft.Slug = slug.Make(draft.Title)
	}

	created, err := h.store.Create(&draft)
	if err != nil {
		h.writeStoreError(w, err, "Failed to create content")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Get handles GET /content/{id}.
func (h *Content) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	content, err := h.store.FindByID(id)
	if err != nil {
		h.writeStoreError(w, err, "Failed to fetch content")
		return
	}
	if content == nil {
		writeError(w, http.StatusNotFound, "Content not found", nil, h.dev)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

// Update handles PUT /content/{id}. The body is a partial record; absent
// fields are left unchanged and the merged record is revalidated.
func (h *Content) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var patch models.ContentPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err, h.dev)
		return
	}

	updated, err := h.store.Update(id, &patch)
	if err != nil {
		h.writeStoreError(w, err, "Failed to update content")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /content/{id}. Hard delete, irreversible.
func (h *Content) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.writeStoreError(w, err, "Failed to delete content")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Content deleted"})
}

// parseID extracts the {id} route parameter. A malformed id can never
// resolve to a record, so it answers 404 like any other unknown id.
func (h *Content) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Content not found", nil, h.dev)
		return uuid.Nil, false
	}
	return id, true
}

// writeStoreError maps repository failures onto HTTP statuses.
func (h *Content) writeStoreError(w http.ResponseWriter, err error, fallback string) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Content not found", nil, h.dev)
	case errors.Is(err, store.ErrDuplicateSlug):
		writeError(w, http.StatusConflict, "Slug already in use", nil, h.dev)
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	default:
		// Covers unconfigured/unreachable database and unexpected failures.
		writeError(w, http.StatusInternalServerError, fallback, err, h.dev)
	}
}
