// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediacms/internal/storage"
)

// maxUploadBytes bounds the multipart form kept in memory per upload.
const maxUploadBytes = 32 << 20 // 32 MiB

// Upload groups the file-upload handler. The storage client is optional;
// without it the endpoint reports unavailable.
type Upload struct {
	storage *storage.Client
	dev     bool
}

// NewUpload creates the upload handler group.
func NewUpload(storageClient *storage.Client, dev bool) *Upload {
	return &Upload{storage: storageClient, dev: dev}
}

// Create handles POST /uploads. It stores the submitted "file" form part in
// object storage under a unique key and returns its public URL.
func (u *Upload) Create(w http.ResponseWriter, r *http.Request) {
	if u.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "File storage not configured", nil, u.dev)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form", err, u.dev)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field", err, u.dev)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := uploadKey(header.Filename)
	url, err := u.storage.Upload(r.Context(), key, contentType, file, header.Size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store file", err, u.dev)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// uploadKey builds a collision-free object key, keeping the original
// extension so served files get sensible content types.
func uploadKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("uploads/%s/%s%s",
		time.Now().UTC().Format("2006/01"), uuid.NewString(), ext)
}
