// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers maps the REST surface onto the content repository and the
// credential validator, translating domain errors to HTTP status codes.
// Every failure is caught here and answered with the JSON error envelope;
// nothing propagates past the handler boundary.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"mediacms/internal/models"
)

// errorResponse is the JSON error envelope shared by every failure answer.
// Details carries the underlying cause only outside production.
type errorResponse struct {
	Error            string              `json:"error"`
	Details          string              `json:"details,omitempty"`
	ValidationErrors []models.FieldError `json:"validationErrors,omitempty"`
}

// writeJSON marshals v into the response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError answers with the error envelope. cause, when non-nil, is logged
// and exposed as details in development.
func writeError(w http.ResponseWriter, status int, message string, cause error, dev bool) {
	resp := errorResponse{Error: message}
	if cause != nil {
		slog.Error(message, "error", cause, "status", status)
		if dev {
			resp.Details = cause.Error()
		}
	}
	writeJSON(w, status, resp)
}

// writeValidationError answers 400 with every violated constraint.
func writeValidationError(w http.ResponseWriter, verr *models.ValidationError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:            "Validation failed",
		ValidationErrors: verr.Fields,
	})
}
