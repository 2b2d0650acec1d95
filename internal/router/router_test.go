// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"

	"mediacms/internal/auth"
	"mediacms/internal/config"
	"mediacms/internal/database"
	"mediacms/internal/handlers"
	"mediacms/internal/session"
	"mediacms/internal/store"
)

// newTestRouter wires a router whose backing services are never reached by
// the paths under test: no request carries a session cookie and no handler
// touches the database before failing.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	conn := database.NewLazy("", nil)
	sessions := session.NewStore(redis.NewClient(&redis.Options{Addr: "localhost:1"}), false)
	validator := auth.New(config.DefaultAdminUsername, config.DefaultAdminPasswordHash, "")

	return New(sessions,
		handlers.NewContent(store.NewContentStore(conn), true),
		handlers.NewAuth(validator, sessions, "admin", true),
		handlers.NewUpload(nil, true),
	)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body: got %q", rec.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		allow  string
	}{
		{http.MethodPatch, "/content", "GET, POST"},
		{http.MethodPost, "/content/0f8fad5b-d9cb-469f-a165-70867728950e", "GET, PUT, DELETE"},
		{http.MethodGet, "/auth/login", "POST"},
		{http.MethodDelete, "/auth/logout", "POST"},
		{http.MethodPost, "/auth/2fa", "GET"},
		{http.MethodGet, "/uploads", "POST"},
		{http.MethodDelete, "/health", "GET"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			if rec.Code != http.StatusMethodNotAllowed {
				t.Fatalf("status: got %d, want 405", rec.Code)
			}
			if got := rec.Header().Get("Allow"); got != tc.allow {
				t.Errorf("Allow: got %q, want %q", got, tc.allow)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("body %q is not the error envelope", rec.Body.String())
			}
		})
	}
}

func TestMutatingRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/content"},
		{http.MethodPut, "/content/0f8fad5b-d9cb-469f-a165-70867728950e"},
		{http.MethodDelete, "/content/0f8fad5b-d9cb-469f-a165-70867728950e"},
		{http.MethodPost, "/uploads"},
		{http.MethodGet, "/auth/2fa"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}")))

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", rec.Code)
			}
		})
	}
}

func TestReadRoutesArePublic(t *testing.T) {
	// GET routes must not be gated on a session. With no database configured
	// the list answers 500, not 401 — the guard never fired.
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/content", nil))

	if rec.Code == http.StatusUnauthorized {
		t.Error("GET /content rejected as unauthenticated")
	}
}

func TestNotFoundRoute(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
