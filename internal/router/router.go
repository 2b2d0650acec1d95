// Package router sets up all HTTP routes and middleware chains for the
// MediaCMS API. Read routes are public; every mutating route requires an
// authenticated session.
package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"mediacms/internal/handlers"
	"mediacms/internal/middleware"
	"mediacms/internal/session"
)

// New creates and returns the configured chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, content *handlers.Content, auth *handlers.Auth, upload *handlers.Upload) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(sessionStore))

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/content", func(r chi.Router) {
		r.Get("/", content.List)
		r.With(middleware.RequireAuth).Post("/", content.Create)

		r.Get("/{id}", content.Get)
		r.With(middleware.RequireAuth).Put("/{id}", content.Update)
		r.With(middleware.RequireAuth).Delete("/{id}", content.Delete)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", auth.Login)
		r.Post("/logout", auth.Logout)
		r.With(middleware.RequireAuth).Get("/2fa", auth.TwoFAProvision)
	})

	r.With(middleware.RequireAuth).Post("/uploads", upload.Create)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// notFoundHandler answers unknown routes with the JSON error envelope.
func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not found"}`))
}

// methodNotAllowedHandler answers 405 with an Allow header enumerating the
// methods the matched route supports.
func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	if allow := allowedMethods(r.URL.Path); allow != "" {
		w.Header().Set("Allow", allow)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error":"Method not allowed"}`))
}

// allowedMethods returns the Allow header value for a request path.
func allowedMethods(path string) string {
	path = strings.TrimSuffix(path, "/")
	switch {
	case path == "/content":
		return "GET, POST"
	case strings.HasPrefix(path, "/content/"):
		return "GET, PUT, DELETE"
	case path == "/auth/login", path == "/auth/logout":
		return "POST"
	case path == "/auth/2fa":
		return "GET"
	case path == "/uploads":
		return "POST"
	case path == "/health":
		return "GET"
	}
	return ""
}
