package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlodden/bookmarkd/internal/auth"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Health check (no auth required)
	r.Get("/health", s.handleHealth)

	// Auth endpoints. Signup/login/logout are public; refresh is guarded
	// by refresh-token authentication.
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.With(s.requireAuth(auth.KindRefresh)).Post("/refresh", s.handleRefresh)
	})

	// Protected routes require a valid access token.
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth(auth.KindAccess))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", s.handleGetProfile)
			r.Patch("/me", s.handleUpdateProfile)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", s.handleListBookmarks)
			r.Post("/", s.handleCreateBookmark)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetBookmark)
				r.Patch("/", s.handleUpdateBookmark)
				r.Delete("/", s.handleDeleteBookmark)
			})
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
