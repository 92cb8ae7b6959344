package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mlodden/bookmarkd/internal/bookmark"
)

// createBookmarkRequest is the request body for POST /bookmarks.
type createBookmarkRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link"`
}

// handleListBookmarks returns the caller's bookmarks.
func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	bookmarks, err := s.bookmarks.List(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, bookmark.ErrNotFound) {
			writeNotFound(w, "no bookmarks found")
			return
		}
		s.logger.Error("list bookmarks failed", "error", err)
		writeInternalError(w, "failed to list bookmarks")
		return
	}

	writeJSON(w, http.StatusOK, bookmarks)
}

// handleCreateBookmark stores a new bookmark owned by the caller.
func (s *Server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req createBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Title == "" || req.Link == "" {
		writeBadRequest(w, "title and link are required")
		return
	}

	b, err := s.bookmarks.Create(r.Context(), user.ID, req.Title, req.Description, req.Link)
	if err != nil {
		s.logger.Error("create bookmark failed", "error", err)
		writeInternalError(w, "failed to create bookmark")
		return
	}

	writeJSON(w, http.StatusCreated, b)
}

// handleGetBookmark returns a single bookmark owned by the caller.
func (s *Server) handleGetBookmark(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id := chi.URLParam(r, "id")

	b, err := s.bookmarks.Get(r.Context(), user.ID, id)
	if err != nil {
		s.writeBookmarkError(w, err, "get")
		return
	}

	writeJSON(w, http.StatusOK, b)
}

// handleUpdateBookmark edits a bookmark owned by the caller.
func (s *Server) handleUpdateBookmark(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req bookmark.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	b, err := s.bookmarks.Update(r.Context(), user.ID, id, req)
	if err != nil {
		s.writeBookmarkError(w, err, "update")
		return
	}

	writeJSON(w, http.StatusOK, b)
}

// handleDeleteBookmark removes a bookmark owned by the caller.
func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.bookmarks.Delete(r.Context(), user.ID, id); err != nil {
		s.writeBookmarkError(w, err, "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeBookmarkError maps bookmark service errors onto the HTTP contract.
// Existence is always decided before ownership, so a missing ID yields
// 404 regardless of who asks and 403 only ever names an existing bookmark.
func (s *Server) writeBookmarkError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, bookmark.ErrNotFound):
		writeNotFound(w, "bookmark not found")
	case errors.Is(err, bookmark.ErrAccessDenied):
		writeForbidden(w, "access to bookmark denied")
	default:
		s.logger.Error(op+" bookmark failed", "error", err)
		writeInternalError(w, "failed to "+op+" bookmark")
	}
}
