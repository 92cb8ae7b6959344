package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mlodden/bookmarkd/internal/auth"
)

// updateProfileRequest is the request body for PATCH /users/me.
// Nil fields are left unchanged; the password hash is not reachable here.
type updateProfileRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}

// handleGetProfile returns the authenticated user, hash already stripped
// by the access-token middleware.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFromContext(r.Context()))
}

// handleUpdateProfile edits the authenticated user's email and name.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	current := userFromContext(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	// Re-read the full record so the update carries the stored hash-free
	// profile fields, not the context copy.
	user, err := s.users.GetByID(r.Context(), current.ID)
	if err != nil {
		s.logger.Error("load user for update failed", "error", err)
		writeInternalError(w, "failed to update profile")
		return
	}

	if req.Email != nil {
		if !strings.Contains(*req.Email, "@") {
			writeBadRequest(w, "email must be a valid address")
			return
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := s.users.Update(r.Context(), user); err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeForbidden(w, "email already exists")
			return
		}
		s.logger.Error("update user failed", "error", err)
		writeInternalError(w, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, user.Sanitized())
}
