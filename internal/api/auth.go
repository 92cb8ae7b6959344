package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mlodden/bookmarkd/internal/auth"
)

// signupRequest is the request body for POST /auth/signup.
type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// refreshResponse is the response body for POST /auth/refresh.
type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// handleSignup registers a new account and returns a token pair.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "email and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		writeBadRequest(w, "email must be a valid address")
		return
	}

	pair, err := s.auth.Signup(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeForbidden(w, "email already exists")
			return
		}
		s.logger.Error("signup failed", "error", err)
		writeInternalError(w, "failed to sign up")
		return
	}

	s.logger.Info("user signed up", "email", req.Email)
	writeJSON(w, http.StatusCreated, pair)
}

// handleLogin verifies credentials and returns a fresh token pair.
// Unknown email and wrong password produce identical responses.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "email and password are required")
		return
	}

	pair, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeForbidden(w, "invalid credentials")
			return
		}
		s.logger.Error("login failed", "error", err)
		writeInternalError(w, "failed to log in")
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// handleLogout acknowledges a logout. Stateless: no token is invalidated.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": s.auth.Logout(),
	})
}

// handleRefresh mints a new access token for the subject of an
// already-verified refresh token. The refresh middleware has done the
// cryptographic work; this handler re-confirms the identity still exists.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil || claims.Subject == "" {
		writeForbidden(w, "invalid refresh token")
		return
	}

	token, err := s.auth.Refresh(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, auth.ErrAccessDenied) {
			writeForbidden(w, "access denied")
			return
		}
		s.logger.Error("refresh failed", "error", err)
		writeInternalError(w, "failed to refresh token")
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{AccessToken: token})
}
