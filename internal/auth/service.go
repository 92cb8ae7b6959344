package auth

import (
	"context"
	"errors"
	"fmt"
)

// LogoutMessage is the fixed acknowledgement returned by Logout. There is
// no server-side session state, so logging out invalidates nothing.
const LogoutMessage = "Logged out successfully"

// dummyPasswordHash is verified when a login targets an unknown email, so
// the unknown-email and wrong-password paths cost the same amount of work.
// It is a syntactically valid argon2id hash that matches no password.
//
//nolint:gosec // G101: intentionally fake hash for timing uniformity, not a credential
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=3,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Service orchestrates the signup, login, logout, and refresh flows.
// Each flow is stateless between calls; all identity state lives in the
// user repository.
type Service struct {
	users  UserRepository
	issuer *Issuer
}

// NewService creates an authentication service.
func NewService(users UserRepository, issuer *Issuer) *Service {
	return &Service{users: users, issuer: issuer}
}

// Signup hashes the password, creates the account, and issues a token
// pair for the new identity. An email collision maps to ErrEmailExists.
func (s *Service) Signup(ctx context.Context, email, password, firstName, lastName string) (*TokenPair, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return s.issuePair(user)
}

// Login verifies the credentials and issues a fresh token pair.
// Unknown email and wrong password both return ErrInvalidCredentials; the
// dummy hash keeps the two failure paths indistinguishable by timing.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)

	targetHash := dummyPasswordHash
	exists := false

	switch {
	case err == nil:
		targetHash = user.PasswordHash
		exists = true
	case errors.Is(err, ErrUserNotFound):
		// fall through with the dummy hash
	default:
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := VerifyPassword(password, targetHash)
	if err != nil && exists {
		return nil, fmt.Errorf("verifying password: %w", err)
	}

	if !exists || !ok {
		return nil, ErrInvalidCredentials
	}

	return s.issuePair(user)
}

// Logout acknowledges a logout. Token validity is purely signature plus
// expiry, so there is nothing to revoke server-side; outstanding tokens
// remain valid until they expire.
func (s *Service) Logout() string {
	return LogoutMessage
}

// Refresh re-confirms the identity behind an already-verified refresh
// token still exists and mints a new access token. The refresh token
// itself is not rotated. A deleted identity maps to ErrAccessDenied.
func (s *Service) Refresh(ctx context.Context, userID string) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrAccessDenied
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	token, err := s.issuer.Issue(user, KindAccess)
	if err != nil {
		return "", fmt.Errorf("issuing access token: %w", err)
	}
	return token, nil
}

// issuePair issues one access and one refresh token for the user.
func (s *Service) issuePair(user *User) (*TokenPair, error) {
	access, err := s.issuer.Issue(user, KindAccess)
	if err != nil {
		return nil, fmt.Errorf("issuing access token: %w", err)
	}

	refresh, err := s.issuer.Issue(user, KindRefresh)
	if err != nil {
		return nil, fmt.Errorf("issuing refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
