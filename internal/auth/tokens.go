package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind selects which signing secret and lifetime a token uses.
type TokenKind string

const (
	// KindAccess is a short-lived token authorising resource operations.
	KindAccess TokenKind = "access"

	// KindRefresh is a long-lived token authorising only the minting of
	// new access tokens.
	KindRefresh TokenKind = "refresh"
)

// Default token lifetimes, applied when config leaves them unset.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims is the decoded, verified payload carried by a bookmarkd token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Issuer creates and verifies signed, time-bounded tokens carrying an
// identity claim. Access and refresh tokens are signed with distinct
// secrets, so possession of one kind's secret cannot forge the other and
// the two classes can be rotated independently.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewIssuer creates an Issuer from the two signing secrets and lifetimes.
// Non-positive lifetimes fall back to the defaults (15m access, 7d refresh).
// Secret presence and strength are validated at config load, not here.
func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue creates a signed token of the given kind for the user.
// The payload carries {sub, email, iat, exp}.
func (i *Issuer) Issue(user *User, kind TokenKind) (string, error) {
	ttl := i.accessTTL
	if kind == KindRefresh {
		ttl = i.refreshTTL
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secretFor(kind))
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks a token's signature, expiry, and payload shape using the
// secret matching the requested kind. A refresh token presented where an
// access token is expected fails (and vice versa) because the secrets
// differ. All failures surface as ErrTokenInvalid.
func (i *Issuer) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return i.secretFor(kind), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrTokenInvalid)
	}

	return claims, nil
}

// secretFor returns the signing secret for a token kind.
func (i *Issuer) secretFor(kind TokenKind) []byte {
	if kind == KindRefresh {
		return i.refreshSecret
	}
	return i.accessSecret
}
