// Package auth provides authentication for bookmarkd.
//
// It implements:
//   - Argon2id password hashing (OWASP 2025 recommendation)
//   - Dual-secret JWT issuance: short-lived access tokens and long-lived
//     refresh tokens, each signed with its own HS256 secret so the two
//     classes can be rotated (or recovered from compromise) independently
//   - The signup / login / logout / refresh flows
//   - SQLite-backed user account persistence
//
// The system holds no server-side session state: token validity is purely
// a function of signature and expiry. Logout is therefore a client-side
// acknowledgement and does not invalidate outstanding tokens.
package auth
