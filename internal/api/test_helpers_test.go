package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mlodden/bookmarkd/internal/auth"
	"github.com/mlodden/bookmarkd/internal/bookmark"
	"github.com/mlodden/bookmarkd/internal/infrastructure/config"
	"github.com/mlodden/bookmarkd/internal/infrastructure/logging"
)

const (
	testAccessSecret  = "test-access-secret-0123456789abcdef"
	testRefreshSecret = "test-refresh-secret-0123456789abcde"
)

// testSchema mirrors the migrations closely enough for handler tests.
const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    first_name TEXT,
    last_name TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE UNIQUE INDEX idx_users_email ON users (email);

CREATE TABLE bookmarks (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT,
    link TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX idx_bookmarks_owner ON bookmarks (owner_id);
`

// testEnv bundles a running test server with the pieces tests need to
// mint tokens and seed data directly.
type testEnv struct {
	ts     *httptest.Server
	db     *sql.DB
	issuer *auth.Issuer
	users  auth.UserRepository
}

// newTestEnv wires the full stack against an in-memory database and
// serves it through httptest.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // test cleanup
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("creating test schema: %v", err)
	}

	issuer := auth.NewIssuer(testAccessSecret, testRefreshSecret, 15*time.Minute, 7*24*time.Hour)
	users := auth.NewUserRepository(db)
	bookmarks := bookmark.NewRepository(db)

	srv, err := New(Deps{
		Config:    config.ServerConfig{},
		Logger:    logging.Default(),
		Issuer:    issuer,
		Users:     users,
		Auth:      auth.NewService(users, issuer),
		Bookmarks: bookmark.NewService(bookmarks),
		Version:   "test",
	})
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, db: db, issuer: issuer, users: users}
}

// deleteUser removes a user row directly, bypassing the API, to simulate
// an account deleted while its tokens are still in the wild.
func (e *testEnv) deleteUser(t *testing.T, id string) {
	t.Helper()
	if _, err := e.db.Exec("DELETE FROM users WHERE id = ?", id); err != nil {
		t.Fatalf("deleting user: %v", err)
	}
}

// do sends a JSON request with an optional bearer token and decodes the
// JSON response body into a generic map (nil for empty bodies).
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.ts.URL+path, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // test cleanup

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	if len(data) == 0 {
		return resp.StatusCode, nil
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		// Some endpoints return arrays; callers that care decode themselves.
		return resp.StatusCode, nil
	}
	return resp.StatusCode, decoded
}

// signup registers a user through the API and returns the token pair.
func (e *testEnv) signup(t *testing.T, email, password string) (access, refresh string) {
	t.Helper()

	status, body := e.do(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("signup returned %d: %v", status, body)
	}

	access, _ = body["access_token"].(string)
	refresh, _ = body["refresh_token"].(string)
	if access == "" || refresh == "" {
		t.Fatalf("signup response missing tokens: %v", body)
	}
	return access, refresh
}
