package auth

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// usersSchema mirrors the users migration.
const usersSchema = `
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
`

// newTestDB opens an in-memory SQLite database with the users schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // test cleanup

	// A single connection keeps the in-memory database alive and mirrors
	// production pool settings.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(usersSchema); err != nil {
		t.Fatalf("creating test schema: %v", err)
	}

	return db
}
