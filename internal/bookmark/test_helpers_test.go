package bookmark

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// bookmarksSchema mirrors the bookmarks migration. The owner foreign key
// is omitted so bookmark tests do not need the users table.
const bookmarksSchema = `
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

// newTestDB opens an in-memory SQLite database with the bookmarks schema.
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

	if _, err := db.Exec(bookmarksSchema); err != nil {
		t.Fatalf("creating test schema: %v", err)
	}

	return db
}
