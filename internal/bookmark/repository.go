package bookmark

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for bookmark persistence.
type Repository interface {
	Create(ctx context.Context, b *Bookmark) error
	GetByID(ctx context.Context, id string) (*Bookmark, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Bookmark, error)
	Update(ctx context.Context, b *Bookmark) error
	Delete(ctx context.Context, id string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed bookmark repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const bookmarkColumns = "id, owner_id, title, description, link, created_at, updated_at"

// Create inserts a new bookmark. The ID is generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, b *Bookmark) error {
	if b.ID == "" {
		b.ID = "bmk-" + uuid.NewString()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	b.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	b.UpdatedAt = b.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (id, owner_id, title, description, link, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.OwnerID, b.Title, nullString(b.Description), b.Link, now, now,
	)
	if err != nil {
		return fmt.Errorf("creating bookmark: %w", err)
	}

	return nil
}

// GetByID retrieves a bookmark by its unique ID.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*Bookmark, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+bookmarkColumns+" FROM bookmarks WHERE id = ?", id)
	return scanBookmark(row)
}

// ListByOwner returns all bookmarks owned by a user, oldest first.
func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]Bookmark, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+bookmarkColumns+" FROM bookmarks WHERE owner_id = ? ORDER BY created_at ASC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookmarks: %w", err)
	}

	return bookmarks, nil
}

// Update modifies a bookmark's payload fields. The owner column is never
// written; ownership is immutable after creation.
func (r *SQLiteRepository) Update(ctx context.Context, b *Bookmark) error {
	now := time.Now().UTC().Format(time.RFC3339)
	b.UpdatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	result, err := r.db.ExecContext(ctx,
		`UPDATE bookmarks SET title = ?, description = ?, link = ?, updated_at = ? WHERE id = ?`,
		b.Title, nullString(b.Description), b.Link, now, b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating bookmark: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a bookmark by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM bookmarks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner is an interface covering sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanBookmark scans a bookmark from any scanner (Row or Rows).
func scanBookmark(s scanner) (*Bookmark, error) {
	var b Bookmark
	var description sql.NullString
	var createdAt, updatedAt string

	err := s.Scan(&b.ID, &b.OwnerID, &b.Title, &description, &b.Link, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning bookmark: %w", err)
	}

	if description.Valid {
		b.Description = description.String
	}

	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &b, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
