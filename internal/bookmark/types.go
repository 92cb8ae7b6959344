package bookmark

import (
	"errors"
	"time"
)

// Bookmark represents a saved link owned by a single user.
type Bookmark struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateInput carries the optional fields of a bookmark edit. Nil fields
// are left unchanged. The owner is immutable and cannot appear here.
type UpdateInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Link        *string `json:"link,omitempty"`
}

// Sentinel errors for bookmark operations.
var (
	ErrNotFound     = errors.New("bookmark not found")
	ErrAccessDenied = errors.New("access to bookmark denied")
)
