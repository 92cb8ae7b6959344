package bookmark

import (
	"context"
	"errors"
	"fmt"
)

// Service applies the ownership policy in front of bookmark persistence.
type Service struct {
	repo Repository
}

// NewService creates a bookmark service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new bookmark owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID, title, description, link string) (*Bookmark, error) {
	b := &Bookmark{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Link:        link,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns all bookmarks owned by the user. Zero bookmarks is
// reported as ErrNotFound.
func (s *Service) List(ctx context.Context, ownerID string) ([]Bookmark, error) {
	bookmarks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if len(bookmarks) == 0 {
		return nil, ErrNotFound
	}
	return bookmarks, nil
}

// Get returns a single bookmark if the caller owns it.
func (s *Service) Get(ctx context.Context, ownerID, id string) (*Bookmark, error) {
	return s.authorize(ctx, ownerID, id)
}

// Update edits a bookmark's payload fields if the caller owns it.
func (s *Service) Update(ctx context.Context, ownerID, id string, in UpdateInput) (*Bookmark, error) {
	b, err := s.authorize(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Link != nil {
		b.Link = *in.Link
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("updating bookmark: %w", err)
	}
	return b, nil
}

// Delete removes a bookmark if the caller owns it.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.authorize(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	return nil
}

// authorize looks the bookmark up and checks ownership, in that order.
// Existence is decided first so a non-owner probing a missing ID sees the
// same ErrNotFound as the owner would; ErrAccessDenied is only ever
// returned for a bookmark that exists.
func (s *Service) authorize(ctx context.Context, ownerID, id string) (*Bookmark, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up bookmark: %w", err)
	}

	if b.OwnerID != ownerID {
		return nil, ErrAccessDenied
	}
	return b, nil
}
