package book

import (
	"context"
	"unicode/utf8"
)

// Service holds the book business rules. Ownership checks live here so
// every mutation path enforces them identically.
type Service interface {
	// Create inserts a new active book owned by ownerID.
	Create(ctx context.Context, ownerID uint, title, author, description string) (*Book, error)

	// Update applies a partial update. Fails with ErrNotOwner when
	// requesterID is not the creator; the book is left untouched.
	Update(ctx context.Context, requesterID, id uint, title, author, description string) (*Book, error)

	// SoftDelete deactivates the book. Owner-gated like Update. This is the
	// only delete path; rows are never removed.
	SoftDelete(ctx context.Context, requesterID, id uint) error

	// Get returns an active book; soft-deleted books are not retrievable.
	Get(ctx context.Context, id uint) (*Book, error)

	// GetAny returns the book regardless of the active flag, for
	// aggregate views that keep referencing deactivated books.
	GetAny(ctx context.Context, id uint) (*Book, error)

	// List returns active books matching the filter.
	List(ctx context.Context, filter ListFilter) ([]*Book, int64, error)
}

type service struct {
	repo Repository
}

// NewService creates the book domain service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID uint, title, author, description string) (*Book, error) {
	if err := validateFields(title, author, true); err != nil {
		return nil, err
	}

	b := NewBook(title, author, description, ownerID)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, requesterID, id uint, title, author, description string) (*Book, error) {
	// Partial update: empty fields mean "keep", so only length bounds apply.
	if err := validateFields(title, author, false); err != nil {
		return nil, err
	}

	b, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !b.IsOwnedBy(requesterID) {
		return nil, ErrNotOwner
	}

	b.UpdateInfo(title, author, description)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) SoftDelete(ctx context.Context, requesterID, id uint) error {
	b, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}

	if !b.IsOwnedBy(requesterID) {
		return ErrNotOwner
	}

	b.Deactivate()
	return s.repo.Update(ctx, b)
}

func (s *service) Get(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindActiveByID(ctx, id)
}

func (s *service) GetAny(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Book, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}
	return s.repo.List(ctx, filter)
}

// validateFields checks title/author bounds; required only on create.
func validateFields(title, author string, required bool) error {
	if required && title == "" || utf8.RuneCountInString(title) > 200 {
		return ErrInvalidTitle
	}
	if required && author == "" || utf8.RuneCountInString(author) > 200 {
		return ErrInvalidAuthor
	}
	return nil
}
