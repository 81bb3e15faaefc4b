package book

import (
	"context"
	"time"
)

// Repository is implemented by the MySQL persistence layer.
type Repository interface {
	// Create inserts a book and backfills the generated ID and timestamps.
	Create(ctx context.Context, book *Book) error

	// FindByID returns the book regardless of its active flag.
	// Aggregates (top rated, favorites) still reference inactive books.
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindActiveByID returns the book only while it is active; soft-deleted
	// books yield ErrBookNotFound.
	FindActiveByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs returns the books for the given ids (any active flag),
	// keyed by id. Missing ids are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// Update persists all mutable fields.
	Update(ctx context.Context, book *Book) error

	// List returns active books matching the filter plus the total count.
	List(ctx context.Context, filter ListFilter) ([]*Book, int64, error)
}

// ListFilter holds the optional list predicates; non-zero fields are ANDed.
type ListFilter struct {
	Title         string     // case-insensitive substring match
	Author        string     // exact match, case-insensitive
	CreatedAfter  *time.Time // created_at > value
	CreatedBefore *time.Time // created_at < value
	Username      string     // creator's username

	Page     int
	PageSize int
}
