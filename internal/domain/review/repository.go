package review

import (
	"context"
)

// Repository is implemented by the MySQL persistence layer. The aggregate
// queries always recompute from the reviews table; there is no materialized
// counter to drift out of sync.
type Repository interface {
	// Create inserts a review and backfills ID and CreatedAt.
	Create(ctx context.Context, review *Review) error

	// FindByID returns a single review.
	FindByID(ctx context.Context, id uint) (*Review, error)

	// ListByBook returns all reviews for a book, newest first.
	ListByBook(ctx context.Context, bookID uint) ([]*Review, error)

	// List returns all reviews, newest first.
	List(ctx context.Context) ([]*Review, error)

	// AverageRating returns the mean rating for a book, nil when the book
	// has no reviews.
	AverageRating(ctx context.Context, bookID uint) (*float64, error)

	// TopRated returns up to n books ordered by average rating descending,
	// ties broken by ascending book id. Only books with at least one review
	// appear.
	TopRated(ctx context.Context, n int) ([]RatedBook, error)
}
