package review

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

const DefaultTopN = 10

// Service implements the rating rules and the aggregation contract.
type Service interface {
	// AddReview validates the rating bound and that the book exists.
	// The target book is looked up without the active filter, so reviews on
	// deactivated books remain possible and their aggregates keep moving.
	AddReview(ctx context.Context, userID, bookID uint, rating int, reviewText string) (*Review, error)

	// GetReview returns a single review.
	GetReview(ctx context.Context, id uint) (*Review, error)

	// ListReviews returns all reviews, optionally narrowed to one book
	// (bookID > 0).
	ListReviews(ctx context.Context, bookID uint) ([]*Review, error)

	// AverageRating returns nil when the book has no reviews.
	AverageRating(ctx context.Context, bookID uint) (*float64, error)

	// TopRated returns up to n (DefaultTopN when n <= 0) books by average
	// rating. An empty catalog of reviews yields an empty slice, not an
	// error.
	TopRated(ctx context.Context, n int) ([]RatedBook, error)
}

type service struct {
	repo     Repository
	bookRepo book.Repository
}

// NewService creates the review domain service.
func NewService(repo Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

func (s *service) AddReview(ctx context.Context, userID, bookID uint, rating int, reviewText string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	r := NewReview(bookID, userID, rating, reviewText)
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) GetReview(ctx context.Context, id uint) (*Review, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListReviews(ctx context.Context, bookID uint) ([]*Review, error) {
	if bookID > 0 {
		return s.repo.ListByBook(ctx, bookID)
	}
	return s.repo.List(ctx)
}

func (s *service) AverageRating(ctx context.Context, bookID uint) (*float64, error) {
	return s.repo.AverageRating(ctx, bookID)
}

func (s *service) TopRated(ctx context.Context, n int) ([]RatedBook, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	return s.repo.TopRated(ctx, n)
}
