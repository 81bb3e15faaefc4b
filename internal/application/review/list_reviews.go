package review

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/review"
)

// ListReviewsUseCase returns reviews, optionally narrowed to one book.
// Review listings are not cached: they are cheap indexed reads and the
// detail page already carries a cached copy per book.
type ListReviewsUseCase struct {
	reviewService review.Service
}

// NewListReviewsUseCase creates the use case.
func NewListReviewsUseCase(reviewService review.Service) *ListReviewsUseCase {
	return &ListReviewsUseCase{reviewService: reviewService}
}

// Execute lists reviews; bookID 0 means all.
func (uc *ListReviewsUseCase) Execute(ctx context.Context, bookID uint) ([]ReviewResponse, error) {
	reviews, err := uc.reviewService.ListReviews(ctx, bookID)
	if err != nil {
		return nil, err
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, *toReviewResponse(r))
	}
	return out, nil
}
