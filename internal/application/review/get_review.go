package review

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/review"
)

// GetReviewUseCase fetches a single review by id. Not cached: single-row
// primary key lookups are cheaper than the cache round trip.
type GetReviewUseCase struct {
	reviewService review.Service
}

// NewGetReviewUseCase creates the use case.
func NewGetReviewUseCase(reviewService review.Service) *GetReviewUseCase {
	return &GetReviewUseCase{reviewService: reviewService}
}

// Execute returns the review or a not-found error.
func (uc *GetReviewUseCase) Execute(ctx context.Context, id uint) (*ReviewResponse, error) {
	r, err := uc.reviewService.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReviewResponse(r), nil
}
