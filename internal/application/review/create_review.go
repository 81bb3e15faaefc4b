package review

import (
	"context"
	"fmt"
	"log"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/cache"
	"github.com/xiebiao/bookshelf/internal/domain/event"
	"github.com/xiebiao/bookshelf/internal/domain/review"
)

const topRatedKey = "book:top_rated"

// detailKey mirrors the book detail cache key: a new review changes the
// composite detail payload, so this package invalidates it too.
func detailKey(bookID uint) string {
	return fmt.Sprintf("book:detail:%d", bookID)
}

// CreateReviewUseCase records a review, refreshes the affected caches and
// notifies the book owner.
type CreateReviewUseCase struct {
	reviewService review.Service
	bookService   book.Service
	cache         cache.Cache
	notifier      event.Notifier
}

// NewCreateReviewUseCase creates the use case.
func NewCreateReviewUseCase(
	reviewService review.Service,
	bookService book.Service,
	c cache.Cache,
	notifier event.Notifier,
) *CreateReviewUseCase {
	return &CreateReviewUseCase{
		reviewService: reviewService,
		bookService:   bookService,
		cache:         c,
		notifier:      notifier,
	}
}

// CreateReviewRequest carries the review input. UserID comes from the
// authentication middleware. A user may review the same book repeatedly;
// there is no uniqueness rule on the pair.
type CreateReviewRequest struct {
	BookID     uint
	UserID     uint
	Rating     int
	ReviewText string
}

// ReviewResponse is the review DTO.
type ReviewResponse struct {
	ID         uint   `json:"id"`
	BookID     uint   `json:"book_id"`
	UserID     uint   `json:"user_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
	CreatedAt  string `json:"created_at"`
}

func toReviewResponse(r *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		ReviewText: r.ReviewText,
		CreatedAt:  r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Execute creates the review, invalidates the book detail entry and the
// top-rated ranking, then fires a notification to the book owner. The
// notification is fire-and-forget; a broker outage never fails the write.
func (uc *CreateReviewUseCase) Execute(ctx context.Context, req CreateReviewRequest) (*ReviewResponse, error) {
	r, err := uc.reviewService.AddReview(ctx, req.UserID, req.BookID, req.Rating, req.ReviewText)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, detailKey(req.BookID), topRatedKey); err != nil {
		log.Printf("review: cache invalidation failed: %v", err)
	}

	// The owner lookup ignores the active flag: reviews on deactivated
	// books still notify their owner.
	ev := event.ReviewedEvent{
		ReviewID: r.ID,
		BookID:   r.BookID,
		UserID:   r.UserID,
		Rating:   r.Rating,
	}
	if b, err := uc.bookService.GetAny(ctx, req.BookID); err == nil {
		ev.OwnerID = b.CreatedBy
	}
	if avg, err := uc.reviewService.AverageRating(ctx, req.BookID); err == nil && avg != nil {
		ev.AvgAfter = *avg
	}
	uc.notifier.NotifyReviewed(ctx, ev)

	return toReviewResponse(r), nil
}
