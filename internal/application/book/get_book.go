package book

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/cache"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// GetBookUseCase serves the book detail page: the book, its reviews and
// the current average rating, cached as one composite entry.
type GetBookUseCase struct {
	bookService   book.Service
	reviewService review.Service
	cache         cache.Cache
	metrics       *metrics.Registry
	ttl           time.Duration
}

// NewGetBookUseCase creates the use case.
func NewGetBookUseCase(
	bookService book.Service,
	reviewService review.Service,
	c cache.Cache,
	m *metrics.Registry,
	ttl time.Duration,
) *GetBookUseCase {
	return &GetBookUseCase{
		bookService:   bookService,
		reviewService: reviewService,
		cache:         c,
		metrics:       m,
		ttl:           ttl,
	}
}

// BookDetailResponse is the composite detail DTO. Caching the composite,
// not the pieces, means one round trip on a hit and one invalidation key
// on write.
type BookDetailResponse struct {
	Book      BookResponse       `json:"book"`
	AvgRating *float64           `json:"avg_rating"` // null when unreviewed
	Reviews   []BookDetailReview `json:"reviews"`
}

// BookDetailReview is a review as embedded in the detail payload.
type BookDetailReview struct {
	ID         uint   `json:"id"`
	UserID     uint   `json:"user_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
	CreatedAt  string `json:"created_at"`
}

// Execute reads through the cache. A cache error counts as a miss: the
// database is the system of record and the request must not fail because
// Redis is unhappy.
func (uc *GetBookUseCase) Execute(ctx context.Context, bookID uint) (*BookDetailResponse, error) {
	key := detailKey(bookID)

	var cached BookDetailResponse
	hit, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		uc.metrics.ObserveCache("book_detail", "error")
		log.Printf("book: detail cache read failed: %v", err)
	} else if hit {
		uc.metrics.ObserveCache("book_detail", "hit")
		return &cached, nil
	} else {
		uc.metrics.ObserveCache("book_detail", "miss")
	}

	// The composite rebuild is the expensive path worth a span of its own.
	ctx, span := tracing.StartSpan(ctx, "bookshelf", "book.detail.assemble")
	defer span.End()

	// Detail is an active-only read: soft-deleted books 404 here even
	// though aggregates elsewhere still see them.
	b, err := uc.bookService.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}

	reviews, err := uc.reviewService.ListReviews(ctx, bookID)
	if err != nil {
		return nil, err
	}

	avg, err := uc.reviewService.AverageRating(ctx, bookID)
	if err != nil {
		return nil, err
	}

	resp := &BookDetailResponse{
		Book:      *toBookResponse(b),
		AvgRating: avg,
		Reviews:   make([]BookDetailReview, 0, len(reviews)),
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, BookDetailReview{
			ID:         r.ID,
			UserID:     r.UserID,
			Rating:     r.Rating,
			ReviewText: r.ReviewText,
			CreatedAt:  r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	if err := uc.cache.Set(ctx, key, resp, uc.ttl); err != nil {
		log.Printf("book: detail cache write failed: %v", err)
	}

	return resp, nil
}
