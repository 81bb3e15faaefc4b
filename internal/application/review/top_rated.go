package review

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/cache"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// TopRatedUseCase serves the top-rated ranking, cached under a single key.
// The ranking only changes when a review lands, and review creation
// invalidates the key, so the TTL is just a backstop.
type TopRatedUseCase struct {
	reviewService review.Service
	bookRepo      book.Repository
	cache         cache.Cache
	metrics       *metrics.Registry
	ttl           time.Duration
}

// NewTopRatedUseCase creates the use case.
func NewTopRatedUseCase(
	reviewService review.Service,
	bookRepo book.Repository,
	c cache.Cache,
	m *metrics.Registry,
	ttl time.Duration,
) *TopRatedUseCase {
	return &TopRatedUseCase{
		reviewService: reviewService,
		bookRepo:      bookRepo,
		cache:         c,
		metrics:       m,
		ttl:           ttl,
	}
}

// TopRatedEntry is one ranked book, enriched with catalog fields.
type TopRatedEntry struct {
	BookID      uint    `json:"book_id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

// Execute returns up to n ranked books (default when n <= 0). An empty
// result is a valid value and is cached like any other.
func (uc *TopRatedUseCase) Execute(ctx context.Context, n int) ([]TopRatedEntry, error) {
	// Only the default-size ranking is cached; explicit n bypasses it to
	// keep the keyspace to a single entry.
	useCache := n <= 0 || n == review.DefaultTopN

	if useCache {
		var cached []TopRatedEntry
		hit, err := uc.cache.Get(ctx, topRatedKey, &cached)
		if err != nil {
			uc.metrics.ObserveCache("top_rated", "error")
			log.Printf("review: top-rated cache read failed: %v", err)
		} else if hit {
			uc.metrics.ObserveCache("top_rated", "hit")
			return cached, nil
		} else {
			uc.metrics.ObserveCache("top_rated", "miss")
		}
	}

	rated, err := uc.reviewService.TopRated(ctx, n)
	if err != nil {
		return nil, err
	}

	// Enrich with book fields. Deactivated books stay in the ranking, so
	// the batch lookup ignores the active flag.
	ids := make([]uint, 0, len(rated))
	for _, rb := range rated {
		ids = append(ids, rb.BookID)
	}
	books, err := uc.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]TopRatedEntry, 0, len(rated))
	for _, rb := range rated {
		entry := TopRatedEntry{
			BookID:      rb.BookID,
			AvgRating:   rb.AvgRating,
			ReviewCount: rb.ReviewCount,
		}
		if b, ok := books[rb.BookID]; ok {
			entry.Title = b.Title
			entry.Author = b.Author
		}
		entries = append(entries, entry)
	}

	if useCache {
		if err := uc.cache.Set(ctx, topRatedKey, entries, uc.ttl); err != nil {
			log.Printf("review: top-rated cache write failed: %v", err)
		}
	}

	return entries, nil
}
