package book

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/cache"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// ListBooksUseCase serves the filtered catalog listing with a per-query
// cache entry keyed by the filter hash.
type ListBooksUseCase struct {
	bookService book.Service
	cache       cache.Cache
	metrics     *metrics.Registry
	ttl         time.Duration
}

// NewListBooksUseCase creates the use case.
func NewListBooksUseCase(bookService book.Service, c cache.Cache, m *metrics.Registry, ttl time.Duration) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService, cache: c, metrics: m, ttl: ttl}
}

// ListBooksResponse carries one page plus the unfiltered-by-page total.
type ListBooksResponse struct {
	Books []BookResponse `json:"books"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

// Execute lists active books matching the filter, cache-aside.
func (uc *ListBooksUseCase) Execute(ctx context.Context, filter book.ListFilter) (*ListBooksResponse, error) {
	// Normalize before hashing so page 0 and page 1 share an entry.
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	key := listKey(filter)

	var cached ListBooksResponse
	hit, err := uc.cache.Get(ctx, key, &cached)
	if err != nil {
		uc.metrics.ObserveCache("book_list", "error")
		log.Printf("book: list cache read failed: %v", err)
	} else if hit {
		uc.metrics.ObserveCache("book_list", "hit")
		return &cached, nil
	} else {
		uc.metrics.ObserveCache("book_list", "miss")
	}

	books, total, err := uc.bookService.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &ListBooksResponse{
		Books: make([]BookResponse, 0, len(books)),
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}
	for _, b := range books {
		resp.Books = append(resp.Books, *toBookResponse(b))
	}

	if err := uc.cache.Set(ctx, key, resp, uc.ttl); err != nil {
		log.Printf("book: list cache write failed: %v", err)
	}

	return resp, nil
}
