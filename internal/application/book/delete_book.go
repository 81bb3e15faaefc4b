package book

import (
	"context"
	"log"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/cache"
)

// DeleteBookUseCase soft-deletes an owned book. The row stays in place so
// reviews, favorites and rating aggregates keep their references.
type DeleteBookUseCase struct {
	bookService book.Service
	cache       cache.Cache
}

// NewDeleteBookUseCase creates the use case.
func NewDeleteBookUseCase(bookService book.Service, c cache.Cache) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, cache: c}
}

// Execute deactivates the book and invalidates detail and list caches.
// The top-rated cache is left alone: deactivated books stay in the ranking
// while they have reviews, so the entry is not stale.
func (uc *DeleteBookUseCase) Execute(ctx context.Context, requesterID, bookID uint) error {
	if err := uc.bookService.SoftDelete(ctx, requesterID, bookID); err != nil {
		return err
	}

	if err := uc.cache.Delete(ctx, detailKey(bookID)); err != nil {
		log.Printf("book: detail cache invalidation failed: %v", err)
	}
	if err := uc.cache.DeletePattern(ctx, listKeyPattern); err != nil {
		log.Printf("book: list cache invalidation failed: %v", err)
	}

	return nil
}
