package book

import (
	"context"
	"log"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/cache"
)

// UpdateBookUseCase applies a partial update to an owned book.
type UpdateBookUseCase struct {
	bookService book.Service
	cache       cache.Cache
}

// NewUpdateBookUseCase creates the use case.
func NewUpdateBookUseCase(bookService book.Service, c cache.Cache) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService, cache: c}
}

// UpdateBookRequest carries the changed fields; empty strings keep the
// stored value.
type UpdateBookRequest struct {
	BookID      uint
	RequesterID uint
	Title       string
	Author      string
	Description string
}

// Execute updates the book, then drops its detail entry and the list
// keyspace. Delete-after-write keeps the cache convergent: the next read
// repopulates from the fresh row.
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.Update(ctx, req.RequesterID, req.BookID, req.Title, req.Author, req.Description)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, detailKey(req.BookID)); err != nil {
		log.Printf("book: detail cache invalidation failed: %v", err)
	}
	if err := uc.cache.DeletePattern(ctx, listKeyPattern); err != nil {
		log.Printf("book: list cache invalidation failed: %v", err)
	}

	return toBookResponse(b), nil
}
