package book

import (
	"context"
	"log"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/cache"
)

// CreateBookUseCase adds a book to the catalog.
type CreateBookUseCase struct {
	bookService book.Service
	cache       cache.Cache
}

// NewCreateBookUseCase creates the use case.
func NewCreateBookUseCase(bookService book.Service, c cache.Cache) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService, cache: c}
}

// CreateBookRequest carries the new book fields. OwnerID comes from the
// authentication middleware, never from the request body.
type CreateBookRequest struct {
	Title       string
	Author      string
	Description string
	OwnerID     uint
}

// BookResponse is the shared book DTO for create/update/get/list responses.
type BookResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	CreatedBy   uint   `json:"created_by"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		CreatedBy:   b.CreatedBy,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   b.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Execute creates the book and invalidates the list caches that may now be
// stale. Cache invalidation failures are logged, not returned: the database
// write already succeeded and the TTL bounds the staleness.
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.Create(ctx, req.OwnerID, req.Title, req.Author, req.Description)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.DeletePattern(ctx, listKeyPattern); err != nil {
		log.Printf("book: list cache invalidation failed: %v", err)
	}

	return toBookResponse(b), nil
}
