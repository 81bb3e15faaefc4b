package favorite

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// Repository is implemented by the MySQL persistence layer.
type Repository interface {
	// Create inserts the pair; a duplicate yields ErrAlreadyFavorited
	// (mapped from the unique-index violation, not pre-checked).
	Create(ctx context.Context, fav *Favorite) error

	// Delete removes the pair; ErrFavoriteNotFound when absent.
	Delete(ctx context.Context, userID, bookID uint) error

	// ListBooksByUser returns the books the user has favorited, joined from
	// the books table. Not filtered by the book's active flag: favorites keep
	// showing soft-deleted books.
	ListBooksByUser(ctx context.Context, userID uint) ([]*book.Book, error)
}
