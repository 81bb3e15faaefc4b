package favorite

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// Service implements the favorite toggle rules. A user may favorite their
// own book; the only constraints are that the book exists and the pair is
// unique.
type Service interface {
	// Add favorites bookID for userID. Duplicate → ErrAlreadyFavorited.
	Add(ctx context.Context, userID, bookID uint) (*Favorite, error)

	// Remove deletes the pair. Absent → ErrFavoriteNotFound.
	Remove(ctx context.Context, userID, bookID uint) error

	// ListByUser returns all favorited books, active or not.
	ListByUser(ctx context.Context, userID uint) ([]*book.Book, error)
}

type service struct {
	repo     Repository
	bookRepo book.Repository
}

// NewService creates the favorite domain service.
func NewService(repo Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

func (s *service) Add(ctx context.Context, userID, bookID uint) (*Favorite, error) {
	// Favoriting goes through the active-only lookup: new favorites of
	// soft-deleted books are rejected, existing ones are kept (ListByUser).
	if _, err := s.bookRepo.FindActiveByID(ctx, bookID); err != nil {
		return nil, err
	}

	fav := &Favorite{UserID: userID, BookID: bookID}
	if err := s.repo.Create(ctx, fav); err != nil {
		return nil, err
	}
	return fav, nil
}

func (s *service) Remove(ctx context.Context, userID, bookID uint) error {
	return s.repo.Delete(ctx, userID, bookID)
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]*book.Book, error) {
	return s.repo.ListBooksByUser(ctx, userID)
}
