package favorite

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/event"
	"github.com/xiebiao/bookshelf/internal/domain/favorite"
)

// RemoveFavoriteUseCase removes a favorite pair. Removing an absent pair
// is a not-found, so clients can distinguish a double click from success.
type RemoveFavoriteUseCase struct {
	favoriteService favorite.Service
	bookService     book.Service
	notifier        event.Notifier
}

// NewRemoveFavoriteUseCase creates the use case.
func NewRemoveFavoriteUseCase(
	favoriteService favorite.Service,
	bookService book.Service,
	notifier event.Notifier,
) *RemoveFavoriteUseCase {
	return &RemoveFavoriteUseCase{
		favoriteService: favoriteService,
		bookService:     bookService,
		notifier:        notifier,
	}
}

// Execute removes the pair for the requesting user and notifies the book
// owner of the removal.
func (uc *RemoveFavoriteUseCase) Execute(ctx context.Context, userID, bookID uint) error {
	if err := uc.favoriteService.Remove(ctx, userID, bookID); err != nil {
		return err
	}

	ev := event.FavoritedEvent{
		BookID:    bookID,
		UserID:    userID,
		Favorited: false,
	}
	if b, err := uc.bookService.GetAny(ctx, bookID); err == nil {
		ev.OwnerID = b.CreatedBy
	}
	uc.notifier.NotifyFavorited(ctx, ev)

	return nil
}
