package favorite

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/event"
	"github.com/xiebiao/bookshelf/internal/domain/favorite"
)

// AddFavoriteUseCase marks a book as a favorite of the requesting user.
// The (user, book) pair is unique at the database level; a duplicate add
// returns a conflict without touching existing state.
type AddFavoriteUseCase struct {
	favoriteService favorite.Service
	bookService     book.Service
	notifier        event.Notifier
}

// NewAddFavoriteUseCase creates the use case.
func NewAddFavoriteUseCase(
	favoriteService favorite.Service,
	bookService book.Service,
	notifier event.Notifier,
) *AddFavoriteUseCase {
	return &AddFavoriteUseCase{
		favoriteService: favoriteService,
		bookService:     bookService,
		notifier:        notifier,
	}
}

// FavoriteResponse confirms the stored pair.
type FavoriteResponse struct {
	ID     uint `json:"id"`
	UserID uint `json:"user_id"`
	BookID uint `json:"book_id"`
}

// Execute adds the favorite and notifies the book owner.
func (uc *AddFavoriteUseCase) Execute(ctx context.Context, userID, bookID uint) (*FavoriteResponse, error) {
	fav, err := uc.favoriteService.Add(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	ev := event.FavoritedEvent{
		BookID:    bookID,
		UserID:    userID,
		Favorited: true,
	}
	if b, err := uc.bookService.GetAny(ctx, bookID); err == nil {
		ev.OwnerID = b.CreatedBy
	}
	uc.notifier.NotifyFavorited(ctx, ev)

	return &FavoriteResponse{
		ID:     fav.ID,
		UserID: fav.UserID,
		BookID: fav.BookID,
	}, nil
}
