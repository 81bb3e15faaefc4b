package favorite

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/favorite"
)

// ListFavoritesUseCase returns the requesting user's favorited books.
// Soft-deleted books are included; a favorite is the user's own shelf and
// survives the catalog entry going away.
type ListFavoritesUseCase struct {
	favoriteService favorite.Service
}

// NewListFavoritesUseCase creates the use case.
func NewListFavoritesUseCase(favoriteService favorite.Service) *ListFavoritesUseCase {
	return &ListFavoritesUseCase{favoriteService: favoriteService}
}

// FavoriteBookResponse is one favorited book.
type FavoriteBookResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	IsActive  bool   `json:"is_active"`
	CreatedBy uint   `json:"created_by"`
}

// Execute lists the user's favorites.
func (uc *ListFavoritesUseCase) Execute(ctx context.Context, userID uint) ([]FavoriteBookResponse, error) {
	books, err := uc.favoriteService.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]FavoriteBookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, FavoriteBookResponse{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			IsActive:  b.IsActive,
			CreatedBy: b.CreatedBy,
		})
	}
	return out, nil
}
