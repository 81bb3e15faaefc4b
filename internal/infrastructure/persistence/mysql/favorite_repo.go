package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/favorite"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates the MySQL favorite repository.
func NewFavoriteRepository(db *gorm.DB) favorite.Repository {
	return &favoriteRepository{db: db}
}

// Create relies on the composite unique index for pair uniqueness. Two
// concurrent inserts race at the database, not in application code; the
// loser gets a duplicate key error mapped to ErrAlreadyFavorited.
func (r *favoriteRepository) Create(ctx context.Context, fav *favorite.Favorite) error {
	model := &FavoriteModel{
		UserID: fav.UserID,
		BookID: fav.BookID,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return favorite.ErrAlreadyFavorited
		}
		return apperrors.Wrap(err, "failed to create favorite")
	}

	fav.ID = model.ID
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, bookID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&FavoriteModel{})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "failed to delete favorite")
	}
	if result.RowsAffected == 0 {
		return favorite.ErrFavoriteNotFound
	}
	return nil
}

// ListBooksByUser joins favorites to books without an is_active predicate:
// a favorited book stays visible in the list after soft deletion.
func (r *favoriteRepository) ListBooksByUser(ctx context.Context, userID uint) ([]*book.Book, error) {
	var models []BookModel
	err := r.db.WithContext(ctx).
		Model(&BookModel{}).
		Joins("JOIN favorites ON favorites.book_id = books.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list favorite books")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}
