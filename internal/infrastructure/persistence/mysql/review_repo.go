package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/review"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates the MySQL review repository.
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:     rv.BookID,
		UserID:     rv.UserID,
		Rating:     rv.Rating,
		ReviewText: rv.ReviewText,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "failed to create review")
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "failed to find review")
	}
	return toReviewEntity(&model), nil
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint) ([]*review.Review, error) {
	var models []ReviewModel
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list reviews")
	}
	return toReviewEntities(models), nil
}

func (r *reviewRepository) List(ctx context.Context) ([]*review.Review, error) {
	var models []ReviewModel
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list reviews")
	}
	return toReviewEntities(models), nil
}

// AverageRating recomputes the mean from the reviews table on every call.
// AVG over zero rows is NULL, which scans into a nil pointer.
func (r *reviewRepository) AverageRating(ctx context.Context, bookID uint) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).
		Model(&ReviewModel{}).
		Select("AVG(rating)").
		Where("book_id = ?", bookID).
		Scan(&avg).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to compute average rating")
	}
	return avg, nil
}

// TopRated groups by book and orders by average descending, ties broken by
// ascending book id so the result is deterministic. Books with no reviews
// never appear; the active flag is not consulted here.
func (r *reviewRepository) TopRated(ctx context.Context, n int) ([]review.RatedBook, error) {
	var rows []review.RatedBook
	err := r.db.WithContext(ctx).
		Model(&ReviewModel{}).
		Select("book_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count").
		Group("book_id").
		Order("avg_rating DESC, book_id ASC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query top rated books")
	}
	return rows, nil
}

func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:         model.ID,
		BookID:     model.BookID,
		UserID:     model.UserID,
		Rating:     model.Rating,
		ReviewText: model.ReviewText,
		CreatedAt:  model.CreatedAt,
	}
}

func toReviewEntities(models []ReviewModel) []*review.Review {
	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews
}
