package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates the MySQL book repository.
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		CreatedBy:   b.CreatedBy,
		IsActive:    b.IsActive,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "failed to create book")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to find book")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindActiveByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "failed to find book")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	result := make(map[uint]*book.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []BookModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "failed to find books")
	}

	for i := range models {
		result[models[i].ID] = toBookEntity(&models[i])
	}
	return result, nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		CreatedBy:   b.CreatedBy,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "failed to update book")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// List queries active books only. The username predicate joins the users
// table on the creator id.
func (r *bookRepository) List(ctx context.Context, filter book.ListFilter) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := r.db.WithContext(ctx).Model(&BookModel{}).Where("books.is_active = ?", true)

	if filter.Title != "" {
		query = query.Where("books.title LIKE ?", "%"+filter.Title+"%")
	}
	if filter.Author != "" {
		query = query.Where("LOWER(books.author) = LOWER(?)", filter.Author)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("books.created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("books.created_at < ?", *filter.CreatedBefore)
	}
	if filter.Username != "" {
		query = query.Joins("JOIN users ON users.id = books.created_by").
			Where("users.username = ?", filter.Username)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count books")
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := query.Order("books.created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list books")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Author:      model.Author,
		Description: model.Description,
		CreatedBy:   model.CreatedBy,
		IsActive:    model.IsActive,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
