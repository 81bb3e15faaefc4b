package book

import (
	"time"
)

// Book is the catalog aggregate root. CreatedBy records the owner; only the
// owner may mutate or deactivate the book. Deletion is always the soft kind:
// IsActive flips to false and stays false (no reactivation path).
type Book struct {
	ID          uint
	Title       string
	Author      string
	Description string
	CreatedBy   uint
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook creates an active book owned by createdBy.
func NewBook(title, author, description string, createdBy uint) *Book {
	now := time.Now()
	return &Book{
		Title:       title,
		Author:      author,
		Description: description,
		CreatedBy:   createdBy,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateInfo applies a partial update: empty fields keep their current
// value. Refreshes UpdatedAt.
func (b *Book) UpdateInfo(title, author, description string) {
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if description != "" {
		b.Description = description
	}
	b.UpdatedAt = time.Now()
}

// Deactivate flips the soft-delete flag. There is no reactivation path.
func (b *Book) Deactivate() {
	b.IsActive = false
	b.UpdatedAt = time.Now()
}

// IsOwnedBy reports whether userID created this book.
func (b *Book) IsOwnedBy(userID uint) bool {
	return b.CreatedBy == userID
}
