package review

import (
	"time"
)

// Review is a user's rating and text for a book. A user may review the same
// book more than once; no uniqueness is enforced on (user, book).
type Review struct {
	ID         uint
	BookID     uint
	UserID     uint
	Rating     int // 1..5 inclusive
	ReviewText string
	CreatedAt  time.Time
}

// NewReview creates a review. Rating validation happens in the service so
// the invariant is checked before any I/O.
func NewReview(bookID, userID uint, rating int, reviewText string) *Review {
	return &Review{
		BookID:     bookID,
		UserID:     userID,
		Rating:     rating,
		ReviewText: reviewText,
		CreatedAt:  time.Now(),
	}
}

// RatedBook is one entry of the top-rated aggregation.
type RatedBook struct {
	BookID      uint    `json:"book_id"`
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}
