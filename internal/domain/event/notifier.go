// Package event defines the notification port. Notifications are
// fire-and-forget: implementations must not block the caller and no return
// value is consumed.
package event

import "context"

// ReviewedEvent is emitted when a review is created.
type ReviewedEvent struct {
	ReviewID uint    `json:"review_id"`
	BookID   uint    `json:"book_id"`
	UserID   uint    `json:"user_id"`
	Rating   int     `json:"rating"`
	OwnerID  uint    `json:"owner_id"`
	AvgAfter float64 `json:"avg_after,omitempty"`
}

// FavoritedEvent is emitted when a book is favorited or unfavorited.
type FavoritedEvent struct {
	BookID    uint `json:"book_id"`
	UserID    uint `json:"user_id"`
	OwnerID   uint `json:"owner_id"`
	Favorited bool `json:"favorited"` // false on removal
}

// Notifier is the outbound notification collaborator.
type Notifier interface {
	NotifyReviewed(ctx context.Context, ev ReviewedEvent)
	NotifyFavorited(ctx context.Context, ev FavoritedEvent)
}

// NopNotifier discards all events; used in tests and when the broker is
// not configured.
type NopNotifier struct{}

func (NopNotifier) NotifyReviewed(context.Context, ReviewedEvent)   {}
func (NopNotifier) NotifyFavorited(context.Context, FavoritedEvent) {}
