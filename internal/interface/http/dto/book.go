package dto

// CreateBookRequest is the payload for adding a catalog entry.
type CreateBookRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"The Go Programming Language"`
	Author      string `json:"author" binding:"required,max=200" example:"Alan A. A. Donovan"`
	Description string `json:"description" binding:"max=5000" example:"The authoritative resource"`
}

// UpdateBookRequest is the partial-update payload; omitted or empty fields
// keep their stored values.
type UpdateBookRequest struct {
	Title       string `json:"title" binding:"omitempty,max=200" example:"The Go Programming Language"`
	Author      string `json:"author" binding:"omitempty,max=200" example:"Alan A. A. Donovan"`
	Description string `json:"description" binding:"omitempty,max=5000" example:"Second printing"`
}

// BookResponse is the book detail DTO.
type BookResponse struct {
	ID          uint   `json:"id" example:"1"`
	Title       string `json:"title" example:"The Go Programming Language"`
	Author      string `json:"author" example:"Alan A. A. Donovan"`
	Description string `json:"description" example:"The authoritative resource"`
	CreatedBy   uint   `json:"created_by" example:"1"`
	IsActive    bool   `json:"is_active" example:"true"`
	CreatedAt   string `json:"created_at" example:"2026-01-15 10:30:00"`
	UpdatedAt   string `json:"updated_at" example:"2026-01-15 10:30:00"`
}

// BookDetailResponse is the composite detail page: the book plus its
// reviews and the live average rating.
type BookDetailResponse struct {
	Book      BookResponse     `json:"book"`
	AvgRating *float64         `json:"avg_rating"` // null when unreviewed
	Reviews   []ReviewResponse `json:"reviews"`
}

// ListBooksRequest holds the query-string filters; all are optional and
// combine with AND. Timestamps are RFC 3339.
type ListBooksRequest struct {
	Title         string `form:"title" binding:"omitempty,max=200" example:"go"`
	Author        string `form:"author" binding:"omitempty,max=200" example:"Donovan"`
	Username      string `form:"username" binding:"omitempty,max=50" example:"gopher"`
	CreatedAfter  string `form:"created_after" binding:"omitempty" example:"2026-01-01T00:00:00Z"`
	CreatedBefore string `form:"created_before" binding:"omitempty" example:"2026-12-31T00:00:00Z"`
	Page          int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// TopRatedEntry is one ranked book.
type TopRatedEntry struct {
	BookID      uint    `json:"book_id" example:"3"`
	Title       string  `json:"title" example:"The Go Programming Language"`
	Author      string  `json:"author" example:"Alan A. A. Donovan"`
	AvgRating   float64 `json:"avg_rating" example:"4.7"`
	ReviewCount int64   `json:"review_count" example:"12"`
}
