package dto

// CreateReviewRequest is the review payload. Rating is an integer star
// count; the same user may review a book more than once.
type CreateReviewRequest struct {
	BookID     uint   `json:"book_id" binding:"required" example:"1"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	ReviewText string `json:"review_text" binding:"max=5000" example:"A classic."`
}

// ReviewResponse is the review DTO.
type ReviewResponse struct {
	ID         uint   `json:"id" example:"1"`
	BookID     uint   `json:"book_id" example:"1"`
	UserID     uint   `json:"user_id" example:"2"`
	Rating     int    `json:"rating" example:"5"`
	ReviewText string `json:"review_text" example:"A classic."`
	CreatedAt  string `json:"created_at" example:"2026-01-15 10:30:00"`
}

// ListReviewsRequest narrows the listing to one book when book_id is set.
type ListReviewsRequest struct {
	BookID uint `form:"book_id" binding:"omitempty" example:"1"`
}
