package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookshelf/internal/application/review"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// ReviewHandler serves review creation, reads and the top-rated ranking.
type ReviewHandler struct {
	createUseCase   *appreview.CreateReviewUseCase
	getUseCase      *appreview.GetReviewUseCase
	listUseCase     *appreview.ListReviewsUseCase
	topRatedUseCase *appreview.TopRatedUseCase
}

// NewReviewHandler creates the review handler.
func NewReviewHandler(
	createUseCase *appreview.CreateReviewUseCase,
	getUseCase *appreview.GetReviewUseCase,
	listUseCase *appreview.ListReviewsUseCase,
	topRatedUseCase *appreview.TopRatedUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		createUseCase:   createUseCase,
		getUseCase:      getUseCase,
		listUseCase:     listUseCase,
		topRatedUseCase: topRatedUseCase,
	}
}

// CreateReview records a review
// @Summary      Create review
// @Description  Rating 1-5; a user may review the same book more than once
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReviewRequest true "review fields"
// @Success      201 {object} response.Response{data=dto.ReviewResponse}
// @Failure      400 {object} response.Response "rating out of range"
// @Failure      401 {object} response.Response "not logged in"
// @Failure      404 {object} response.Response "book not found"
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "invalid parameters: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appreview.CreateReviewRequest{
		BookID:     req.BookID,
		UserID:     middleware.MustGetUserID(c),
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toReviewDTO(result))
}

// ListReviews returns reviews, optionally for one book
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Param        book_id query int false "narrow to one book"
// @Success      200 {object} response.Response{data=[]dto.ReviewResponse}
// @Router       /api/v1/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	var req dto.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "invalid parameters: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.ReviewResponse, 0, len(result))
	for i := range result {
		out = append(out, *toReviewDTO(&result[i]))
	}
	response.Success(c, out)
}

// GetReview returns one review
// @Summary      Get review
// @Tags         reviews
// @Produce      json
// @Param        id path int true "review id"
// @Success      200 {object} response.Response{data=dto.ReviewResponse}
// @Failure      404 {object} response.Response "review not found"
// @Router       /api/v1/reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toReviewDTO(result))
}

// TopRated returns the highest-rated books
// @Summary      Top rated books
// @Description  Ordered by average rating; 404 when nothing has been reviewed yet
// @Tags         reviews
// @Produce      json
// @Param        n query int false "result size (default 10)"
// @Success      200 {object} response.Response{data=[]dto.TopRatedEntry}
// @Failure      404 {object} response.Response "no reviews yet"
// @Router       /api/v1/books/top-rated [get]
func (h *ReviewHandler) TopRated(c *gin.Context) {
	var query struct {
		N int `form:"n" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "invalid parameters: "+err.Error())
		return
	}

	result, err := h.topRatedUseCase.Execute(c.Request.Context(), query.N)
	if err != nil {
		response.Error(c, err)
		return
	}

	// An empty ranking is a 404 at this surface: the page has nothing to
	// show until the first review exists.
	if len(result) == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeNotFound, "no reviews yet")
		return
	}

	out := make([]dto.TopRatedEntry, 0, len(result))
	for _, e := range result {
		out = append(out, dto.TopRatedEntry{
			BookID:      e.BookID,
			Title:       e.Title,
			Author:      e.Author,
			AvgRating:   e.AvgRating,
			ReviewCount: e.ReviewCount,
		})
	}
	response.Success(c, out)
}

func toReviewDTO(r *appreview.ReviewResponse) *dto.ReviewResponse {
	return &dto.ReviewResponse{
		ID:         r.ID,
		BookID:     r.BookID,
		UserID:     r.UserID,
		Rating:     r.Rating,
		ReviewText: r.ReviewText,
		CreatedAt:  r.CreatedAt,
	}
}
