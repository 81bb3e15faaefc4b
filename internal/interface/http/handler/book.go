package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// BookHandler serves the catalog endpoints.
type BookHandler struct {
	createUseCase *appbook.CreateBookUseCase
	updateUseCase *appbook.UpdateBookUseCase
	deleteUseCase *appbook.DeleteBookUseCase
	getUseCase    *appbook.GetBookUseCase
	listUseCase   *appbook.ListBooksUseCase
}

// NewBookHandler creates the book handler.
func NewBookHandler(
	createUseCase *appbook.CreateBookUseCase,
	updateUseCase *appbook.UpdateBookUseCase,
	deleteUseCase *appbook.DeleteBookUseCase,
	getUseCase *appbook.GetBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
) *BookHandler {
	return &BookHandler{
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
	}
}

// CreateBook adds a catalog entry
// @Summary      Create book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "book fields"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "invalid parameters"
// @Failure      401 {object} response.Response "not logged in"
// @Router       /api/v1/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "invalid parameters: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		OwnerID:     middleware.MustGetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toBookDTO(result))
}

// UpdateBook applies a partial update to an owned book
// @Summary      Update book
// @Description  Owner-only; omitted fields keep their values
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "book id"
// @Param        request body dto.UpdateBookRequest true "changed fields"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      403 {object} response.Response "not the owner"
// @Failure      404 {object} response.Response "book not found"
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "invalid parameters: "+err.Error())
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		BookID:      bookID,
		RequesterID: middleware.MustGetUserID(c),
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookDTO(result))
}

// DeleteBook soft-deletes an owned book
// @Summary      Delete book
// @Description  Owner-only soft delete; reviews and favorites keep the book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "book id"
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response "not the owner"
// @Failure      404 {object} response.Response "book not found"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}

	err := h.deleteUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetBook returns the detail page for an active book
// @Summary      Get book detail
// @Description  Book plus reviews and average rating; served cache-aside
// @Tags         books
// @Produce      json
// @Param        id path int true "book id"
// @Success      200 {object} response.Response{data=dto.BookDetailResponse}
// @Failure      404 {object} response.Response "book not found"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	detail := &dto.BookDetailResponse{
		Book:      *toBookDTO(&result.Book),
		AvgRating: result.AvgRating,
		Reviews:   make([]dto.ReviewResponse, 0, len(result.Reviews)),
	}
	for _, r := range result.Reviews {
		detail.Reviews = append(detail.Reviews, dto.ReviewResponse{
			ID:         r.ID,
			BookID:     bookID,
			UserID:     r.UserID,
			Rating:     r.Rating,
			ReviewText: r.ReviewText,
			CreatedAt:  r.CreatedAt,
		})
	}

	response.Success(c, detail)
}

// ListBooks returns the filtered catalog
// @Summary      List books
// @Description  Active books only; filters combine with AND. An empty page is 200.
// @Tags         books
// @Produce      json
// @Param        title query string false "title substring, case-insensitive"
// @Param        author query string false "author exact match, case-insensitive"
// @Param        username query string false "creator username"
// @Param        created_after query string false "RFC 3339 lower bound"
// @Param        created_before query string false "RFC 3339 upper bound"
// @Param        page query int false "page number"
// @Param        page_size query int false "page size (max 100)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]dto.BookResponse}}
// @Failure      400 {object} response.Response "invalid parameters"
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "invalid parameters: "+err.Error())
		return
	}

	filter := book.ListFilter{
		Title:    req.Title,
		Author:   req.Author,
		Username: req.Username,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.CreatedAfter != "" {
		t, err := time.Parse(time.RFC3339, req.CreatedAfter)
		if err != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "created_after must be RFC 3339")
			return
		}
		filter.CreatedAfter = &t
	}
	if req.CreatedBefore != "" {
		t, err := time.Parse(time.RFC3339, req.CreatedBefore)
		if err != nil {
			response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "created_before must be RFC 3339")
			return
		}
		filter.CreatedBefore = &t
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookResponse, 0, len(result.Books))
	for i := range result.Books {
		list = append(list, *toBookDTO(&result.Books[i]))
	}

	response.SuccessWithPage(c, list, result.Total, result.Page, result.Size)
}

func toBookDTO(b *appbook.BookResponse) *dto.BookResponse {
	return &dto.BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		CreatedBy:   b.CreatedBy,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// pathID parses the :id path segment; a malformed id is a 400, not a 404.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "invalid id")
		return 0, false
	}
	return uint(id), true
}
