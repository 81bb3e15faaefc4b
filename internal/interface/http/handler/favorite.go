package handler

import (
	"github.com/gin-gonic/gin"

	appfavorite "github.com/xiebiao/bookshelf/internal/application/favorite"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// FavoriteHandler serves the favorite toggle and the user's shelf.
type FavoriteHandler struct {
	addUseCase    *appfavorite.AddFavoriteUseCase
	removeUseCase *appfavorite.RemoveFavoriteUseCase
	listUseCase   *appfavorite.ListFavoritesUseCase
}

// NewFavoriteHandler creates the favorite handler.
func NewFavoriteHandler(
	addUseCase *appfavorite.AddFavoriteUseCase,
	removeUseCase *appfavorite.RemoveFavoriteUseCase,
	listUseCase *appfavorite.ListFavoritesUseCase,
) *FavoriteHandler {
	return &FavoriteHandler{
		addUseCase:    addUseCase,
		removeUseCase: removeUseCase,
		listUseCase:   listUseCase,
	}
}

// AddFavorite favorites a book
// @Summary      Add favorite
// @Description  A second add for the same book returns 409
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "book id"
// @Success      201 {object} response.Response{data=dto.FavoriteResponse}
// @Failure      404 {object} response.Response "book not found"
// @Failure      409 {object} response.Response "already favorited"
// @Router       /api/v1/books/{id}/favorite [post]
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.addUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.FavoriteResponse{
		ID:     result.ID,
		UserID: result.UserID,
		BookID: result.BookID,
	})
}

// RemoveFavorite unfavorites a book
// @Summary      Remove favorite
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "book id"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "not favorited"
// @Router       /api/v1/books/{id}/favorite [delete]
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	bookID, ok := pathID(c)
	if !ok {
		return
	}

	err := h.removeUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListFavorites returns the user's shelf
// @Summary      List favorites
// @Description  Includes soft-deleted books; an empty shelf is a 200
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.FavoriteBookResponse}
// @Router       /api/v1/favorites [get]
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	result, err := h.listUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.FavoriteBookResponse, 0, len(result))
	for _, b := range result {
		out = append(out, dto.FavoriteBookResponse{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			IsActive:  b.IsActive,
			CreatedBy: b.CreatedBy,
		})
	}
	response.Success(c, out)
}
