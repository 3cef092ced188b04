package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/pagination"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/utils"
)

// RecipeHandler serves /recipes.
type RecipeHandler struct {
	service recipe.Service
	paging  pagination.Defaults
}

func NewRecipeHandler(service recipe.Service, paging pagination.Defaults) *RecipeHandler {
	return &RecipeHandler{service: service, paging: paging}
}

// ========================================
// CRUD
// ========================================

// List handles GET /recipes
// Query: tags (repeated slug), author, is_favorited, is_in_shopping_cart, page, limit
func (h *RecipeHandler) List(c *gin.Context) {
	q := recipe.ListQuery{TagSlugs: c.QueryArray("tags")}

	if raw := c.Query("author"); raw != "" {
		id, ok := utils.ParseID(raw)
		if !ok {
			response.ValidationFailed(c, validation.Errors{
				"author": validation.NewError("validation_is_int", "must be a user id"),
			})
			return
		}
		q.AuthorID = id
	}
	if v, set := utils.ParseBoolFlag(c.Query("is_favorited")); set {
		q.Favorited = &v
	}
	if v, set := utils.ParseBoolFlag(c.Query("is_in_shopping_cart")); set {
		q.InCart = &v
	}

	page := pagination.FromQuery(c, h.paging)
	recipes, total, err := h.service.List(c.Request.Context(), middleware.GetViewerID(c), q, page)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, recipes, response.NewMeta(page.Page, page.Limit, total))
}

// Create handles POST /recipes (JSON or multipart/form-data)
func (h *RecipeHandler) Create(c *gin.Context) {
	var req recipe.CreateRecipeRequest

	if isMultipart(c) {
		form, err := parseForm(c)
		if err != nil {
			h.handleError(c, err)
			return
		}
		req = form.toCreate()
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	out, err := h.service.Create(c.Request.Context(), middleware.GetViewerID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, out)
}

// Get handles GET /recipes/:id
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	out, err := h.service.Get(c.Request.Context(), middleware.GetViewerID(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, out)
}

// Update handles PATCH /recipes/:id
func (h *RecipeHandler) Update(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	var req recipe.UpdateRecipeRequest
	if isMultipart(c) {
		form, err := parseForm(c)
		if err != nil {
			h.handleError(c, err)
			return
		}
		req = form.toUpdate()
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c, err)
		return
	}

	out, err := h.service.Update(c.Request.Context(), middleware.GetViewerID(c), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, out)
}

// Delete handles DELETE /recipes/:id
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.GetViewerID(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// ========================================
// FAVORITES / SHOPPING CART
// ========================================

// AddFavorite handles POST /recipes/:id/favorite
func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.add(c, h.service.AddFavorite)
}

// RemoveFavorite handles DELETE /recipes/:id/favorite
func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.remove(c, h.service.RemoveFavorite)
}

// AddToCart handles POST /recipes/:id/shopping_cart
func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.add(c, h.service.AddToCart)
}

// RemoveFromCart handles DELETE /recipes/:id/shopping_cart
func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.remove(c, h.service.RemoveFromCart)
}

// DownloadShoppingCart handles GET /recipes/download_shopping_cart?format=txt|xlsx
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	export, err := h.service.ExportShoppingList(c.Request.Context(), middleware.GetViewerID(c), c.Query("format"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Body)
}

func (h *RecipeHandler) add(c *gin.Context, fn func(ctx context.Context, viewerID, id int64) (*recipe.ShortRecipeResponse, error)) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	out, err := fn(c.Request.Context(), middleware.GetViewerID(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, out)
}

func (h *RecipeHandler) remove(c *gin.Context, fn func(ctx context.Context, viewerID, id int64) error) {
	id, ok := h.recipeID(c)
	if !ok {
		return
	}

	if err := fn(c.Request.Context(), middleware.GetViewerID(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// ========================================
// HELPERS
// ========================================

func (h *RecipeHandler) recipeID(c *gin.Context) (int64, bool) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.NotFound(c, recipe.ErrRecipeNotFound.Error())
		return 0, false
	}
	return id, true
}

func (h *RecipeHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, verrs)

	case errors.Is(err, recipe.ErrRecipeNotFound):
		response.NotFound(c, err.Error())

	case errors.Is(err, recipe.ErrNotRecipeAuthor):
		response.Forbidden(c, err.Error())

	case errors.Is(err, recipe.ErrAlreadyFavorited), errors.Is(err, recipe.ErrAlreadyInCart):
		response.ErrorResponse(c, http.StatusBadRequest, response.CodeAlreadyExists, err.Error())

	case errors.Is(err, recipe.ErrNotFavorited), errors.Is(err, recipe.ErrNotInCart):
		response.ErrorResponse(c, http.StatusBadRequest, response.CodeNotPresent, err.Error())

	default:
		log.Error().Err(err).
			Str("request_id", c.GetString(middleware.ContextRequestID)).
			Str("path", c.FullPath()).
			Msg("recipe request failed")
		response.InternalServerError(c, "Internal server error")
	}
}
