package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/ingredient"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/utils"
)

type IngredientHandler struct {
	service ingredient.Service
}

func NewIngredientHandler(service ingredient.Service) *IngredientHandler {
	return &IngredientHandler{service: service}
}

// List handles GET /ingredients?name=
func (h *IngredientHandler) List(c *gin.Context) {
	items, err := h.service.Search(c.Request.Context(), c.Query("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Get handles GET /ingredients/:id
func (h *IngredientHandler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.NotFound(c, ingredient.ErrIngredientNotFound.Error())
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *IngredientHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, ingredient.ErrIngredientNotFound) {
		response.NotFound(c, err.Error())
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("ingredient request failed")
	response.InternalServerError(c, "Internal server error")
}
