package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/utils"
)

type TagHandler struct {
	service tag.Service
}

func NewTagHandler(service tag.Service) *TagHandler {
	return &TagHandler{service: service}
}

// List handles GET /tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tags)
}

// Get handles GET /tags/:id
func (h *TagHandler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.NotFound(c, tag.ErrTagNotFound.Error())
		return
	}

	t, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *TagHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, tag.ErrTagNotFound) {
		response.NotFound(c, err.Error())
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("tag request failed")
	response.InternalServerError(c, "Internal server error")
}
