package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/subscription"
	user "foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/pagination"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/utils"
)

type SubscriptionHandler struct {
	service subscription.Service
	paging  pagination.Defaults
}

func NewSubscriptionHandler(service subscription.Service, paging pagination.Defaults) *SubscriptionHandler {
	return &SubscriptionHandler{service: service, paging: paging}
}

// List handles GET /users/subscriptions?recipes_limit=
func (h *SubscriptionHandler) List(c *gin.Context) {
	page := pagination.FromQuery(c, h.paging)

	out, total, err := h.service.List(c.Request.Context(), middleware.GetViewerID(c), recipesLimit(c), page)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, out, response.NewMeta(page.Page, page.Limit, total))
}

// Subscribe handles POST /users/:id/subscribe
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	authorID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.NotFound(c, user.ErrUserNotFound.Error())
		return
	}

	out, err := h.service.Subscribe(c.Request.Context(), middleware.GetViewerID(c), authorID, recipesLimit(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, out)
}

// Unsubscribe handles DELETE /users/:id/subscribe
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	authorID, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.NotFound(c, user.ErrUserNotFound.Error())
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), middleware.GetViewerID(c), authorID); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// recipesLimit reads ?recipes_limit; anything but a positive integer means no limit.
func recipesLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (h *SubscriptionHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, subscription.ErrSelfFollow):
		response.ValidationFailed(c, err)

	case errors.Is(err, subscription.ErrAlreadySubscribed):
		response.ErrorResponse(c, http.StatusBadRequest, response.CodeAlreadyExists, err.Error())

	case errors.Is(err, subscription.ErrNotSubscribed):
		response.ErrorResponse(c, http.StatusBadRequest, response.CodeNotPresent, err.Error())

	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())

	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("subscription request failed")
		response.InternalServerError(c, "Internal server error")
	}
}
