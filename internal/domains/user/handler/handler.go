package handler

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	user "foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/pagination"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/utils"
	"foodgram-backend/pkg/jwt"
)

// UserHandler serves /users and /auth/token.
type UserHandler struct {
	service user.Service
	paging  pagination.Defaults
}

func NewUserHandler(service user.Service, paging pagination.Defaults) *UserHandler {
	return &UserHandler{service: service, paging: paging}
}

// ========================================
// ACCOUNTS
// ========================================

// Register handles POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !h.bindJSON(c, &req) {
		return
	}

	out, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, out)
}

// SetPassword handles POST /users/set_password
func (h *UserHandler) SetPassword(c *gin.Context) {
	var req user.SetPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.service.SetPassword(c.Request.Context(), middleware.GetViewerID(c), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// ========================================
// TOKENS
// ========================================

// Login handles POST /auth/token/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	out, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, out)
}

// Logout handles POST /auth/token/logout
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		h.handleError(c, err)
		return
	}
	response.NoContent(c)
}

// ========================================
// READS
// ========================================

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	page := pagination.FromQuery(c, h.paging)

	users, total, err := h.service.List(c.Request.Context(), middleware.GetViewerID(c), page)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, users, response.NewMeta(page.Page, page.Limit, total))
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.NotFound(c, user.ErrUserNotFound.Error())
		return
	}

	out, err := h.service.Get(c.Request.Context(), middleware.GetViewerID(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, out)
}

// Me handles GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	viewer := middleware.GetViewerID(c)
	out, err := h.service.Get(c.Request.Context(), viewer, viewer)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// ========================================
// HELPERS
// ========================================

func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.ValidationFailed(c, verrs)

	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeAlreadyExists, err.Error(),
			map[string]string{"email": err.Error()})

	case errors.Is(err, user.ErrUsernameAlreadyExists):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeAlreadyExists, err.Error(),
			map[string]string{"username": err.Error()})

	case errors.Is(err, user.ErrWrongPassword):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Validation failed",
			map[string]string{"current_password": err.Error()})

	case errors.Is(err, user.ErrInvalidCredentials):
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, err.Error(),
			map[string]string{"non_field_errors": err.Error()})

	case errors.Is(err, user.ErrTokenRevoked), errors.Is(err, jwt.ErrInvalidToken):
		response.Unauthorized(c, err.Error())

	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, err.Error())

	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.ContextRequestID)).Msg("user request failed")
		response.InternalServerError(c, "Internal server error")
	}
}

func (h *UserHandler) bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.InvalidBody(c, err)
		return false
	}
	return true
}
