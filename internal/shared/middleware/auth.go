package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/shared/response"
	"foodgram-backend/pkg/jwt"
)

const (
	ContextUserID = "userID"
	ContextClaims = "tokenClaims"
)

// TokenValidator verifies a raw token, including revocation.
type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// AuthMiddleware rejects requests without a valid token.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, "Authentication credentials were not provided")
			c.Abort()
			return
		}

		claims, err := validator.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			response.Unauthorized(c, "Invalid or revoked token")
			c.Abort()
			return
		}

		setViewer(c, claims)
		c.Next()
	}
}

// OptionalAuth resolves the viewer when a valid token is present and lets
// anonymous requests through. A bad token is still rejected.
func OptionalAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, ok := extractToken(header)
		if !ok {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := validator.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			response.Unauthorized(c, "Invalid or revoked token")
			c.Abort()
			return
		}

		setViewer(c, claims)
		c.Next()
	}
}

// GetViewerID returns the authenticated user id, 0 for anonymous.
func GetViewerID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

// GetClaims returns the validated token claims, nil for anonymous.
func GetClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

func setViewer(c *gin.Context, claims *jwt.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextClaims, claims)
}

// extractToken accepts "Token <t>" and "Bearer <t>".
func extractToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return token, true
	default:
		return "", false
	}
}
