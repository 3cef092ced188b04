package user

import (
	"context"

	"foodgram-backend/internal/shared/pagination"
	"foodgram-backend/pkg/jwt"
)

// Service is the business logic contract for users and tokens.
// viewerID is the authenticated caller, 0 for anonymous.
type Service interface {
	// Accounts
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	SetPassword(ctx context.Context, userID int64, req SetPasswordRequest) error

	// Tokens
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	ValidateAccessToken(ctx context.Context, token string) (*jwt.Claims, error)

	// Reads
	Get(ctx context.Context, viewerID, id int64) (*UserResponse, error)
	List(ctx context.Context, viewerID int64, page pagination.Params) ([]UserResponse, int64, error)

	// Present renders the given users for viewerID with is_subscribed
	// resolved in one query. Missing ids are absent from the map.
	Present(ctx context.Context, viewerID int64, ids []int64) (map[int64]UserResponse, error)
	PresentUsers(ctx context.Context, viewerID int64, users []User) ([]UserResponse, error)
}
