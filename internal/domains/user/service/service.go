package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	user "foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/shared/pagination"
	"foodgram-backend/pkg/cache"
	"foodgram-backend/pkg/jwt"
)

const revokedTokenPrefix = "auth:revoked:"

type userService struct {
	repo       user.Repository
	cache      cache.Cache
	jwtManager *jwt.Manager
	bcryptCost int
	now        func() time.Time
}

func NewUserService(repo user.Repository, cache cache.Cache, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo:       repo,
		cache:      cache,
		jwtManager: jwtManager,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// ========================================
// ACCOUNTS
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.RegisterResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("user registered")

	return &user.RegisterResponse{
		Email:     u.Email,
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}, nil
}

func (s *userService) SetPassword(ctx context.Context, userID int64, req user.SetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return user.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, userID, string(hash))
}

// ========================================
// TOKENS
// ========================================

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, _, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &user.TokenResponse{AuthToken: token}, nil
}

// Logout revokes the token until its natural expiry.
func (s *userService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return user.ErrTokenRevoked
	}

	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, revokedTokenPrefix+claims.ID, claims.UserID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// ValidateAccessToken checks signature, expiry and revocation. A cache
// outage is logged and does not block authentication.
func (s *userService) ValidateAccessToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.cache.Exists(ctx, revokedTokenPrefix+claims.ID)
	if err != nil {
		log.Warn().Err(err).Msg("token revocation check failed")
		return claims, nil
	}
	if revoked {
		return nil, user.ErrTokenRevoked
	}
	return claims, nil
}

// ========================================
// READS
// ========================================

func (s *userService) Get(ctx context.Context, viewerID, id int64) (*user.UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := s.PresentUsers(ctx, viewerID, []user.User{*u})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *userService) List(ctx context.Context, viewerID int64, page pagination.Params) ([]user.UserResponse, int64, error) {
	users, total, err := s.repo.List(ctx, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	out, err := s.PresentUsers(ctx, viewerID, users)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *userService) Present(ctx context.Context, viewerID int64, ids []int64) (map[int64]user.UserResponse, error) {
	users, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	rendered, err := s.PresentUsers(ctx, viewerID, users)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]user.UserResponse, len(rendered))
	for _, r := range rendered {
		out[r.ID] = r
	}
	return out, nil
}

// PresentUsers keeps input order. Anonymous viewers never hit the follows table.
func (s *userService) PresentUsers(ctx context.Context, viewerID int64, users []user.User) ([]user.UserResponse, error) {
	followed := map[int64]bool{}
	if viewerID != 0 && len(users) > 0 {
		ids := make([]int64, len(users))
		for i := range users {
			ids[i] = users[i].ID
		}
		var err error
		if followed, err = s.repo.FollowedAmong(ctx, viewerID, ids); err != nil {
			return nil, err
		}
	}

	out := make([]user.UserResponse, len(users))
	for i := range users {
		out[i] = users[i].ToResponse(followed[users[i].ID])
	}
	return out, nil
}
