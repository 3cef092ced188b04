package subscription

import (
	"context"

	"foodgram-backend/internal/domains/recipe"
	user "foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/shared/pagination"
)

// Users is the slice of user.Service the subscription flow needs.
type Users interface {
	Get(ctx context.Context, viewerID, id int64) (*user.UserResponse, error)
	PresentUsers(ctx context.Context, viewerID int64, users []user.User) ([]user.UserResponse, error)
}

// RecipePreviews is the slice of recipe.Service the subscription flow needs.
type RecipePreviews interface {
	AuthorPreviews(ctx context.Context, authorIDs []int64, limit int) (map[int64][]recipe.ShortRecipeResponse, map[int64]int64, error)
}

// Service manages follows. recipesLimit <= 0 means all recipes.
type Service interface {
	Subscribe(ctx context.Context, viewerID, authorID int64, recipesLimit int) (*SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, viewerID, authorID int64) error
	List(ctx context.Context, viewerID int64, recipesLimit int, page pagination.Params) ([]SubscriptionResponse, int64, error)
}
