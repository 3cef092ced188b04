package recipe

import (
	"context"

	user "foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/shared/pagination"
)

// AuthorPresenter renders recipe authors for a viewer.
type AuthorPresenter interface {
	Present(ctx context.Context, viewerID int64, ids []int64) (map[int64]user.UserResponse, error)
}

// Service is the recipe business logic. viewerID is the caller, 0 for anonymous.
type Service interface {
	Create(ctx context.Context, viewerID int64, req CreateRecipeRequest) (*RecipeResponse, error)
	Update(ctx context.Context, viewerID, id int64, req UpdateRecipeRequest) (*RecipeResponse, error)
	Delete(ctx context.Context, viewerID, id int64) error

	Get(ctx context.Context, viewerID, id int64) (*RecipeResponse, error)
	List(ctx context.Context, viewerID int64, q ListQuery, page pagination.Params) ([]RecipeResponse, int64, error)

	AddFavorite(ctx context.Context, viewerID, id int64) (*ShortRecipeResponse, error)
	RemoveFavorite(ctx context.Context, viewerID, id int64) error
	AddToCart(ctx context.Context, viewerID, id int64) (*ShortRecipeResponse, error)
	RemoveFromCart(ctx context.Context, viewerID, id int64) error

	// ExportShoppingList renders the viewer's aggregated cart as "txt" or "xlsx".
	ExportShoppingList(ctx context.Context, viewerID int64, format string) (*Export, error)

	// AuthorPreviews returns short recipes (at most limit per author, all when
	// limit <= 0) and total recipe counts for each author.
	AuthorPreviews(ctx context.Context, authorIDs []int64, limit int) (map[int64][]ShortRecipeResponse, map[int64]int64, error)
}
