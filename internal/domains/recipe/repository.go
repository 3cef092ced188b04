package recipe

import (
	"context"

	"foodgram-backend/internal/domains/tag"
)

type Repository interface {
	// Writes. Create and Update are transactional.
	Create(ctx context.Context, r *Recipe, tagIDs []int64, lines []IngredientAmount) error
	// Update locks the row, checks authorID and applies c. It returns the
	// previous image key when c.Image replaces it.
	Update(ctx context.Context, id, authorID int64, c *Changes) (string, error)
	// Delete removes the recipe owned by authorID and returns its image key.
	Delete(ctx context.Context, id, authorID int64) (string, error)

	// Reads
	FindByID(ctx context.Context, id int64) (*Recipe, error)
	List(ctx context.Context, f ListFilter) ([]Recipe, int64, error)
	TagsFor(ctx context.Context, recipeIDs []int64) (map[int64][]tag.Tag, error)
	IngredientsFor(ctx context.Context, recipeIDs []int64) (map[int64][]IngredientLine, error)
	FlagsFor(ctx context.Context, viewerID int64, recipeIDs []int64) (map[int64]Flags, error)

	// Previews: latest recipes per author (limit <= 0 means all) and counts.
	ListByAuthors(ctx context.Context, authorIDs []int64, limit int) (map[int64][]Recipe, error)
	CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int64, error)

	// Toggles report whether a row was inserted or deleted.
	AddFavorite(ctx context.Context, userID, recipeID int64) (bool, error)
	RemoveFavorite(ctx context.Context, userID, recipeID int64) (bool, error)
	AddToCart(ctx context.Context, userID, recipeID int64) (bool, error)
	RemoveFromCart(ctx context.Context, userID, recipeID int64) (bool, error)

	// ShoppingList sums amounts over the user's cart grouped by ingredient
	// name and unit, ordered by name then unit.
	ShoppingList(ctx context.Context, userID int64) ([]ShoppingItem, error)
}
