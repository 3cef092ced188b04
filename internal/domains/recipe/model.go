package recipe

import "time"

// Bounds shared by cooking_time and ingredient amounts.
const (
	MinAmount = 1
	MaxAmount = 32000
)

// Recipe maps to the recipes table. Image holds the storage key.
type Recipe struct {
	ID          int64     `db:"id"`
	AuthorID    int64     `db:"author_id"`
	Name        string    `db:"name"`
	Image       string    `db:"image"`
	Text        string    `db:"text"`
	CookingTime int       `db:"cooking_time"`
	PubDate     time.Time `db:"pub_date"`
}

// IngredientLine is one recipe_ingredients row joined with its ingredient.
type IngredientLine struct {
	RecipeID        int64
	IngredientID    int64
	Name            string
	MeasurementUnit string
	Amount          int
}

// Flags are the viewer-dependent booleans of a recipe.
type Flags struct {
	Favorited bool
	InCart    bool
}

// ShoppingItem is one aggregated line of a shopping list.
type ShoppingItem struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

// ListFilter drives the recipe list query. Zero values disable a filter.
// Favorited and InCart are only meaningful with a non-zero ViewerID.
type ListFilter struct {
	TagSlugs  []string
	AuthorID  int64
	ViewerID  int64
	Favorited *bool
	InCart    *bool
	Limit     int
	Offset    int
}

// Changes is the column set touched by an update. Nil fields are left alone.
type Changes struct {
	Name        *string
	Text        *string
	CookingTime *int
	Image       *string
	TagIDs      []int64
	Ingredients []IngredientAmount
}
