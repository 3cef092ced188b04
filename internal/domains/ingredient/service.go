package ingredient

import "context"

type Service interface {
	Search(ctx context.Context, name string) ([]Ingredient, error)
	Get(ctx context.Context, id int64) (*Ingredient, error)
	// Import loads ingredients into an empty table; it is a no-op otherwise.
	Import(ctx context.Context, items []Ingredient) (int64, error)
}
