package ingredient

import "context"

type Repository interface {
	// Search returns ingredients whose name starts with prefix, case-insensitively,
	// ordered by name. An empty prefix returns everything.
	Search(ctx context.Context, prefix string) ([]Ingredient, error)
	FindByID(ctx context.Context, id int64) (*Ingredient, error)
	Count(ctx context.Context) (int64, error)
	// CopyIn bulk-loads ingredients and returns the number of rows copied.
	CopyIn(ctx context.Context, items []Ingredient) (int64, error)
}
