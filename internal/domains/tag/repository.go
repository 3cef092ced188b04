package tag

import "context"

type Repository interface {
	List(ctx context.Context) ([]Tag, error)
	FindByID(ctx context.Context, id int64) (*Tag, error)
	// Upsert inserts or updates by slug and returns the number of rows written.
	Upsert(ctx context.Context, tags []Tag) (int, error)
}
