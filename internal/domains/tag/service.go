package tag

import "context"

type Service interface {
	List(ctx context.Context) ([]Tag, error)
	Get(ctx context.Context, id int64) (*Tag, error)
	// Import validates and upserts tags; a missing slug is generated from the name.
	Import(ctx context.Context, tags []Tag) (int, error)
}
