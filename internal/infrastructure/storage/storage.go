package storage

import (
	"context"
	"fmt"

	"foodgram-backend/internal/config"
)

// Storage keeps uploaded media. Keys are slash-separated relative paths
// such as "recipes/images/<uuid>.jpg"; the database stores the key and
// responses carry URL(key).
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New picks the backend named by cfg.Media.Backend.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Media.Backend {
	case "minio":
		return NewMinIOStorage(ctx, cfg.MinIO)
	case "local", "":
		return NewLocalStorage(cfg.Media.Root, cfg.Media.BaseURL)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.Media.Backend)
	}
}
