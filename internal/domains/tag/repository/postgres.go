package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) tag.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) List(ctx context.Context) ([]tag.Tag, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, color, slug FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	tags, err := pgx.CollectRows(rows, scanTag)
	if err != nil {
		return nil, fmt.Errorf("scan tags: %w", err)
	}
	return tags, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*tag.Tag, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, color, slug FROM tags WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("find tag %d: %w", id, err)
	}
	t, err := pgx.CollectExactlyOneRow(rows, scanTag)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, tag.ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan tag %d: %w", id, err)
	}
	return &t, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, tags []tag.Tag) (int, error) {
	if len(tags) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO tags (name, color, slug) VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, color = EXCLUDED.color
	`
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (int, error) {
		batch := &pgx.Batch{}
		for _, t := range tags {
			batch.Queue(query, t.Name, t.Color, t.Slug)
		}
		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		written := 0
		for range tags {
			tagCmd, err := results.Exec()
			if err != nil {
				return 0, fmt.Errorf("upsert tag: %w", err)
			}
			written += int(tagCmd.RowsAffected())
		}
		return written, nil
	})
}

func scanTag(row pgx.CollectableRow) (tag.Tag, error) {
	var t tag.Tag
	err := row.Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	return t, err
}
