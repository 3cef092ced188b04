package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodgram-backend/internal/domains/ingredient"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ingredient.Repository {
	return &postgresRepository{pool: pool}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *postgresRepository) Search(ctx context.Context, prefix string) ([]ingredient.Ingredient, error) {
	query := `
		SELECT id, name, measurement_unit
		FROM ingredients
		WHERE lower(name) LIKE $1
		ORDER BY name, id
	`
	rows, err := r.pool.Query(ctx, query, likeEscaper.Replace(strings.ToLower(prefix))+"%")
	if err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}

	items, err := pgx.CollectRows(rows, scanIngredient)
	if err != nil {
		return nil, fmt.Errorf("scan ingredients: %w", err)
	}
	return items, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*ingredient.Ingredient, error) {
	var i ingredient.Ingredient
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`, id,
	).Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ingredient.ErrIngredientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find ingredient %d: %w", id, err)
	}
	return &i, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM ingredients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ingredients: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) CopyIn(ctx context.Context, items []ingredient.Ingredient) (int64, error) {
	n, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"ingredients"},
		[]string{"name", "measurement_unit"},
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			return []any{items[i].Name, items[i].MeasurementUnit}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy ingredients: %w", err)
	}
	return n, nil
}

func scanIngredient(row pgx.CollectableRow) (ingredient.Ingredient, error) {
	var i ingredient.Ingredient
	err := row.Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	return i, err
}
