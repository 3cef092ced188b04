package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodgram-backend/internal/domains/subscription"
	user "foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/infrastructure/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) subscription.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Follow(ctx context.Context, userID, authorID int64) (bool, error) {
	query := `
		INSERT INTO follows (user_id, author_id) VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT follows_unique DO NOTHING
	`
	cmd, err := r.pool.Exec(ctx, query, userID, authorID)
	switch {
	case database.IsCheckViolation(err, "follows_not_self"):
		return false, subscription.ErrSelfFollow
	case database.IsForeignKeyViolation(err, "follows_author_id_fkey"):
		return false, user.ErrUserNotFound
	case err != nil:
		return false, fmt.Errorf("insert follow: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *postgresRepository) Unfollow(ctx context.Context, userID, authorID int64) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *postgresRepository) ListFollowed(ctx context.Context, userID int64, limit, offset int) ([]user.User, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM follows WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count follows: %w", err)
	}
	if total == 0 {
		return []user.User{}, 0, nil
	}

	query := `
		SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.created_at, u.updated_at
		FROM follows f
		JOIN users u ON u.id = f.author_id
		WHERE f.user_id = $1
		ORDER BY f.id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list follows: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (user.User, error) {
		var u user.User
		err := row.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
			&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
		return u, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan follows: %w", err)
	}
	return users, total, nil
}

func (r *postgresRepository) Counts(ctx context.Context, userIDs []int64) (map[int64]subscription.Counts, error) {
	query := `
		SELECT ids.id,
			(SELECT count(*) FROM follows f WHERE f.author_id = ids.id),
			(SELECT count(*) FROM follows f WHERE f.user_id = ids.id)
		FROM unnest($1::bigint[]) AS ids(id)
	`
	rows, err := r.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]subscription.Counts, len(userIDs))
	for rows.Next() {
		var id int64
		var c subscription.Counts
		if err := rows.Scan(&id, &c.Followers, &c.Following); err != nil {
			return nil, fmt.Errorf("scan follower counts: %w", err)
		}
		out[id] = c
	}
	return out, rows.Err()
}
