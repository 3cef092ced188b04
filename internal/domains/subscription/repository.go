package subscription

import (
	"context"

	user "foodgram-backend/internal/domains/user"
)

type Repository interface {
	// Follow reports false when the pair already exists.
	Follow(ctx context.Context, userID, authorID int64) (bool, error)
	// Unfollow reports false when there was nothing to delete.
	Unfollow(ctx context.Context, userID, authorID int64) (bool, error)

	// ListFollowed returns one page of authors followed by userID, most
	// recent subscription first, and the total.
	ListFollowed(ctx context.Context, userID int64, limit, offset int) ([]user.User, int64, error)
	Counts(ctx context.Context, userIDs []int64) (map[int64]Counts, error)
}
