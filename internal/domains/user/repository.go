package user

import "context"

// Repository is the data access contract for users.
type Repository interface {
	// Create inserts u and sets u.ID, u.CreatedAt.
	// Returns ErrEmailAlreadyExists / ErrUsernameAlreadyExists on duplicates.
	Create(ctx context.Context, u *User) error

	// FindByID returns ErrUserNotFound when absent.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByEmail is case-insensitive.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByIDs loads the given users; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []int64) ([]User, error)

	// List returns one page ordered by id and the total count.
	List(ctx context.Context, limit, offset int) ([]User, int64, error)

	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// FollowedAmong reports which of authorIDs followerID follows.
	FollowedAmong(ctx context.Context, followerID int64, authorIDs []int64) (map[int64]bool, error)
}
