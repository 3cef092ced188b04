//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-backend/internal/domains/subscription"
	user "foodgram-backend/internal/domains/user"
	userRepo "foodgram-backend/internal/domains/user/repository"
	"foodgram-backend/internal/testinfra"
)

func createUsers(t *testing.T, repo user.Repository, names ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		u := &user.User{Email: name + "@example.com", Username: name, FirstName: name, LastName: name, PasswordHash: "x"}
		require.NoError(t, repo.Create(context.Background(), u))
		ids = append(ids, u.ID)
	}
	return ids
}

func TestPostgresRepository_FollowLifecycle(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := NewPostgresRepository(db.Pool)
	ids := createUsers(t, userRepo.NewPostgresRepository(db.Pool), "alice", "bob", "carol")
	alice, bob, carol := ids[0], ids[1], ids[2]
	ctx := context.Background()

	ok, err := repo.Follow(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Follow(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, ok, "duplicate follow is a no-op")

	_, err = repo.Follow(ctx, alice, alice)
	assert.ErrorIs(t, err, subscription.ErrSelfFollow)

	_, err = repo.Follow(ctx, alice, carol+100)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	ok, err = repo.Follow(ctx, alice, carol)
	require.NoError(t, err)
	assert.True(t, ok)

	followed, total, err := repo.ListFollowed(ctx, alice, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, followed, 2)
	assert.Equal(t, carol, followed[0].ID, "most recent subscription first")

	counts, err := repo.Counts(ctx, []int64{alice, bob})
	require.NoError(t, err)
	assert.Equal(t, subscription.Counts{Followers: 0, Following: 2}, counts[alice])
	assert.Equal(t, subscription.Counts{Followers: 1, Following: 0}, counts[bob])

	ok, err = repo.Unfollow(ctx, alice, bob)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Unfollow(ctx, alice, bob)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostgresRepository_ListFollowedEmpty(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := NewPostgresRepository(db.Pool)
	ids := createUsers(t, userRepo.NewPostgresRepository(db.Pool), "dave")

	followed, total, err := repo.ListFollowed(context.Background(), ids[0], 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, followed)
}
