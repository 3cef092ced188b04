//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/testinfra"
)

func TestPostgresRepository_Users(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := NewPostgresRepository(db.Pool)
	ctx := context.Background()

	alice := &user.User{Email: "alice@example.com", Username: "alice", FirstName: "Alice", LastName: "A", PasswordHash: "h1"}
	require.NoError(t, repo.Create(ctx, alice))
	require.NotZero(t, alice.ID)

	err := repo.Create(ctx, &user.User{Email: "alice@example.com", Username: "other", PasswordHash: "h"})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)

	err = repo.Create(ctx, &user.User{Email: "Alice@Example.com", Username: "alice2", PasswordHash: "h"})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)

	err = repo.Create(ctx, &user.User{Email: "other@example.com", Username: "alice", PasswordHash: "h"})
	assert.ErrorIs(t, err, user.ErrUsernameAlreadyExists)

	found, err := repo.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	require.NoError(t, repo.UpdatePassword(ctx, alice.ID, "h2"))
	found, err = repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "h2", found.PasswordHash)

	_, err = repo.FindByID(ctx, alice.ID+100)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	bob := &user.User{Email: "bob@example.com", Username: "bob", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, bob))

	page, total, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, bob.ID, page[0].ID)

	_, err = db.Pool.Exec(ctx, `INSERT INTO follows (user_id, author_id) VALUES ($1, $2)`, alice.ID, bob.ID)
	require.NoError(t, err)

	followed, err := repo.FollowedAmong(ctx, alice.ID, []int64{alice.ID, bob.ID})
	require.NoError(t, err)
	assert.True(t, followed[bob.ID])
	assert.False(t, followed[alice.ID])

	followed, err = repo.FollowedAmong(ctx, 0, []int64{bob.ID})
	require.NoError(t, err)
	assert.Empty(t, followed, "anonymous viewer follows nobody")
}
