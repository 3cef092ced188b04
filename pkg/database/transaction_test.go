package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records how the transaction ended. Unused pgx.Tx methods panic.
type fakeTx struct {
	pgx.Tx
	committed, rolledBack bool
	commitErr             error
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (b fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.tx, nil
}

func TestWithTransaction_Commits(t *testing.T) {
	tx := &fakeTx{}
	err := WithTransaction(context.Background(), fakeBeginner{tx: tx}, func(pgx.Tx) error { return nil })

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	boom := errors.New("boom")
	err := WithTransaction(context.Background(), fakeBeginner{tx: tx}, func(pgx.Tx) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestWithTransaction_RollsBackOnPanic(t *testing.T) {
	tx := &fakeTx{}
	assert.Panics(t, func() {
		_ = WithTransaction(context.Background(), fakeBeginner{tx: tx}, func(pgx.Tx) error { panic("bad") })
	})
	assert.True(t, tx.rolledBack)
}

func TestWithTransaction_BeginFails(t *testing.T) {
	err := WithTransaction(context.Background(), fakeBeginner{err: errors.New("down")}, func(pgx.Tx) error {
		t.Fatal("fn must not run")
		return nil
	})
	assert.ErrorContains(t, err, "failed to begin transaction")
}

func TestWithTransactionResult(t *testing.T) {
	tx := &fakeTx{}
	got, err := WithTransactionResult(context.Background(), fakeBeginner{tx: tx}, func(pgx.Tx) (string, error) {
		return "recipes/images/old.png", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recipes/images/old.png", got)
	assert.True(t, tx.committed)

	tx = &fakeTx{}
	n, err := WithTransactionResult(context.Background(), fakeBeginner{tx: tx}, func(pgx.Tx) (int, error) {
		return 3, errors.New("boom")
	})
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.True(t, tx.rolledBack)

	tx = &fakeTx{commitErr: errors.New("conflict")}
	n, err = WithTransactionResult(context.Background(), fakeBeginner{tx: tx}, func(pgx.Tx) (int, error) {
		return 3, nil
	})
	assert.ErrorContains(t, err, "failed to commit transaction")
	assert.Zero(t, n)
}
