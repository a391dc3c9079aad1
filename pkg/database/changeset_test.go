package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_WithoutChangeSet(t *testing.T) {
	err := Stage(context.Background(), func(context.Context) (int64, error) { return 1, nil })
	assert.ErrorIs(t, err, ErrNoChangeSet)
}

func TestChangeSet_ApplyRunsInOrderAndEmpties(t *testing.T) {
	ctx := WithChangeSet(context.Background())
	var order []int

	for i := 1; i <= 3; i++ {
		require.NoError(t, Stage(ctx, func(context.Context) (int64, error) {
			order = append(order, i)
			return 1, nil
		}))
	}

	cs := ChangeSetFromContext(ctx)
	require.Equal(t, 3, cs.Len())

	n, err := cs.Apply(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, cs.Len())
}

func TestChangeSet_ApplyStopsAtFirstError(t *testing.T) {
	ctx := WithChangeSet(context.Background())
	boom := errors.New("boom")
	ran := 0

	require.NoError(t, Stage(ctx, func(context.Context) (int64, error) { ran++; return 1, nil }))
	require.NoError(t, Stage(ctx, func(context.Context) (int64, error) { ran++; return 0, boom }))
	require.NoError(t, Stage(ctx, func(context.Context) (int64, error) { ran++; return 1, nil }))

	cs := ChangeSetFromContext(ctx)
	n, err := cs.Apply(ctx)

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, n)
	assert.Equal(t, 2, ran)
	assert.Equal(t, 0, cs.Len(), "failed change set must not be replayed")
}

func TestChangeSet_NilIsEmpty(t *testing.T) {
	var cs *ChangeSet
	assert.Equal(t, 0, cs.Len())
	n, err := cs.Apply(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, n)
	cs.Discard()
}

func TestTxFromContext_Missing(t *testing.T) {
	_, err := TxFromContext(context.Background())
	assert.ErrorIs(t, err, ErrNoTransaction)
}

func TestUnitOfWork_SaveChangesWithNothingStaged(t *testing.T) {
	// pool is never touched when the change set is empty
	uow := NewUnitOfWork(nil)

	n, err := uow.SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = uow.SaveChanges(WithChangeSet(context.Background()))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTranslateError(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "ux_listings_title_address"}
	err := translateError(unique)
	assert.ErrorIs(t, err, ErrUniqueViolation)
	assert.Contains(t, err.Error(), "ux_listings_title_address")

	other := errors.New("connection reset")
	assert.Equal(t, other, translateError(other))
}
