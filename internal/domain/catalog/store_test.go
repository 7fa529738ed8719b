package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx satisfies pgx.Tx through the embedded interface; only Exec is
// implemented. Calls are recorded so tests can assert what was written
// before a failure aborted the tx.
type fakeTx struct {
	pgx.Tx
	execArgs [][]any
	failOn   int            // 1-based Exec call to fail; 0 never fails
	missing  map[int64]bool // ids whose UPDATE matches zero rows
}

func (f *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	call := len(f.execArgs) + 1
	f.execArgs = append(f.execArgs, args)

	if f.failOn != 0 && call == f.failOn {
		return pgconn.CommandTag{}, errors.New("deadlock detected")
	}
	if id, ok := args[1].(int64); ok && f.missing[id] {
		return pgconn.NewCommandTag("UPDATE 0"), nil
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func TestApplyCategoryOrderAssignsIndexPositions(t *testing.T) {
	tx := &fakeTx{}

	err := applyCategoryOrder(context.Background(), tx, []int64{5, 3, 8})
	require.NoError(t, err)

	require.Len(t, tx.execArgs, 3)
	assert.Equal(t, []any{0, int64(5)}, tx.execArgs[0])
	assert.Equal(t, []any{1, int64(3)}, tx.execArgs[1])
	assert.Equal(t, []any{2, int64(8)}, tx.execArgs[2])
}

// A failure partway through stops the loop immediately. The error aborts the
// surrounding WithTx, so positions already written in the same tx roll back
// rather than leaving a half-applied ordering.
func TestApplyCategoryOrderAbortsOnMidLoopFailure(t *testing.T) {
	tx := &fakeTx{failOn: 2}

	err := applyCategoryOrder(context.Background(), tx, []int64{5, 3, 8})
	require.Error(t, err)

	assert.Len(t, tx.execArgs, 2)
}

func TestApplyCategoryOrderUnknownID(t *testing.T) {
	tx := &fakeTx{missing: map[int64]bool{3: true}}

	err := applyCategoryOrder(context.Background(), tx, []int64{5, 3, 8})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	// nothing after the unknown id is touched
	assert.Len(t, tx.execArgs, 2)
}

func TestReorderCategoriesRejectsEmptyList(t *testing.T) {
	r := &Repository{}
	assert.Error(t, r.ReorderCategories(context.Background(), nil))
}
