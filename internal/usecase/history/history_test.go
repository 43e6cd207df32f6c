package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "memgame/internal/repository"
)

func TestAppend_Validation(t *testing.T) {
	t.Parallel()

	uc := NewHistoryUseCase(repo.NewMapHistoryStorage())
	ctx := context.Background()

	_, err := uc.Append(ctx, "u1", "", 10)
	assert.Error(t, err, "empty level must be rejected")

	_, err = uc.Append(ctx, "u1", "3", 0)
	assert.Error(t, err, "moves below 1 must be rejected")

	record, err := uc.Append(ctx, "u1", "3", 12)
	require.NoError(t, err)
	assert.Equal(t, "u1", record.UserID)
	assert.Equal(t, "3", record.GameLevel)
	assert.Equal(t, 12, record.NumOfMoves)
	assert.False(t, record.CompletedAt.IsZero())
}

func TestListFor_NewestFirst(t *testing.T) {
	t.Parallel()

	uc := NewHistoryUseCase(repo.NewMapHistoryStorage())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := uc.Append(ctx, "u1", "1", 10+i)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := uc.Append(ctx, "someone-else", "1", 99)
	require.NoError(t, err)

	records, err := uc.ListFor(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, records, 5, "only the user's own records are listed")

	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].CompletedAt.After(records[i-1].CompletedAt),
			"records must be ordered newest first")
	}
}

func TestClearFor_Idempotent(t *testing.T) {
	t.Parallel()

	uc := NewHistoryUseCase(repo.NewMapHistoryStorage())
	ctx := context.Background()

	_, err := uc.Append(ctx, "u1", "1", 10)
	require.NoError(t, err)
	_, err = uc.Append(ctx, "u2", "1", 11)
	require.NoError(t, err)

	require.NoError(t, uc.ClearFor(ctx, "u1"))

	records, err := uc.ListFor(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, records)

	// clearing an already empty history succeeds
	require.NoError(t, uc.ClearFor(ctx, "u1"))

	others, err := uc.ListFor(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, others, 1, "other users keep their history")
}
