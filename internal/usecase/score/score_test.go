package score

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	scoreDomain "memgame/internal/domain/score"
	errs "memgame/internal/errors"
	repo "memgame/internal/repository"
	"memgame/internal/statuses"
)

// fakeCache records cache traffic for assertions.
type fakeCache struct {
	mu    sync.Mutex
	saved map[string]scoreDomain.HighScore
}

func newFakeCache() *fakeCache {
	return &fakeCache{saved: make(map[string]scoreDomain.HighScore)}
}

func (f *fakeCache) SaveBest(_ context.Context, best scoreDomain.HighScore) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[best.Username+"/"+best.Level] = best
	return nil
}

func (f *fakeCache) LoadBest(_ context.Context, username, level string) (scoreDomain.HighScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	best, ok := f.saved[username+"/"+level]
	if !ok {
		return scoreDomain.HighScore{}, errs.ErrScoreNotFound
	}
	return best, nil
}

func newTestUseCase() (*ScoreUseCase, *repo.ScoreMapStorage) {
	store := repo.NewMapScoreStorage()
	return NewScoreUseCase(store, nil, zap.NewNop().Sugar()), store
}

func TestSubmit_Reconciliation(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	ctx := context.Background()

	outcome, err := uc.Submit(ctx, "alice", "1", 10)
	require.NoError(t, err)
	assert.Equal(t, statuses.ScoreCreated, outcome)

	outcome, err = uc.Submit(ctx, "alice", "1", 5)
	require.NoError(t, err)
	assert.Equal(t, statuses.ScoreUpdated, outcome)

	outcome, err = uc.Submit(ctx, "alice", "1", 20)
	require.NoError(t, err)
	assert.Equal(t, statuses.ScoreUnchanged, outcome)

	best, err := uc.GetBest(ctx, "alice", "1")
	require.NoError(t, err)
	assert.Equal(t, 5, best.Moves)
}

func TestSubmit_Idempotent(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Submit(ctx, "alice", "1", 7)
	require.NoError(t, err)

	outcome, err := uc.Submit(ctx, "alice", "1", 7)
	require.NoError(t, err)
	assert.Equal(t, statuses.ScoreUnchanged, outcome, "equal score must not replace the stored one")

	best, err := uc.GetBest(ctx, "alice", "1")
	require.NoError(t, err)
	assert.Equal(t, 7, best.Moves)
}

func TestSubmit_MonotonicOverAnySequence(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	ctx := context.Background()

	sequence := []int{42, 17, 30, 17, 9, 25, 9, 50, 3}
	lowest := sequence[0]
	for _, moves := range sequence {
		_, err := uc.Submit(ctx, "alice", "2", moves)
		require.NoError(t, err)
		if moves < lowest {
			lowest = moves
		}

		best, err := uc.GetBest(ctx, "alice", "2")
		require.NoError(t, err)
		assert.Equal(t, lowest, best.Moves, "stored moves must be non-increasing")
	}
}

func TestSubmit_KeyedPerUserAndLevel(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Submit(ctx, "alice", "1", 10)
	require.NoError(t, err)
	outcome, err := uc.Submit(ctx, "bob", "1", 99)
	require.NoError(t, err)
	assert.Equal(t, statuses.ScoreCreated, outcome, "another user on the same level owns a separate record")

	outcome, err = uc.Submit(ctx, "alice", "2", 10)
	require.NoError(t, err)
	assert.Equal(t, statuses.ScoreCreated, outcome, "same user on another level owns a separate record")
}

func TestSubmit_Validation(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Submit(ctx, "", "1", 10)
	assert.Error(t, err)

	_, err = uc.Submit(ctx, "alice", "", 10)
	assert.Error(t, err)

	_, err = uc.Submit(ctx, "alice", "1", -1)
	assert.Error(t, err)
}

func TestGetBest_ZeroIsAValidScore(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.GetBest(ctx, "alice", "1")
	assert.ErrorIs(t, err, errs.ErrScoreNotFound, "absence is an error, not a zero")

	_, err = uc.Submit(ctx, "alice", "1", 0)
	require.NoError(t, err)

	best, err := uc.GetBest(ctx, "alice", "1")
	require.NoError(t, err)
	assert.Equal(t, 0, best.Moves)
}

func TestSubmit_ConcurrentFirstSubmissions(t *testing.T) {
	t.Parallel()

	uc, store := newTestUseCase()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		moves := 10 + i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Submit(ctx, "alice", "race", moves)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.Count("alice", "race"), "exactly one record per key survives")

	best, err := uc.GetBest(ctx, "alice", "race")
	require.NoError(t, err)
	assert.Equal(t, 10, best.Moves, "the minimum submitted value wins")
}

func TestSubmit_RefreshesCache(t *testing.T) {
	t.Parallel()

	store := repo.NewMapScoreStorage()
	cache := newFakeCache()
	uc := NewScoreUseCase(store, cache, zap.NewNop().Sugar())
	ctx := context.Background()

	_, err := uc.Submit(ctx, "alice", "1", 10)
	require.NoError(t, err)

	cached, err := cache.LoadBest(ctx, "alice", "1")
	require.NoError(t, err)
	assert.Equal(t, 10, cached.Moves)

	_, err = uc.Submit(ctx, "alice", "1", 5)
	require.NoError(t, err)

	cached, err = cache.LoadBest(ctx, "alice", "1")
	require.NoError(t, err)
	assert.Equal(t, 5, cached.Moves)

	// served from cache afterwards
	best, err := uc.GetBest(ctx, "alice", "1")
	require.NoError(t, err)
	assert.Equal(t, 5, best.Moves)
}
