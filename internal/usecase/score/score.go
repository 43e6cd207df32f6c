package score

import (
	"context"

	"go.uber.org/zap"

	scoreDomain "memgame/internal/domain/score"
	"memgame/internal/statuses"
	"memgame/internal/validation"
)

type ScoreStorage interface {
	Submit(ctx context.Context, username, level string, moves int) (statuses.SubmitOutcome, error)
	GetBest(ctx context.Context, username, level string) (scoreDomain.HighScore, error)
}

// ScoreCache holds recently served best-score records. A nil-safe
// implementation is optional; the usecase treats every cache error as
// a miss.
type ScoreCache interface {
	SaveBest(ctx context.Context, best scoreDomain.HighScore) error
	LoadBest(ctx context.Context, username, level string) (scoreDomain.HighScore, error)
}

type ScoreUseCase struct {
	store ScoreStorage
	cache ScoreCache
	log   *zap.SugaredLogger
}

// NewScoreUseCase wires the ledger. cache may be nil when no Redis is
// available (tests, local runs without the cache).
func NewScoreUseCase(store ScoreStorage, cache ScoreCache, log *zap.SugaredLogger) *ScoreUseCase {
	return &ScoreUseCase{store: store, cache: cache, log: log}
}

// Submit runs the reconciliation rule: a first submission creates the
// record, a strictly lower move count replaces the stored one, and
// anything else leaves the ledger untouched. The storage enforces the
// one-record-per-key invariant.
func (s *ScoreUseCase) Submit(ctx context.Context, username, level string, moves int) (statuses.SubmitOutcome, error) {
	err := validation.New().
		NotEmpty("username", username, "username is required").
		NotEmpty("level", level, "level is required").
		MinInt("moves", moves, 0, "moves must be non-negative").
		Result()
	if err != nil {
		return statuses.ScoreUnchanged, err
	}

	outcome, err := s.store.Submit(ctx, username, level, moves)
	if err != nil {
		return outcome, err
	}

	if outcome != statuses.ScoreUnchanged && s.cache != nil {
		best, err := s.store.GetBest(ctx, username, level)
		if err == nil {
			if err := s.cache.SaveBest(ctx, best); err != nil {
				s.log.Warnf("failed to refresh score cache for %s/%s: %v", username, level, err)
			}
		}
	}

	return outcome, nil
}

// GetBest returns the stored record for the key, or ErrScoreNotFound.
// A stored move count of 0 is a valid score, not an absence.
func (s *ScoreUseCase) GetBest(ctx context.Context, username, level string) (scoreDomain.HighScore, error) {
	err := validation.New().
		NotEmpty("username", username, "username is required").
		NotEmpty("level", level, "level is required").
		Result()
	if err != nil {
		return scoreDomain.HighScore{}, err
	}

	if s.cache != nil {
		if best, err := s.cache.LoadBest(ctx, username, level); err == nil {
			return best, nil
		}
	}

	best, err := s.store.GetBest(ctx, username, level)
	if err != nil {
		return scoreDomain.HighScore{}, err
	}

	if s.cache != nil {
		if err := s.cache.SaveBest(ctx, best); err != nil {
			s.log.Warnf("failed to fill score cache for %s/%s: %v", username, level, err)
		}
	}

	return best, nil
}
