package repo

import (
	"context"
	"sync"
	"time"

	"memgame/internal/domain/score"
	errs "memgame/internal/errors"
	"memgame/internal/statuses"
)

type scoreKey struct {
	username string
	level    string
}

// ScoreMapStorage is an in-memory stand-in for MongoScoreStorage. The
// mutex plays the role of the unique index: check-then-write is atomic
// per storage, so concurrent submissions reconcile the same way they
// do against Mongo.
type ScoreMapStorage struct {
	mu     sync.Mutex
	scores map[scoreKey]score.HighScore
}

func NewMapScoreStorage() *ScoreMapStorage {
	return &ScoreMapStorage{scores: make(map[scoreKey]score.HighScore)}
}

func (s *ScoreMapStorage) Submit(_ context.Context, username, level string, moves int) (statuses.SubmitOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := scoreKey{username: username, level: level}
	now := time.Now()

	existing, ok := s.scores[key]
	if !ok {
		s.scores[key] = score.HighScore{
			Username:  username,
			Level:     level,
			Moves:     moves,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return statuses.ScoreCreated, nil
	}

	if moves < existing.Moves {
		existing.Moves = moves
		existing.UpdatedAt = now
		s.scores[key] = existing
		return statuses.ScoreUpdated, nil
	}

	return statuses.ScoreUnchanged, nil
}

func (s *ScoreMapStorage) GetBest(_ context.Context, username, level string) (score.HighScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.scores[scoreKey{username: username, level: level}]
	if !ok {
		return score.HighScore{}, errs.ErrScoreNotFound
	}
	return existing, nil
}

// Count reports how many records exist for a key. Test helper for the
// no-duplicates-under-concurrency property.
func (s *ScoreMapStorage) Count(username, level string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scores[scoreKey{username: username, level: level}]; ok {
		return 1
	}
	return 0
}
