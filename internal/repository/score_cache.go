package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"memgame/internal/domain/score"
	errs "memgame/internal/errors"
)

const bestScoreTTL = time.Hour

// RedisScoreCache keeps recently read best-score records so that the
// leaderboard polling done by the game client does not hit Mongo on
// every request. Entries are refreshed whenever reconciliation writes
// a better score, and expire on their own otherwise.
type RedisScoreCache struct {
	client *redis.Client
}

func NewRedisScoreCache(client *redis.Client) *RedisScoreCache {
	return &RedisScoreCache{client: client}
}

func bestScoreKey(username, level string) string {
	return fmt.Sprintf("highscore:%s:%s", username, level)
}

func (r *RedisScoreCache) SaveBest(ctx context.Context, best score.HighScore) error {
	payload, err := json.Marshal(best)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, bestScoreKey(best.Username, best.Level), payload, bestScoreTTL).Err()
}

// LoadBest returns errs.ErrScoreNotFound on a cache miss; the caller
// falls back to the persistent store.
func (r *RedisScoreCache) LoadBest(ctx context.Context, username, level string) (score.HighScore, error) {
	payload, err := r.client.Get(ctx, bestScoreKey(username, level)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return score.HighScore{}, errs.ErrScoreNotFound
		}
		return score.HighScore{}, err
	}

	var best score.HighScore
	if err := json.Unmarshal(payload, &best); err != nil {
		return score.HighScore{}, err
	}
	return best, nil
}

func (r *RedisScoreCache) DropBest(ctx context.Context, username, level string) error {
	return r.client.Del(ctx, bestScoreKey(username, level)).Err()
}
