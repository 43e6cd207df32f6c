package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"memgame/internal/adapters"
	"memgame/internal/domain/score"
	errs "memgame/internal/errors"
	"memgame/internal/statuses"
)

const scoresCollection = "highscores"

type MongoScoreStorage struct {
	adapter *adapters.AdapterMongo
	log     *zap.SugaredLogger
}

func NewMongoScoreStorage(adapter *adapters.AdapterMongo, log *zap.SugaredLogger) *MongoScoreStorage {
	return &MongoScoreStorage{adapter: adapter, log: log}
}

// EnsureIndexes creates the unique (username, level) index. The index
// is the only thing preventing two concurrent first submissions from
// producing two records for one key.
func (m *MongoScoreStorage) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(scoresCollection)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}, {Key: "level", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Submit runs the reconciliation for one (username, level) key:
// a conditional update wins when the stored score is worse, an insert
// wins when no record exists, and a duplicate-key error on the insert
// means another submission got there first, so the update is retried
// once before reporting the score unchanged.
func (m *MongoScoreStorage) Submit(ctx context.Context, username, level string, moves int) (statuses.SubmitOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(scoresCollection)

	for attempt := 0; attempt < 2; attempt++ {
		improved, err := m.updateIfBetter(ctx, collection, username, level, moves)
		if err != nil {
			return statuses.ScoreUnchanged, err
		}
		if improved {
			return statuses.ScoreUpdated, nil
		}

		exists, err := m.keyExists(ctx, collection, username, level)
		if err != nil {
			return statuses.ScoreUnchanged, err
		}
		if exists {
			// stored score is equal or better
			return statuses.ScoreUnchanged, nil
		}

		now := time.Now()
		_, err = collection.InsertOne(ctx, score.HighScore{
			Username:  username,
			Level:     level,
			Moves:     moves,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err == nil {
			return statuses.ScoreCreated, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			// lost the race for the first record, reconcile against it
			continue
		}
		m.log.Errorf("failed to insert high score for %s/%s: %v", username, level, err)
		return statuses.ScoreUnchanged, errs.ErrInternal
	}

	return statuses.ScoreUnchanged, nil
}

func (m *MongoScoreStorage) updateIfBetter(ctx context.Context, collection *mongo.Collection, username, level string, moves int) (bool, error) {
	filter := bson.M{
		"username": username,
		"level":    level,
		"moves":    bson.M{"$gt": moves},
	}
	update := bson.M{"$set": bson.M{
		"moves":      moves,
		"updated_at": time.Now(),
	}}

	res, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		m.log.Errorf("failed to update high score for %s/%s: %v", username, level, err)
		return false, errs.ErrInternal
	}
	return res.ModifiedCount > 0, nil
}

func (m *MongoScoreStorage) keyExists(ctx context.Context, collection *mongo.Collection, username, level string) (bool, error) {
	err := collection.FindOne(ctx, bson.M{"username": username, "level": level}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	m.log.Errorf("failed to look up high score for %s/%s: %v", username, level, err)
	return false, errs.ErrInternal
}

func (m *MongoScoreStorage) GetBest(ctx context.Context, username, level string) (score.HighScore, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(scoresCollection)
	filter := bson.M{"username": username, "level": level}

	var result score.HighScore
	err := collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return score.HighScore{}, errs.ErrScoreNotFound
		}
		m.log.Errorf("failed to find high score for %s/%s: %v", username, level, err)
		return score.HighScore{}, errs.ErrInternal
	}
	return result, nil
}
