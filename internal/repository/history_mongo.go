package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"memgame/internal/adapters"
	"memgame/internal/domain/history"
	errs "memgame/internal/errors"
)

const gamesCollection = "games"

type MongoHistoryStorage struct {
	adapter *adapters.AdapterMongo
	log     *zap.SugaredLogger
}

func NewMongoHistoryStorage(adapter *adapters.AdapterMongo, log *zap.SugaredLogger) *MongoHistoryStorage {
	return &MongoHistoryStorage{adapter: adapter, log: log}
}

func (m *MongoHistoryStorage) AddRecord(ctx context.Context, record history.GameRecord) (history.GameRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(gamesCollection)

	result, err := collection.InsertOne(ctx, record)
	if err != nil {
		m.log.Errorf("failed to insert game record: %v", err)
		return history.GameRecord{}, errs.ErrInternal
	}

	record.ID = result.InsertedID.(primitive.ObjectID)
	return record, nil
}

// ListByUser returns the user's records newest first.
func (m *MongoHistoryStorage) ListByUser(ctx context.Context, userID string) ([]history.GameRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(gamesCollection)
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		m.log.Errorf("failed to list game records for user %s: %v", userID, err)
		return nil, errs.ErrInternal
	}
	defer cursor.Close(ctx)

	records := make([]history.GameRecord, 0)
	for cursor.Next(ctx) {
		var record history.GameRecord
		if err := cursor.Decode(&record); err != nil {
			m.log.Errorf("failed to decode game record: %v", err)
			return nil, errs.ErrInternal
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		m.log.Errorf("cursor error listing game records: %v", err)
		return nil, errs.ErrInternal
	}

	return records, nil
}

// ClearByUser removes every record the user owns. Clearing an empty
// history is not an error.
func (m *MongoHistoryStorage) ClearByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(gamesCollection)
	_, err := collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		m.log.Errorf("failed to clear history for user %s: %v", userID, err)
		return errs.ErrInternal
	}
	return nil
}
