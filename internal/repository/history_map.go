package repo

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"memgame/internal/domain/history"
)

// HistoryMapStorage is an in-memory stand-in for MongoHistoryStorage.
type HistoryMapStorage struct {
	mu      sync.Mutex
	records []history.GameRecord
}

func NewMapHistoryStorage() *HistoryMapStorage {
	return &HistoryMapStorage{}
}

func (h *HistoryMapStorage) AddRecord(_ context.Context, record history.GameRecord) (history.GameRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	record.ID = primitive.NewObjectID()
	h.records = append(h.records, record)
	return record, nil
}

func (h *HistoryMapStorage) ListByUser(_ context.Context, userID string) ([]history.GameRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := make([]history.GameRecord, 0)
	for _, record := range h.records {
		if record.UserID == userID {
			result = append(result, record)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CompletedAt.After(result[j].CompletedAt)
	})
	return result, nil
}

func (h *HistoryMapStorage) ClearByUser(_ context.Context, userID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.records[:0]
	for _, record := range h.records {
		if record.UserID != userID {
			kept = append(kept, record)
		}
	}
	h.records = kept
	return nil
}
