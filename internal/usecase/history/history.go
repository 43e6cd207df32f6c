package history

import (
	"context"
	"time"

	historyDomain "memgame/internal/domain/history"
	"memgame/internal/validation"
)

type HistoryStorage interface {
	AddRecord(ctx context.Context, record historyDomain.GameRecord) (historyDomain.GameRecord, error)
	ListByUser(ctx context.Context, userID string) ([]historyDomain.GameRecord, error)
	ClearByUser(ctx context.Context, userID string) error
}

type HistoryUseCase struct {
	store HistoryStorage
}

func NewHistoryUseCase(store HistoryStorage) *HistoryUseCase {
	return &HistoryUseCase{store: store}
}

// Append records one completed game attempt for the user.
func (h *HistoryUseCase) Append(ctx context.Context, userID, gameLevel string, numOfMoves int) (historyDomain.GameRecord, error) {
	err := validation.New().
		NotEmpty("gameLevel", gameLevel, "game level is required").
		MinInt("numOfMoves", numOfMoves, 1, "number of moves must be a valid number").
		Result()
	if err != nil {
		return historyDomain.GameRecord{}, err
	}

	return h.store.AddRecord(ctx, historyDomain.GameRecord{
		UserID:      userID,
		GameLevel:   gameLevel,
		NumOfMoves:  numOfMoves,
		CompletedAt: time.Now(),
	})
}

// ListFor returns the user's records newest first.
func (h *HistoryUseCase) ListFor(ctx context.Context, userID string) ([]historyDomain.GameRecord, error) {
	return h.store.ListByUser(ctx, userID)
}

// ClearFor wipes the user's history. Clearing nothing succeeds.
func (h *HistoryUseCase) ClearFor(ctx context.Context, userID string) error {
	return h.store.ClearByUser(ctx, userID)
}
