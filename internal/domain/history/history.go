package history

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameRecord is one completed game attempt. The JSON field names match
// what the game client sends and expects back.
type GameRecord struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"user_id" bson:"user_id"`
	GameLevel   string             `json:"gameLevel" bson:"game_level"`
	NumOfMoves  int                `json:"numOfMoves" bson:"num_of_moves"`
	CompletedAt time.Time          `json:"date" bson:"completed_at"`
}
