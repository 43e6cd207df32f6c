package score

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HighScore is the best (lowest) move count a user has reached on a
// level. One record per (username, level); the uniqueness is enforced
// by a compound index on the collection.
type HighScore struct {
	ID        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Level     string             `json:"level" bson:"level"`
	Moves     int                `json:"moves" bson:"moves"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
