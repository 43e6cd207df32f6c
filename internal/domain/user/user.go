package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// Update describes a partial profile change. Zero-valued fields are
// left untouched; Password carries an already-hashed value.
type Update struct {
	Name         string
	Email        string
	PasswordHash string
}

func (u Update) Empty() bool {
	return u.Name == "" && u.Email == "" && u.PasswordHash == ""
}
