package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"memgame/internal/adapters"
	"memgame/internal/domain/user"
	errs "memgame/internal/errors"
)

const usersCollection = "users"

type MongoUserStorage struct {
	adapter *adapters.AdapterMongo
	log     *zap.SugaredLogger
}

func NewMongoUserStorage(adapter *adapters.AdapterMongo, log *zap.SugaredLogger) *MongoUserStorage {
	return &MongoUserStorage{adapter: adapter, log: log}
}

// EnsureIndexes creates the unique email index. Runs at startup; the
// index is what makes duplicate registration a constraint violation
// instead of a race.
func (m *MongoUserStorage) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(usersCollection)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *MongoUserStorage) CreateUser(ctx context.Context, newUser user.User) (user.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(usersCollection)

	result, err := collection.InsertOne(ctx, newUser)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, errs.ErrEmailExists
		}
		m.log.Errorf("failed to insert user: %v", err)
		return user.User{}, errs.ErrInternal
	}

	newUser.ID = result.InsertedID.(primitive.ObjectID)
	return newUser, nil
}

func (m *MongoUserStorage) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(usersCollection)
	filter := bson.M{"email": email}

	var result user.User
	err := collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, errs.ErrUserNotFound
		}
		m.log.Errorf("failed to find user by email: %v", err)
		return user.User{}, errs.ErrInternal
	}
	return result, nil
}

func (m *MongoUserStorage) GetUserByID(ctx context.Context, id string) (user.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.User{}, errs.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(usersCollection)
	filter := bson.M{"_id": objectID}

	var result user.User
	err = collection.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, errs.ErrUserNotFound
		}
		m.log.Errorf("failed to find user by id: %v", err)
		return user.User{}, errs.ErrInternal
	}
	return result, nil
}

func (m *MongoUserStorage) UpdateUser(ctx context.Context, id string, upd user.Update) (user.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.User{}, errs.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if upd.Name != "" {
		set["name"] = upd.Name
	}
	if upd.Email != "" {
		set["email"] = upd.Email
	}
	if upd.PasswordHash != "" {
		set["password_hash"] = upd.PasswordHash
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(usersCollection)
	filter := bson.M{"_id": objectID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated user.User
	err = collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, errs.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, errs.ErrEmailExists
		}
		m.log.Errorf("failed to update user %s: %v", id, err)
		return user.User{}, errs.ErrInternal
	}
	return updated, nil
}

func (m *MongoUserStorage) DeleteUser(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errs.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	collection := m.adapter.Database.Collection(usersCollection)
	res, err := collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		m.log.Errorf("failed to delete user %s: %v", id, err)
		return errs.ErrInternal
	}
	if res.DeletedCount == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}
