package repo

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"memgame/internal/domain/user"
	errs "memgame/internal/errors"
)

// UserMapStorage is an in-memory stand-in for MongoUserStorage. It
// enforces the same email uniqueness so tests exercise the real
// conflict paths.
type UserMapStorage struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewMapUserStorage() *UserMapStorage {
	return &UserMapStorage{users: make(map[string]user.User)}
}

func (u *UserMapStorage) CreateUser(_ context.Context, newUser user.User) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, existing := range u.users {
		if existing.Email == newUser.Email {
			return user.User{}, errs.ErrEmailExists
		}
	}

	newUser.ID = primitive.NewObjectID()
	u.users[newUser.ID.Hex()] = newUser
	return newUser, nil
}

func (u *UserMapStorage) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for _, existing := range u.users {
		if existing.Email == email {
			return existing, nil
		}
	}
	return user.User{}, errs.ErrUserNotFound
}

func (u *UserMapStorage) GetUserByID(_ context.Context, id string) (user.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	existing, ok := u.users[id]
	if !ok {
		return user.User{}, errs.ErrUserNotFound
	}
	return existing, nil
}

func (u *UserMapStorage) UpdateUser(_ context.Context, id string, upd user.Update) (user.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	existing, ok := u.users[id]
	if !ok {
		return user.User{}, errs.ErrUserNotFound
	}

	if upd.Email != "" && upd.Email != existing.Email {
		for otherID, other := range u.users {
			if otherID != id && other.Email == upd.Email {
				return user.User{}, errs.ErrEmailExists
			}
		}
		existing.Email = upd.Email
	}
	if upd.Name != "" {
		existing.Name = upd.Name
	}
	if upd.PasswordHash != "" {
		existing.PasswordHash = upd.PasswordHash
	}
	existing.UpdatedAt = time.Now()

	u.users[id] = existing
	return existing, nil
}

func (u *UserMapStorage) DeleteUser(_ context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.users[id]; !ok {
		return errs.ErrUserNotFound
	}
	delete(u.users, id)
	return nil
}
