package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	userDomain "memgame/internal/domain/user"
	errs "memgame/internal/errors"
	"memgame/internal/validation"
)

const passwordHashCost = 10

type UserStorage interface {
	UpdateUser(ctx context.Context, id string, upd userDomain.Update) (userDomain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UpdateRequest carries the optional profile fields. Empty means
// "leave unchanged".
type UpdateRequest struct {
	Name     string
	Email    string
	Password string
}

type UserUsecaseHandler struct {
	userStorage UserStorage
}

func NewUserUsecaseHandler(u UserStorage) *UserUsecaseHandler {
	return &UserUsecaseHandler{userStorage: u}
}

// UpdateUser applies a partial profile change. A provided password is
// re-hashed before it reaches storage; the plaintext never leaves this
// function.
func (u *UserUsecaseHandler) UpdateUser(ctx context.Context, id string, req UpdateRequest) (userDomain.User, error) {
	v := validation.New()
	if req.Email != "" {
		v.Email("email", req.Email)
	}
	if req.Password != "" {
		v.MinLen("password", req.Password, validation.MinPasswordLen, "password must be at least 6 characters")
	}
	if err := v.Result(); err != nil {
		return userDomain.User{}, err
	}

	upd := userDomain.Update{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
		if err != nil {
			return userDomain.User{}, errs.ErrInternal
		}
		upd.PasswordHash = string(hash)
	}

	return u.userStorage.UpdateUser(ctx, id, upd)
}

func (u *UserUsecaseHandler) DeleteUser(ctx context.Context, id string) error {
	return u.userStorage.DeleteUser(ctx, id)
}
