package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	userDomain "memgame/internal/domain/user"
	errs "memgame/internal/errors"
	"memgame/internal/validation"
)

// bcrypt work factor fixed at 10, matching the hashes of the existing
// user base.
const passwordHashCost = 10

type UserStorage interface {
	CreateUser(ctx context.Context, newUser userDomain.User) (userDomain.User, error)
	GetUserByEmail(ctx context.Context, email string) (userDomain.User, error)
	GetUserByID(ctx context.Context, id string) (userDomain.User, error)
}

type TokenIssuer interface {
	Generate(userID string) (string, error)
}

type AuthUsecaseHandler struct {
	userStorage UserStorage
	tokens      TokenIssuer
}

func NewAuthUsecaseHandler(u UserStorage, t TokenIssuer) *AuthUsecaseHandler {
	return &AuthUsecaseHandler{
		userStorage: u,
		tokens:      t,
	}
}

// RegisterUser validates the input, stores the user with a hashed
// password and signs a session token for the fresh account.
func (a *AuthUsecaseHandler) RegisterUser(ctx context.Context, name, email, password string) (string, error) {
	err := validation.New().
		NotEmpty("name", name, "name is required").
		Email("email", email).
		MinLen("password", password, validation.MinPasswordLen, "password must be at least 6 characters").
		Result()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", errs.ErrInternal
	}

	now := time.Now()
	created, err := a.userStorage.CreateUser(ctx, userDomain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", err
	}

	return a.tokens.Generate(created.ID.Hex())
}

// LoginUser signs a token for a valid email/password pair. Unknown
// email and wrong password both come back as ErrInvalidCredentials so
// the response never reveals which one it was.
func (a *AuthUsecaseHandler) LoginUser(ctx context.Context, email, password string) (string, error) {
	err := validation.New().
		Email("email", email).
		NotEmpty("password", password, "password is required").
		Result()
	if err != nil {
		return "", err
	}

	userFromDb, err := a.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return "", errs.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userFromDb.PasswordHash), []byte(password)); err != nil {
		return "", errs.ErrInvalidCredentials
	}

	return a.tokens.Generate(userFromDb.ID.Hex())
}

func (a *AuthUsecaseHandler) GetUserByID(ctx context.Context, id string) (userDomain.User, error) {
	return a.userStorage.GetUserByID(ctx, id)
}
