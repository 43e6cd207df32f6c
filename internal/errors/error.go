package errors

import "errors"

var (
	ErrUserNotFound       = errors.New("user with provided id was not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is missing, malformed or expired")
	ErrScoreNotFound      = errors.New("no high score yet")
	ErrInternal           = errors.New("internal error")
)
