package service

import (
	"errors"
	"fmt"
)

// Errors returned by AuthService. Handlers map them onto HTTP status codes;
// anything else is an internal failure.
var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrPasswordTooLong    = errors.New("password is too long")
	ErrDuplicateUsername  = errors.New("username already taken")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrInvalidCredentials)
	ErrWrongPassword      = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)

	ErrInvalidToken     = errors.New("invalid token")
	ErrNotFound         = errors.New("user not found")
	ErrMissingAmount    = errors.New("amount is required")
	ErrAmountOutOfRange = errors.New("amount outside the allowed range")
)
