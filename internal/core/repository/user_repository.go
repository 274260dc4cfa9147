package repository

import (
	"context"
	"errors"

	"github.com/martijn/scoreboard/internal/core/domain"
)

var (
	// ErrNotFound is returned when no row matches the lookup key.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrScoreOverflow is returned when an increment would leave the 64-bit
	// score range. The stored score is unchanged.
	ErrScoreOverflow = errors.New("score out of range")
)

// UserRepository is the credential store. Implementations must make
// IncrementScore a single atomic add-and-return so concurrent increments
// for the same user are never lost.
type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	IncrementScore(ctx context.Context, id, amount int64) (int64, error)
	List(ctx context.Context) ([]*domain.User, error)
}
