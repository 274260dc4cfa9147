package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/samber/oops"

	"github.com/martijn/scoreboard/internal/core/domain"
	"github.com/martijn/scoreboard/internal/core/repository"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	query := r.db.Rebind(`
		INSERT INTO usuarios (username, password, puntos)
		VALUES (?, ?, 0)
		RETURNING id, username, password, puntos
	`)
	var user domain.User
	err := r.db.GetContext(ctx, &user, query, username, passwordHash)
	if isUniqueViolation(err) {
		return nil, oops.Code("USER_DUPLICATE").
			With("username", username).
			Wrap(repository.ErrDuplicateUsername)
	}
	if err != nil {
		return nil, oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("username", username).
			Wrap(err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := r.db.Rebind(`
		SELECT id, username, password, puntos
		FROM usuarios
		WHERE username = ?
	`)
	var user domain.User
	err := r.db.GetContext(ctx, &user, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("username", username).
			Wrap(repository.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_USERNAME_FAILED").
			With("operation", "get user by username").
			With("username", username).
			Wrap(err)
	}
	return &user, nil
}

// IncrementScore adds amount in the database and returns the stored total.
// An overflowing sum fails the statement and leaves the row unchanged.
func (r *userRepository) IncrementScore(ctx context.Context, id, amount int64) (int64, error) {
	query := r.db.Rebind(`
		UPDATE usuarios
		SET puntos = puntos + ?
		WHERE id = ?
		RETURNING puntos
	`)
	var score int64
	err := r.db.GetContext(ctx, &score, query, amount, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, oops.Code("USER_NOT_FOUND").
			With("user_id", id).
			Wrap(repository.ErrNotFound)
	}
	if isOutOfRange(err) {
		return 0, oops.Code("SCORE_OUT_OF_RANGE").
			With("user_id", id).
			With("amount", amount).
			Wrap(repository.ErrScoreOverflow)
	}
	if err != nil {
		return 0, oops.Code("SCORE_INCREMENT_FAILED").
			With("operation", "increment score").
			With("user_id", id).
			With("amount", amount).
			Wrap(err)
	}
	return score, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, username, password, puntos
		FROM usuarios
		ORDER BY id
	`
	var users []*domain.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, oops.Code("USER_LIST_FAILED").
			With("operation", "list users").
			Wrap(err)
	}
	return users, nil
}
