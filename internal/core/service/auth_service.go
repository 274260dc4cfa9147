package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"

	"github.com/martijn/scoreboard/internal/core/domain"
	"github.com/martijn/scoreboard/internal/core/repository"
)

// AuthConfig holds the tunables of AuthService.
type AuthConfig struct {
	TokenTTL    time.Duration
	ScorePolicy ScorePolicy
}

type AuthService struct {
	users       repository.UserRepository
	hasher      PasswordHasher
	tokens      *TokenService
	tokenTTL    time.Duration
	scorePolicy ScorePolicy

	// dummyHash is verified against when a username does not exist so that
	// unknown users cost the same as wrong passwords.
	dummyHash string
}

func NewAuthService(
	users repository.UserRepository,
	hasher PasswordHasher,
	tokens *TokenService,
	cfg AuthConfig,
) (*AuthService, error) {
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, oops.Code("AUTH_INIT_FAILED").
			With("operation", "hash dummy password").
			Wrap(err)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}

	return &AuthService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		tokenTTL:    cfg.TokenTTL,
		scorePolicy: cfg.ScorePolicy,
		dummyHash:   dummyHash,
	}, nil
}

// Register creates a user with score 0. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	hash, err := s.hasher.Hash(password)
	if errors.Is(err, ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			With("username", username).
			Wrap(err)
	}

	user, err := s.users.Create(ctx, username, hash)
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return nil, ErrDuplicateUsername
	}
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "create user").
			With("username", username).
			Wrap(err)
	}

	return user, nil
}

// Login verifies the password and returns a signed token carrying the
// user's id, username and current score.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, lookupErr := s.users.FindByUsername(ctx, username)

	var targetHash string
	switch {
	case lookupErr == nil:
		targetHash = user.PasswordHash
	case errors.Is(lookupErr, repository.ErrNotFound):
		targetHash = s.dummyHash
	default:
		return "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get user by username").
			Wrap(lookupErr)
	}

	// Always verify, even for unknown users.
	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if user == nil {
		return "", ErrUserNotFound
	}
	if verifyErr != nil {
		return "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			With("user_id", user.ID).
			Wrap(verifyErr)
	}
	if !valid {
		return "", ErrWrongPassword
	}

	token, err := s.tokens.Issue(TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Score:    user.Score,
	}, s.tokenTTL)
	if err != nil {
		return "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			With("user_id", user.ID).
			Wrap(err)
	}

	return token, nil
}

// Authenticate verifies a bearer token without touching the store.
func (s *AuthService) Authenticate(token string) (*TokenClaims, error) {
	return s.tokens.Verify(token)
}

// IncrementScore adds amount to the stored score of the token's user and
// returns the new stored value. A nil amount is ErrMissingAmount; a sum that
// would overflow is ErrAmountOutOfRange and leaves the score unchanged.
func (s *AuthService) IncrementScore(ctx context.Context, claims *TokenClaims, amount *int64) (int64, error) {
	if amount == nil {
		return 0, ErrMissingAmount
	}
	if !s.scorePolicy.Allows(*amount) {
		return 0, ErrAmountOutOfRange
	}

	score, err := s.users.IncrementScore(ctx, claims.UserID, *amount)
	switch {
	case err == nil:
		return score, nil
	case errors.Is(err, repository.ErrNotFound):
		return 0, ErrNotFound
	case errors.Is(err, repository.ErrScoreOverflow):
		return 0, ErrAmountOutOfRange
	default:
		return 0, oops.Code("SCORE_INCREMENT_FAILED").
			With("user_id", claims.UserID).
			With("amount", *amount).
			Wrap(err)
	}
}
