package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/martijn/scoreboard/internal/api/dto"
	"github.com/martijn/scoreboard/internal/api/middleware"
	"github.com/martijn/scoreboard/internal/core/repository"
	"github.com/martijn/scoreboard/internal/core/service"
	"github.com/martijn/scoreboard/internal/infrastructure/database"
)

// testClock lets tests move token time forward.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testEnv holds all test dependencies
type testEnv struct {
	db     *database.DB
	users  repository.UserRepository
	router *gin.Engine
	clock  *testClock
	logs   *bytes.Buffer
}

type testOptions struct {
	genericLoginErrors bool
	scorePolicy        service.ScorePolicy
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T, opts testOptions) *testEnv {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.DriverSQLite, ":memory:", database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Migrate(ctx)
	require.NoError(t, err)

	// Base time: Nov 1, 2025
	clock := &testClock{now: time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)}
	tokens, err := service.NewTokenService("test-secret", "HS256", service.WithClock(clock.Now))
	require.NoError(t, err)

	users := database.NewUserRepository(db)
	authService, err := service.NewAuthService(users, service.NewBcryptHasher(bcrypt.MinCost), tokens, service.AuthConfig{
		ScorePolicy: opts.scorePolicy,
	})
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))
	authHandler := NewAuthHandler(authService, logger, nil, opts.genericLoginErrors)
	playerHandler := NewPlayerHandler(authService, nil)

	// Setup gin router in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware(logger))

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/perfil", middleware.AuthMiddleware(authService, middleware.AuthMessages{
		Missing: MsgProfileNoToken,
		Invalid: MsgProfileInvalidToken,
	}), playerHandler.Profile)
	router.POST("/sumar-puntos", middleware.AuthMiddleware(authService, middleware.AuthMessages{
		Missing: MsgScoreNoToken,
		Invalid: MsgScoreInvalidToken,
	}), playerHandler.IncrementScore)

	return &testEnv{
		db:     db,
		users:  users,
		router: router,
		clock:  clock,
		logs:   logs,
	}
}

// makeRequest performs a request with an optional JSON body and raw token.
// A string body is sent verbatim.
func (env *testEnv) makeRequest(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user and returns a fresh token for it.
func (env *testEnv) registerAndLogin(t *testing.T, username, password string) string {
	t.Helper()

	w := env.makeRequest(t, http.MethodPost, "/register", dto.CredentialsRequest{Usuario: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	return env.login(t, username, password)
}

func (env *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	w := env.makeRequest(t, http.MethodPost, "/login", dto.CredentialsRequest{Usuario: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return parseResponse[dto.LoginResponse](t, w).Token
}

// parseResponse decodes the recorder body into T
func parseResponse[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var resp T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

func ptr[T any](v T) *T {
	return &v
}
