package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/scoreboard/internal/api/dto"
	"github.com/martijn/scoreboard/internal/api/middleware"
	"github.com/martijn/scoreboard/internal/core/service"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
	metrics     *middleware.Metrics

	// genericLoginErrors hides whether the username or the password was wrong.
	genericLoginErrors bool
}

func NewAuthHandler(
	authService *service.AuthService,
	logger *slog.Logger,
	metrics *middleware.Metrics,
	genericLoginErrors bool,
) *AuthHandler {
	return &AuthHandler{
		authService:        authService,
		logger:             logger,
		metrics:            metrics,
		genericLoginErrors: genericLoginErrors,
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Mensaje: MsgMissingCredentials})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Usuario, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingCredentials):
		h.metrics.RecordAuthEvent("register", "invalid")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Mensaje: MsgMissingCredentials})
		return
	case errors.Is(err, service.ErrPasswordTooLong):
		h.metrics.RecordAuthEvent("register", "invalid")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Mensaje: MsgPasswordTooLong})
		return
	case errors.Is(err, service.ErrDuplicateUsername):
		h.metrics.RecordAuthEvent("register", "duplicate")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Mensaje: MsgUsernameTaken})
		return
	default:
		h.metrics.RecordAuthEvent("register", "error")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Mensaje: MsgRegisterFailed})
		return
	}

	h.metrics.RecordAuthEvent("register", "success")
	h.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	c.JSON(http.StatusOK, dto.RegisterResponse{
		Mensaje: MsgUserCreated,
		Usuario: user.Username,
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Mensaje: MsgInvalidRequest})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Usuario, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		h.metrics.RecordAuthEvent("login", "rejected")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Mensaje: h.loginFailureMessage(err)})
		return
	default:
		h.metrics.RecordAuthEvent("login", "error")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Mensaje: MsgLoginFailed})
		return
	}

	h.metrics.RecordAuthEvent("login", "success")
	c.JSON(http.StatusOK, dto.LoginResponse{
		Mensaje: MsgLoginOK,
		Token:   token,
	})
}

func (h *AuthHandler) loginFailureMessage(err error) string {
	if h.genericLoginErrors {
		return MsgInvalidCredentials
	}
	if errors.Is(err, service.ErrUserNotFound) {
		return MsgUserNotFound
	}
	return MsgWrongPassword
}
