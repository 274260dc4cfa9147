package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/scoreboard/internal/api/dto"
	"github.com/martijn/scoreboard/internal/api/middleware"
	"github.com/martijn/scoreboard/internal/core/service"
)

// PlayerHandler serves the token-protected routes.
type PlayerHandler struct {
	authService *service.AuthService
	metrics     *middleware.Metrics
}

func NewPlayerHandler(authService *service.AuthService, metrics *middleware.Metrics) *PlayerHandler {
	return &PlayerHandler{
		authService: authService,
		metrics:     metrics,
	}
}

// Profile handles GET /perfil. The score is the one captured in the token at
// login, not the stored value.
func (h *PlayerHandler) Profile(c *gin.Context) {
	claims, ok := middleware.GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Mensaje: MsgProfileInvalidToken})
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		Mensaje:   MsgWelcomePrefix + claims.Username,
		TusPuntos: claims.Score,
	})
}

// IncrementScore handles POST /sumar-puntos
func (h *PlayerHandler) IncrementScore(c *gin.Context) {
	claims, ok := middleware.GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Mensaje: MsgScoreInvalidToken})
		return
	}

	// A body that does not decode is treated like a missing cantidad.
	var req dto.IncrementScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Cantidad = nil
	}

	score, err := h.authService.IncrementScore(c.Request.Context(), claims, req.Cantidad)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMissingAmount):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Mensaje: MsgMissingAmount})
		return
	case errors.Is(err, service.ErrAmountOutOfRange):
		h.metrics.RecordAuthEvent("score", "rejected")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Mensaje: MsgAmountOutOfRange})
		return
	case errors.Is(err, service.ErrNotFound):
		h.metrics.RecordAuthEvent("score", "rejected")
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Mensaje: MsgUserNotFound})
		return
	default:
		h.metrics.RecordAuthEvent("score", "error")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Mensaje: MsgScoreFailed})
		return
	}

	h.metrics.RecordAuthEvent("score", "success")
	c.JSON(http.StatusOK, dto.IncrementScoreResponse{
		Mensaje:      MsgScoreUpdated,
		NuevosPuntos: score,
	})
}
