package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/scoreboard/internal/api/dto"
	"github.com/martijn/scoreboard/internal/logging"
)

const InternalErrorMessage = "Error interno del servidor"

// ErrorHandlerMiddleware turns panics into a generic 500 and logs the errors
// handlers attach with c.Error. Details never reach the client.
func ErrorHandlerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic while handling request",
					"panic", fmt.Sprint(rec),
					"path", c.Request.URL.Path,
					"request_id", c.GetString(RequestIDKey),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Mensaje: InternalErrorMessage,
				})
			}
		}()

		c.Next()

		for _, err := range c.Errors {
			logging.LogError(logger, "request failed", err.Err,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", c.GetString(RequestIDKey),
			)
		}
	}
}
