package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martijn/scoreboard/internal/api/dto"
	"github.com/martijn/scoreboard/internal/core/service"
)

const (
	AuthHeaderKey  = "Authorization"
	AuthContextKey = "auth"
)

// TokenAuthenticator verifies a raw token.
type TokenAuthenticator interface {
	Authenticate(token string) (*service.TokenClaims, error)
}

// AuthMessages are the client-facing messages of the auth gate.
type AuthMessages struct {
	Missing string // no token: 403
	Invalid string // bad or expired token: 401
}

// AuthMiddleware creates a JWT authentication middleware. The token is sent
// as-is in the Authorization header; a "Bearer " prefix is tolerated.
func AuthMiddleware(auth TokenAuthenticator, msgs AuthMessages) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(AuthHeaderKey))
		if scheme, rest, ok := strings.Cut(token, " "); ok && strings.EqualFold(scheme, "Bearer") {
			token = strings.TrimSpace(rest)
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Mensaje: msgs.Missing})
			return
		}

		claims, err := auth.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Mensaje: msgs.Invalid})
			return
		}

		// Store claims in context
		c.Set(AuthContextKey, claims)

		c.Next()
	}
}

// GetAuthClaims retrieves auth claims from context
func GetAuthClaims(c *gin.Context) (*service.TokenClaims, bool) {
	claims, exists := c.Get(AuthContextKey)
	if !exists {
		return nil, false
	}

	tokenClaims, ok := claims.(*service.TokenClaims)
	return tokenClaims, ok
}
