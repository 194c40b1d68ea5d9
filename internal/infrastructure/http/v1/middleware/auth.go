package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zalint/MATA-sub002/internal/core/apperror"
	"github.com/Zalint/MATA-sub002/internal/domain/auth"
)

// HeaderAPIKey carries the shared key machine clients authenticate with.
const HeaderAPIKey = "X-API-Key"

// TokenValidator validates bearer tokens for interactive clients.
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// Auth accepts either the X-API-Key header (machine clients) or an
// Authorization Bearer JWT (interactive clients). Either one suffices.
func Auth(apiKey string, validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Machine clients: shared API key, compared in constant time.
		if provided := c.GetHeader(HeaderAPIKey); provided != "" && apiKey != "" {
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) == 1 {
				c.Set("client", "machine")
				c.Next()
				return
			}
			abortUnauthorized(c, "invalid api key")
			return
		}

		// Interactive clients: Bearer JWT.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing credentials")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set("client", "user")
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
