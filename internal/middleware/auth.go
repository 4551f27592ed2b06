package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"parcelpro/internal/apperr"
	"parcelpro/internal/auth"
	"parcelpro/internal/models"
	"parcelpro/internal/token"
)

// TokenAuth validates the bearer token and injects the verified email
// into the context.
func TokenAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			log.Println("[AUTH] [ERROR] missing token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Println("[AUTH] [ERROR] invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		email, err := tokens.Verify(parts[1])
		if err != nil {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set("email", email)
		c.Next()
	}
}

// RequireRole enforces that the authenticated email belongs to an
// account holding one of the allowed roles. On success the account id
// is injected into the context as "userId".
func RequireRole(policy *auth.Policy, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("email")
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, err := policy.RequireRole(c.Request.Context(), email, roles...)
		if errors.Is(err, apperr.Forbidden) {
			log.Println("[AUTH] [ERROR] role check failed for:", email)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] role lookup failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}
