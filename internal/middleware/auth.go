package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/buildly/construction-api/internal/auth"
	apierrors "github.com/buildly/construction-api/internal/errors"
	"github.com/buildly/construction-api/internal/models"
)

const (
	contextKeyUserID = "user_id"
	contextKeyRole   = "role"
)

// RequireAuth verifies the bearer token on the request and stores the
// resolved user id and role in the gin context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apierrors.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyRole, claims.Role)
		c.Next()
	}
}

// GetUserID retrieves the authenticated user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(contextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

// GetUserRole retrieves the authenticated user's role from context. The role
// is descriptive metadata; no route branches on it.
func GetUserRole(c *gin.Context) (models.UserRole, bool) {
	v, exists := c.Get(contextKeyRole)
	if !exists {
		return "", false
	}
	role, ok := v.(models.UserRole)
	return role, ok
}
