// README: Firebase ID-token auth middleware; exposes caller UID and role.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"overlook/internal/infra"
)

const (
	ctxUIDKey  = "auth_uid"
	ctxRoleKey = "auth_role"
)

// Auth verifies the Bearer token on every request and stashes the caller's
// UID and role claim in the gin context.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimPrefix(header, prefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxUIDKey, token.UID)
		role := ""
		if v, ok := token.Claims["role"].(string); ok {
			role = v
		}
		c.Set(ctxRoleKey, role)
		c.Next()
	}
}

// CallerUID returns the authenticated caller's UID, or "" outside Auth.
func CallerUID(c *gin.Context) string {
	return c.GetString(ctxUIDKey)
}

// CallerRole returns the caller's role claim ("rider" or "driver").
func CallerRole(c *gin.Context) string {
	return c.GetString(ctxRoleKey)
}
