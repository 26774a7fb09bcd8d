package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tikoncha/internal/authz"
)

// RequireRoles allows only the named roles through.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	allowedSet := map[string]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no role in context"})
			return
		}
		role, _ := v.(string)
		if _, ok := allowedSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// RequireStaff admits teacher-level roles and above.
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(authz.Staff()...)
}
