package middleware

import (
	"net/http"

	"vendora/models"

	"github.com/gin-gonic/gin"
)

// RequireRole restricts a route to callers holding one of the given roles.
// Admins pass every role check.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		if role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}
