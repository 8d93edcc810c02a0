package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin checks that the authenticated user carries the "admin" role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
