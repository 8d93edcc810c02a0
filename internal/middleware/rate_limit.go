package middleware

import (
	"net/http"
	"time"

	"hearthside_back_end/internal/cache"

	"github.com/gin-gonic/gin"
)

// RateLimit caps how many requests one client may issue inside the window.
// Keyed by user when authenticated, by client IP otherwise.
func RateLimit(scope string, max int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetString("user_id")
		if id == "" {
			id = c.ClientIP()
		}

		count, err := cache.IncrementRateLimit(cache.RateLimitKey(scope, id), window)
		if err != nil {
			// Redis hiccup: do not take the storefront down over a counter.
			c.Next()
			return
		}

		if count > max {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, slow down"})
			c.Abort()
			return
		}

		c.Next()
	}
}
