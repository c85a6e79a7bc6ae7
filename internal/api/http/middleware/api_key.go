package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyMiddleware guards the admin routes with a shared key carried in
// the X-API-Key header. An empty expected key means the admin surface is
// disabled outright rather than left open.
func APIKeyMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"ok":    false,
				"error": "admin API is not enabled",
			})
			return
		}

		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": "invalid API key",
			})
			return
		}

		c.Next()
	}
}
