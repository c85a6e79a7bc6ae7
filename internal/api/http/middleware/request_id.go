package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// requestIDKey is the key used to store the request ID in context
type requestIDKey struct{}

// RequestIDMiddleware ensures every request has a stable request ID:
// the X-Request-Id header when present, a fresh one otherwise. The ID is
// stored in the request context for the service loggers, echoed back in
// the X-Request-Id response header, and stamped on the request log line.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader("X-Request-Id"))
		if rid == "" {
			rid = newRequestID()
		}

		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, rid)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-Id", rid)

		start := time.Now()
		c.Next()

		log.Printf(
			"[req] id=%s method=%s path=%s status=%d latency=%s",
			rid,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}

// GetRequestID extracts the request ID from a standard context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

func newRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err == nil {
		return hex.EncodeToString(b)
	}
	// fallback (should be rare)
	return time.Now().Format("20060102T150405.000000000")
}
