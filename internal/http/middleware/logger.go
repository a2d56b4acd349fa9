package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger emits one structured access log line per request. It runs after the
// OTel middleware so trace context is already on the request context.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		ctx := c.Request.Context()
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
			slog.ErrorContext(ctx, "request failed", attrs...)
			return
		}

		if c.Writer.Status() >= 500 {
			slog.ErrorContext(ctx, "request completed", attrs...)
		} else {
			slog.InfoContext(ctx, "request completed", attrs...)
		}
	}
}
