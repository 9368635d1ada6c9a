package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayursutra/clinic-api/pkg/logger"
)

// RequestLogger emits one structured line per request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		reqLog := log.WithFields(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"request_id": RequestIDFrom(c),
		})

		var lastErr error
		if last := c.Errors.Last(); last != nil {
			lastErr = last.Err
		}

		switch {
		case c.Writer.Status() >= 500:
			reqLog.Error(lastErr, "request failed")
		case c.Writer.Status() >= 400:
			reqLog.Warn("request rejected")
		default:
			reqLog.Info("request completed")
		}
	}
}
