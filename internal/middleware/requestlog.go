package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hedgeshield/hedgeshield/internal/pkg/logger"
)

// RequestLog emits one structured line per request once the handler chain has
// finished, including the resolved tenant when one was set.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"tenant", c.GetString(ContextTenantKey),
			"client_ip", c.ClientIP(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
