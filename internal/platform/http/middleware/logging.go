package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trading_journal/internal/platform/logger"
)

// Logging writes one line per request. 5xx responses log at error level, 4xx at warn.
// The request id comes from the context logger installed by RequestID.
func Logging(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			logger.StringField("method", c.Request.Method),
			logger.StringField("path", c.Request.URL.Path),
			logger.IntField("status", status),
			zap.Duration("latency", time.Since(start)),
			logger.StringField("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logger.StringField("errors", c.Errors.String()))
		}

		reqLog := log.FromContext(c.Request.Context())
		switch {
		case status >= http.StatusInternalServerError:
			reqLog.Error("request completed", fields...)
		case status >= http.StatusBadRequest:
			reqLog.Warn("request completed", fields...)
		default:
			reqLog.Info("request completed", fields...)
		}
	}
}
