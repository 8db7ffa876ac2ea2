package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobmate/dashboard-service/internal/apperr"
)

// Logging emits one structured log line per request. Server errors also
// carry the stack captured when the DomainError was created.
func Logging(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("request_id", RequestIDFromContext(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if userID := UserIDFromContext(c); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			if last := c.Errors.Last(); last != nil {
				var de *apperr.DomainError
				if errors.As(last.Err, &de) && len(de.StackTrace()) > 0 {
					fields = append(fields, zap.ByteString("stack", de.StackTrace()))
				}
			}
			logger.Error("request.complete", fields...)
		case status >= 400:
			logger.Warn("request.complete", fields...)
		default:
			logger.Info("request.complete", fields...)
		}
	}
}
