package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobmate/dashboard-service/internal/server/respond"
)

// Recovery recovers from panics and returns a standardized error response.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic",
					zap.String("request_id", RequestIDFromContext(c)),
					zap.Any("error", rec),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.Stack("stack"))
				respond.Error(c, http.StatusInternalServerError, "INTERNAL", "Unexpected server error")
			}
		}()
		c.Next()
	}
}
