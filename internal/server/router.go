// Package server builds the gin engine: shared middleware, health check and
// the dashboard routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobmate/dashboard-service/internal/dashboard"
	"jobmate/dashboard-service/internal/server/middleware"
	"jobmate/dashboard-service/internal/server/respond"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(h *dashboard.Handler, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{
			"status":  "ok",
			"service": "dashboard-service",
			"version": Version,
		})
	})
	h.RegisterRoutes(api)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	return r
}
