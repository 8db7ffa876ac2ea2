package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"jobmate/dashboard-service/internal/apperr"
	"jobmate/dashboard-service/internal/server/respond"
)

// UserHeader carries the caller's id, set by the gateway in front of the
// service.
const UserHeader = "x-user-id"

const userIDKey = "userId"

// RequireUser rejects requests without a usable x-user-id header. Ids may
// not contain ':' since it separates key segments in the store.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(UserHeader))
		if id == "" {
			respond.FromError(c, apperr.Unauthorized("missing x-user-id header", nil))
			return
		}
		if strings.ContainsAny(id, ":*?[]") {
			respond.FromError(c, apperr.InvalidInput("invalid x-user-id header", nil))
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// UserIDFromContext returns the id stored by RequireUser.
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(userIDKey)
}
