package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles restricts a route to admins whose role is in allowedRoles.
// Must run after AdminGuard, which puts the user in the context.
//
//	users.DELETE("/:id", RequireRoles("owner", "admin"), handler)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentAdmin(c)
		if !ok || user.Role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":    "unauthorized: no role in context",
				"request_id": GetRequestID(c),
			})
			return
		}

		if _, ok := allowed[strings.ToLower(strings.TrimSpace(user.Role))]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":    "forbidden: role not permitted",
				"request_id": GetRequestID(c),
			})
			return
		}

		c.Next()
	}
}
