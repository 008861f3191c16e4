package middleware

import (
	"strings"

	"backoffice/internal/adminguard"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the admin session JWT.
	SessionCookie = "admin_session"
	// EntryCookie carries the shared entry token required on admin routes.
	EntryCookie = "admin_entry"

	adminUserKey = "admin_user"
)

// AdminGuard runs the guard pipeline before any admin handler. Rejections
// abort with the guard's terminal status and a JSON body; the authorized
// user lands in the context for handlers and audit logging.
func AdminGuard(guard adminguard.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := guard.Check(sessionFromRequest(c), cookieValue(c, EntryCookie))
		if rej, ok := res.Rejection(); ok {
			c.AbortWithStatusJSON(rej.Status, gin.H{
				"message":    rej.Message,
				"request_id": GetRequestID(c),
			})
			return
		}

		user, _ := res.User()
		c.Set(adminUserKey, user)
		c.Next()
	}
}

// CurrentAdmin returns the guard-authorized user set by AdminGuard.
func CurrentAdmin(c *gin.Context) (adminguard.User, bool) {
	v, ok := c.Get(adminUserKey)
	if !ok {
		return adminguard.User{}, false
	}
	u, ok := v.(adminguard.User)
	return u, ok
}

// sessionFromRequest prefers the session cookie, falling back to a bearer
// token for API clients.
func sessionFromRequest(c *gin.Context) string {
	if v := cookieValue(c, SessionCookie); v != "" {
		return v
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

func cookieValue(c *gin.Context, name string) string {
	v, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return v
}
