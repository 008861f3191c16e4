package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"backoffice/internal/cache"
	"backoffice/internal/http/middleware"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
)

type revalidateRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

// RevalidateCache serves POST /api/admin/cache/revalidate. Bearer-token
// protected, separate from the session guard so build pipelines can call it.
func RevalidateCache(store cache.Store, token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			RespondError(c, http.StatusServiceUnavailable, "cache revalidation is not configured", nil)
			return
		}

		provided := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(provided)), []byte(token)) != 1 {
			RespondError(c, http.StatusUnauthorized, "invalid revalidation token", nil)
			return
		}

		var req revalidateRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		reqID := middleware.GetRequestID(c)
		w := cache.Wrapper{Store: store, RequestID: reqID}
		n := w.Invalidate(c.Request.Context(), req.Tags)

		utils.LogEvent(reqID, "cache", "revalidate", "tags="+strings.Join(req.Tags, ","))
		c.JSON(http.StatusOK, gin.H{"revalidated": n, "tags": req.Tags})
	}
}
