package handlers

import (
	"net/http"

	"backoffice/internal/http/middleware"
	"backoffice/internal/signing"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
)

// BillingReturn serves /billing/success and /billing/cancel. The page shows
// a generic status either way; the concrete verification state only goes to
// the server log, and checkout fields are exposed only when verified.
func BillingReturn(outcome, webhookSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := map[string]string{}
		for k, vs := range c.Request.URL.Query() {
			if len(vs) > 0 {
				params[k] = vs[0]
			}
		}

		res := signing.Evaluate(params, webhookSecret)
		utils.LogEvent(middleware.GetRequestID(c), "billing", outcome, "verification="+string(res.State))

		body := gin.H{
			"status":   outcome,
			"verified": res.Verified(),
		}
		if res.Verified() {
			if v, ok := res.Params["checkout_id"]; ok {
				body["checkout_id"] = v
			}
			if v, ok := res.Params["order_id"]; ok {
				body["order_id"] = v
			}
		}
		c.JSON(http.StatusOK, body)
	}
}
