package api

import (
	"log"
	stdhttp "net/http"

	"backoffice/internal/adminguard"
	"backoffice/internal/cache"
	intconfig "backoffice/internal/config"
	h "backoffice/internal/http/handlers"
	"backoffice/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, store cache.Store) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	guard := adminguard.Guard{
		JWTSecret:     []byte(env.JWTSecret),
		AllowedEmails: env.AdminEmails,
		EntryToken:    env.EntryToken,
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// build-pipeline surface, bearer token instead of session guard
		api.POST("/admin/cache/revalidate", h.RevalidateCache(store, env.RevalidateToken))
	}

	v1 := r.Group("/api/v1/admin")
	{
		v1.POST("/login", h.Login(env, guard))
		v1.POST("/logout", h.Logout())

		// everything below passes the guard first
		guarded := v1.Group("", middleware.AdminGuard(guard))

		users := guarded.Group("/users")
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.POST("", middleware.RequireRoles("owner", "admin"), h.CreateUser)
		users.PATCH("/:id", middleware.RequireRoles("owner", "admin"), h.UpdateUser)
		users.DELETE("/:id", middleware.RequireRoles("owner", "admin"), h.DeleteUser)

		credits := guarded.Group("/credits")
		credits.GET("", h.GetCreditTransactions)
		credits.POST("", middleware.RequireRoles("owner", "admin"), h.AdjustCredits)

		usage := guarded.Group("/usage")
		usage.GET("", h.GetUsage(h.UsageCacheConfig{Store: store}))
		usage.GET("/export", h.ExportUsagePDF)
		usage.GET("/summary", h.UsageSummary(env))

		guarded.GET("/metrics", h.GetMetrics)
		guarded.GET("/settings", h.GetSettings)
		guarded.PUT("/settings", h.UpdateSetting)
	}

	// payment-provider redirect targets, unauthenticated by design
	billing := r.Group("/billing")
	billing.GET("/success", h.BillingReturn("success", env.PaymentWebhookSecret))
	billing.GET("/cancel", h.BillingReturn("cancel", env.PaymentWebhookSecret))

	h.SetRouter(r)
	return r
}
