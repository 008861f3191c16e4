package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"backoffice/internal/cache"
	intconfig "backoffice/internal/config"
	"backoffice/internal/http/middleware"
	"backoffice/internal/pagination"
	"backoffice/internal/repositories"
	"backoffice/internal/services"

	"github.com/gin-gonic/gin"
)

const usageCacheTTL = 60 * time.Second

// UsageCacheConfig wires the advisory cache into the usage endpoint. A nil
// Background means the deferred write runs on its own goroutine; tests pass
// a synchronous sink.
type UsageCacheConfig struct {
	Store      cache.Store
	Background func(fn func())
}

// GET /api/v1/admin/usage?page=&perPage=
// Responses pass through the advisory cache; X-Cache reports the outcome.
func GetUsage(cfg UsageCacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := pagination.Normalize(c.Query("page"), c.Query("perPage"))
		reqID := middleware.GetRequestID(c)

		w := cache.Wrapper{Store: cfg.Store, Background: cfg.Background, RequestID: reqID}
		key := cache.BuildKey("usage", "list", map[string]any{
			"page":    p.Page,
			"perPage": p.PerPage,
		})

		payload, hit, err := w.Do(c.Request.Context(), key, usageCacheTTL, func() ([]byte, error) {
			svc := services.UsageService{UsageRepo: repositories.UsageRepository{}, RequestID: reqID}
			rows, total, err := svc.List(p)
			if err != nil {
				return nil, err
			}
			return json.Marshal(gin.H{
				"data":    rows,
				"total":   total,
				"page":    p.Page,
				"perPage": p.PerPage,
			})
		})
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to aggregate usage", err)
			return
		}

		if hit {
			c.Header("X-Cache", "HIT")
		} else {
			c.Header("X-Cache", "MISS")
		}
		c.Header("Cache-Control", "private, max-age=60")
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
	}
}

// GET /api/v1/admin/usage/export
func ExportUsagePDF(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	svc := services.UsageService{UsageRepo: repositories.UsageRepository{}, RequestID: reqID}

	// export covers the first page at the maximum window; deeper exports go
	// through the JSON endpoint
	rows, _, err := svc.List(pagination.Pagination{Page: 1, PerPage: pagination.MaxPerPage})
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to aggregate usage", err)
		return
	}

	data, filename, err := svc.BuildReportPDF(rows, time.Now())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to render report", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// GET /api/v1/admin/usage/summary
func UsageSummary(env intconfig.Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if env.SummaryUpstreamURL == "" {
			RespondError(c, http.StatusNotImplemented, "usage summarizer is not configured", nil)
			return
		}

		reqID := middleware.GetRequestID(c)
		svc := services.UsageService{
			UsageRepo:  repositories.UsageRepository{},
			RequestID:  reqID,
			SummaryURL: env.SummaryUpstreamURL,
		}

		rows, _, err := svc.List(pagination.Pagination{Page: 1, PerPage: pagination.MaxPerPage})
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to aggregate usage", err)
			return
		}

		summary, err := svc.Summarize(c.Request.Context(), rows)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"summary": summary}})
	}
}
