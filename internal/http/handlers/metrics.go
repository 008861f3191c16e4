package handlers

import (
	"net/http"

	"backoffice/internal/metrics"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/admin/metrics
// Snapshot of the in-process request ring buffer. Best effort and
// per-instance; not a substitute for real telemetry.
func GetMetrics(c *gin.Context) {
	samples := metrics.Default.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"data":  samples,
		"total": len(samples),
	})
}
