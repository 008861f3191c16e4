package middleware

import (
	"log"
	"time"

	"backoffice/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Logger prints a minimal request log line and feeds the in-process metrics
// ring buffer.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		reqID := GetRequestID(c)
		status := c.Writer.Status()
		latencyMS := float64(latency.Microseconds()) / 1000.0

		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s",
			reqID,
			c.Request.Method,
			c.Request.URL.Path,
			status,
			latencyMS,
			c.ClientIP(),
		)

		metrics.Default.Record(metrics.Sample{
			Method:    c.Request.Method,
			Path:      c.FullPath(),
			Status:    status,
			LatencyMS: latencyMS,
			At:        start,
		})
	}
}
