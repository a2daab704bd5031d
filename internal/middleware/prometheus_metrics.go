package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trendlens/backend/internal/metrics"
)

// MetricsMiddleware records request count and latency for Prometheus. The
// route template (not the raw URL) is used as the path label to keep
// cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(startTime).Seconds()

		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)
	}
}
