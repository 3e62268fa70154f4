package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bookstore-microservices/pkg/metrics"
)

// Metrics ghi số request và latency theo route template (không theo path thật để tránh label bùng nổ)
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
