package middleware

import (
	"time"

	"myapp/metrics"

	"github.com/gin-gonic/gin"
)

// RequestMetrics observes the latency of every request.
func RequestMetrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		reg.RequestDuration.Observe(time.Since(start).Seconds())
	}
}
