package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"vesper-voice-api/internal/infrastructure/metrics"
)

// Metrics records request count and latency per matched route.
// Unmatched paths share one label to keep cardinality bounded.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
