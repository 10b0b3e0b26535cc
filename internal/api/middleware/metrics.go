package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jouerflux/jouerflux/internal/metrics"
)

// Metrics records request latency by route template, so ids in paths do
// not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
