package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/webemergencia/petty_cash_app/internal/platform/metrics"
)

// pathsToSkip contains paths that are not recorded as API requests.
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// RequestMetricsMiddleware records every routed API request by route
// template, method and status.
func RequestMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		// Unmatched routes have no template; they are recorded under one label
		// to keep cardinality bounded.
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(route, c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
