package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hospilog/internal/obs"
)

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		obs.HTTPInFlight.Inc()
		start := time.Now()
		c.Next()
		obs.HTTPInFlight.Dec()

		// unmatched paths collapse into one label
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		obs.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		obs.HTTPRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
