package middleware

import (
	"time"

	"checkin/services"

	"github.com/gin-gonic/gin"
)

// Metrics records one observation per request, labelled by the matched route
func Metrics(m *services.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
