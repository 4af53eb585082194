package middleware

import (
	"strconv"

	"salonpos/internal/observability"

	"github.com/gin-gonic/gin"
)

// Metrics counts requests per route template and status code.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observability.Request(route, strconv.Itoa(c.Writer.Status()))
	}
}
