package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const corsAllowHeaders = "Authorization, Content-Type, " + RequestIDHeader

// CORS lets the front-desk and back-office UIs call the API from a browser.
// Outside production any origin is allowed. In production only the listed
// origins are echoed back; other origins get no CORS headers and their
// preflight is refused.
func CORS(origins []string, production bool) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		permitido := true
		switch {
		case !production:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		default:
			permitido = origin == ""
		}
		if permitido {
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
			c.Header("Access-Control-Expose-Headers", RequestIDHeader)
		}

		if c.Request.Method == http.MethodOptions {
			if !permitido {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
