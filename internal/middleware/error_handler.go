package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"salonpos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const codigoInterno = "interno"

func errorInterno() *apierror.APIError {
	return apierror.NewWithCode(codigoInterno, "Error interno del servidor")
}

// conCaller adds request id, route and, when authenticated, who made the call.
func conCaller(c *gin.Context, ev *zerolog.Event) *zerolog.Event {
	ev = ev.Str("request_id", c.GetString(RequestIDKey)).
		Str("method", c.Request.Method).
		Str("route", c.FullPath())
	if claims := GetClaims(c); claims != nil {
		ev = ev.Str("usuario", claims.Username).Str("rol", claims.Rol)
	}
	return ev
}

// ErrorHandler answers errors that handlers attached with c.Error and did not
// answer themselves. Known domain errors never get here: handlers map those to
// 4xx. The client only sees a fixed message; the cause goes to the log.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		conCaller(c, log.Error()).Strs("errors", c.Errors.Errors()).Msg("request failed")
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorInterno())
		}
	}
}

// Recovery turns a panic into a 500 and logs the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				conCaller(c, log.Error()).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, errorInterno())
				} else {
					c.Abort()
				}
			}
		}()
		c.Next()
	}
}

// Logger writes one line per request: 4xx at warn, 5xx at error.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		ev := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = log.Error()
		case status >= http.StatusBadRequest:
			ev = log.Warn()
		}
		conCaller(c, ev).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
