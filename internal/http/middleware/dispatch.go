package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/http/filter"
)

// NotFoundBody is the fixed body answered when no route applies.
const NotFoundBody = "Not Found."

// Dispatch turns the failure recorded by a route into a response. It runs
// the rest of the chain and, when nothing was written, classifies the last
// recorded error:
//
//   - a soft rejection (including NoRoute): 404 with NotFoundBody
//   - an exceeded body limit: the PayloadTooLarge envelope
//   - an *apierr.Error: its envelope, logged at info; the cause is logged
//     only for internal failures and never rendered
//   - anything else: a framework-level fault, logged at error and answered
//     with a bare 500
func Dispatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		lg := LoggerFrom(c)

		var (
			mbe *http.MaxBytesError
			ae  *apierr.Error
		)
		switch {
		case filter.IsNotMatched(err):
			ObserveAPIError("NotFound")
			lg.Debug().Err(err).Msg("no route")
			c.String(http.StatusNotFound, NotFoundBody)
		case errors.As(err, &mbe):
			ae = apierr.PayloadTooLarge()
			ObserveAPIError(string(ae.Kind))
			lg.Info().Int64("limit", mbe.Limit).Str("type", string(ae.Kind)).Msg("api error")
			apierr.Write(c, ae)
		case errors.As(err, &ae):
			ObserveAPIError(string(ae.Kind))
			ev := lg.Info().Str("type", string(ae.Kind)).Int("status", ae.Status)
			if ae.IsInternal() {
				ev = ev.AnErr("cause", ae.Cause())
			}
			ev.Msg("api error")
			apierr.Write(c, ae)
		default:
			ObserveAPIError("Unclassified")
			lg.Error().Err(err).Msg("unclassified failure")
			c.AbortWithStatus(http.StatusInternalServerError)
		}
	}
}

// NotFound is the NoRoute handler. It records a soft rejection so that
// unknown paths and method mismatches share one response.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(filter.NotMatched("no route " + c.Request.URL.Path))
		c.Abort()
	}
}

// DevCORS decorates every response with permissive cross-origin headers for
// a single development origin and answers preflight requests with 200.
func DevCORS(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, PATCH, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
