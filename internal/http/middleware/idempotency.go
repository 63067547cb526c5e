package middleware

// Idempotency-Key support for order placement. The middleware only validates
// and stashes the key; the lookup and the record of a completed order happen
// inside the cart service, in the same transaction as the order itself.

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/pigskit/pigskit-server/internal/apierr"
)

// HeaderIdempotencyKey is the request header carrying the client's key.
const HeaderIdempotencyKey = "Idempotency-Key"

const ctxKeyIdemKey = "idem.key"

var defaultIdemPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// IdempotencyOptions configures IdempotencyKey.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; defaults to ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// IdempotencyKey validates the Idempotency-Key header when present and
// stores it for GetIdempotencyKey. An absent header is a no-op. An invalid
// one is recorded as InvalidData("Idempotency-Key") for Dispatch and the
// chain is aborted.
func IdempotencyKey(opts IdempotencyOptions) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultIdemPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			_ = c.Error(apierr.InvalidData(HeaderIdempotencyKey))
			c.Abort()
			return
		}
		c.Set(ctxKeyIdemKey, key)
		c.Next()
	}
}

// GetIdempotencyKey returns the validated key, if any.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	s := c.GetString(ctxKeyIdemKey)
	return s, s != ""
}
