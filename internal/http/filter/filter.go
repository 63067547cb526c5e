// Package filter composes request handling from small stages over a
// *gin.Context.
//
// A Filter either succeeds, storing what it extracted under typed keys, or
// fails. Failures come in two flavours:
//
//   - soft rejections (ErrNotMatched): "this route does not apply", e.g. the
//     method differs. Or tries the next alternative.
//   - everything else: an application failure that commits the request to
//     the current branch and propagates to dispatch.
//
// A path is mounted once with Mount and method alternatives are expressed
// with Or, so a request reaches at most one terminal stage:
//
//	filter.Mount(g, "/session", filter.Or(
//		filter.And(filter.Method(http.MethodPost), filter.JSON(signinKey), h.SignIn),
//		filter.And(filter.Method(http.MethodDelete), sessions.OptionalToken(session.User, tokenKey), h.SignOut),
//	))
package filter

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pigskit/pigskit-server/internal/apierr"
)

// ErrNotMatched is the soft rejection returned by structural stages.
var ErrNotMatched = errors.New("not matched")

type notMatched struct{ reason string }

func (n notMatched) Error() string        { return "not matched: " + n.reason }
func (n notMatched) Is(target error) bool { return target == ErrNotMatched }

// NotMatched returns a soft rejection carrying a reason for debug logs.
func NotMatched(reason string) error { return notMatched{reason: reason} }

// IsNotMatched reports whether err is a soft rejection.
func IsNotMatched(err error) bool { return errors.Is(err, ErrNotMatched) }

// Filter is one stage of request handling.
type Filter func(c *gin.Context) error

// And runs filters left to right and stops at the first failure.
func And(fs ...Filter) Filter {
	return func(c *gin.Context) error {
		for _, f := range fs {
			if err := f(c); err != nil {
				return err
			}
		}
		return nil
	}
}

// Or tries alternatives in written order. Only soft rejections fall through
// to the next alternative; any other failure is returned immediately. When
// every alternative rejects softly the result is a soft rejection.
func Or(fs ...Filter) Filter {
	return func(c *gin.Context) error {
		last := error(notMatched{reason: "no alternatives"})
		for _, f := range fs {
			err := f(c)
			if err == nil || !IsNotMatched(err) {
				return err
			}
			last = err
		}
		return last
	}
}

// Method rejects softly unless the request method is one of ms.
func Method(ms ...string) Filter {
	return func(c *gin.Context) error {
		for _, m := range ms {
			if strings.EqualFold(c.Request.Method, m) {
				return nil
			}
		}
		return notMatched{reason: "method " + c.Request.Method}
	}
}

// Then applies fn to the value stored under in and stores the result under
// out. A missing input is an internal fault, not a client error.
func Then[In, Out any](in Key[In], out Key[Out], fn func(ctx context.Context, v In) (Out, error)) Filter {
	return func(c *gin.Context) error {
		v, ok := in.Get(c)
		if !ok {
			return errMissingValue(in.name)
		}
		o, err := fn(c.Request.Context(), v)
		if err != nil {
			return err
		}
		out.Set(c, o)
		return nil
	}
}

// Handle turns a filter into a gin handler. Failures are recorded on the
// context for the dispatch middleware and the chain is aborted. Failures
// other than soft rejections and exceeded body limits are normalized to
// *apierr.Error before being recorded.
func Handle(f Filter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := f(c); err != nil {
			_ = c.Error(normalize(err))
			c.Abort()
		}
	}
}

// Mount registers f for every method under path.
func Mount(r gin.IRoutes, path string, f Filter) {
	r.Any(path, Handle(f))
}

func normalize(err error) error {
	if IsNotMatched(err) {
		return err
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return mbe
	}
	return apierr.From(err)
}
