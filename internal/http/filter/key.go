package filter

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pigskit/pigskit-server/internal/apierr"
)

// Key is a typed slot for a value extracted during the current request.
type Key[T any] struct{ name string }

// NewKey returns a key stored under "filter." + name in the gin context.
// Keys with the same name address the same slot.
func NewKey[T any](name string) Key[T] { return Key[T]{name: "filter." + name} }

// Name returns the context key.
func (k Key[T]) Name() string { return k.name }

// Set stores v for the rest of the request.
func (k Key[T]) Set(c *gin.Context, v T) { c.Set(k.name, v) }

// Get returns the stored value and whether one of type T was present.
func (k Key[T]) Get(c *gin.Context) (T, bool) {
	var zero T
	v, ok := c.Get(k.name)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// Value returns the stored value or the zero value of T.
func (k Key[T]) Value(c *gin.Context) T {
	v, _ := k.Get(c)
	return v
}

func errMissingValue(name string) error {
	return apierr.Internal(fmt.Errorf("filter: no value under %q", name))
}
