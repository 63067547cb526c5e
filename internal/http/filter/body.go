package filter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pigskit/pigskit-server/internal/apierr"
)

// JSON decodes the request body into T, validates it with the `binding`
// struct tags, and stores it under key.
//
// A field failing `required` yields MissingBody(field); any other rule, a
// type mismatch or a value its type refuses (a malformed uuid) yields
// InvalidData naming the field; malformed JSON yields InvalidData("body").
// An empty body counts as MissingBody("body"). An exceeded body limit is
// passed through as *http.MaxBytesError.
func JSON[T any](key Key[T]) Filter {
	registerFieldNames()
	return func(c *gin.Context) error {
		if c.Request.Body == nil {
			return apierr.MissingBody("body")
		}
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return bindError(err, "body")
		}
		var v T
		if err := binding.JSON.BindBody(body, &v); err != nil {
			return bindError(err, offendingField(body, reflect.TypeOf(v), "body"))
		}
		key.Set(c, v)
		return nil
	}
}

// offendingField returns the wire name of the first top-level field of t
// whose value in body does not decode on its own, or fallback when none
// can be singled out.
func offendingField(body []byte, t reflect.Type, fallback string) string {
	if t == nil || t.Kind() != reflect.Struct {
		return fallback
	}
	var raw map[string]json.RawMessage
	if json.Unmarshal(body, &raw) != nil {
		return fallback
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := wireName(f)
		msg, ok := raw[name]
		if !f.IsExported() || name == "" || !ok {
			continue
		}
		if json.Unmarshal(msg, reflect.New(f.Type).Interface()) != nil {
			return name
		}
	}
	return fallback
}

// Query decodes the query string into T using `form` tags, validates it,
// and stores it under key.
func Query[T any](key Key[T]) Filter {
	registerFieldNames()
	return func(c *gin.Context) error {
		var v T
		if err := c.ShouldBindQuery(&v); err != nil {
			return bindError(err, "query")
		}
		key.Set(c, v)
		return nil
	}
}

func bindError(err error, part string) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return mbe
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return apierr.MissingBody(fe.Field())
		}
		return apierr.InvalidData(fe.Field())
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return apierr.InvalidData(ute.Field)
	}
	if errors.Is(err, io.EOF) {
		return apierr.MissingBody(part)
	}
	return apierr.InvalidData(part)
}

var fieldNamesOnce sync.Once

// registerFieldNames makes validation errors report the wire name of a
// field (json tag, then form tag) instead of the Go field name.
func registerFieldNames() {
	fieldNamesOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(wireName)
		}
	})
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
