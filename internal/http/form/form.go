// Package form decodes multipart/form-data bodies against a declared
// schema.
//
// A Schema lists named fields with a kind and whether they are required.
// Decode streams every part of the body under a byte cap, buffering only
// declared parts, and converts the fields once the body is fully read:
//
//   - a required field that is absent or fails conversion is reported as
//     NoValidForm naming the first such field in schema order
//   - an optional field that is absent or fails conversion is absent
//   - a body over the cap fails with *http.MaxBytesError regardless of the
//     fields, so it can be classified as PayloadTooLarge
package form

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/http/filter"
	"github.com/pigskit/pigskit-server/internal/utils"
)

// Kind is the expected content of a part.
type Kind int

const (
	Text   Kind = iota // UTF-8 string
	ID                 // identifier
	Binary             // raw bytes
	Bool               // true|false|1|0
	Int                // 32-bit integer
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case ID:
		return "id"
	case Binary:
		return "binary"
	case Bool:
		return "bool"
	case Int:
		return "int"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Field declares one named part.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// Required declares a field that must be present and valid.
func Required(name string, kind Kind) Field { return Field{Name: name, Kind: kind, Required: true} }

// Optional declares a field that may be absent.
func Optional(name string, kind Kind) Field { return Field{Name: name, Kind: kind} }

// Schema is an ordered set of fields and the body cap in bytes.
type Schema struct {
	Fields   []Field
	MaxBytes int64
}

// NewSchema builds a schema. It panics on duplicate field names or a
// non-positive cap, both of which are programming errors.
func NewSchema(maxBytes int64, fields ...Field) Schema {
	if maxBytes <= 0 {
		panic("form: max bytes must be positive")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			panic("form: duplicate field " + f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return Schema{Fields: fields, MaxBytes: maxBytes}
}

func (s Schema) declared(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Decode reads r's multipart body and converts it against the schema.
func (s Schema) Decode(r *http.Request) (Values, error) {
	capped := &capReader{}
	if r.Body != nil {
		capped.ReadCloser = http.MaxBytesReader(nil, r.Body, s.MaxBytes)
		r.Body = capped
	}
	mr, err := r.MultipartReader()
	if err != nil {
		return Values{}, apierr.NoValidForm("form")
	}

	raw := make(map[string][]byte, len(s.Fields))
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Values{}, capped.readError(err, "form")
		}
		name := part.FormName()
		if !s.declared(name) {
			if _, err := io.Copy(io.Discard, part); err != nil {
				return Values{}, capped.readError(err, "form")
			}
			continue
		}
		b, err := io.ReadAll(part)
		if err != nil {
			return Values{}, capped.readError(err, name)
		}
		raw[name] = b
	}
	if capped.err != nil {
		return Values{}, capped.err
	}

	vals := Values{m: make(map[string]any, len(s.Fields))}
	for _, f := range s.Fields {
		b, ok := raw[f.Name]
		var v any
		if ok {
			v, ok = convert(f.Kind, b)
		}
		if !ok {
			if f.Required {
				return Values{}, apierr.NoValidForm(f.Name)
			}
			continue
		}
		vals.m[f.Name] = v
	}
	return vals, nil
}

// Filter decodes the body and stores the values under key.
func (s Schema) Filter(key filter.Key[Values]) filter.Filter {
	return func(c *gin.Context) error {
		v, err := s.Decode(c.Request)
		if err != nil {
			return err
		}
		key.Set(c, v)
		return nil
	}
}

// capReader keeps the first cap violation seen on the body. The multipart
// reader replaces read errors met inside a part header with its own
// message, so the violation cannot be recovered from the error it returns.
type capReader struct {
	io.ReadCloser
	err *http.MaxBytesError
}

func (c *capReader) Read(p []byte) (int, error) {
	n, err := c.ReadCloser.Read(p)
	var mbe *http.MaxBytesError
	if c.err == nil && errors.As(err, &mbe) {
		c.err = mbe
	}
	return n, err
}

func (c *capReader) readError(err error, part string) error {
	if c.err != nil {
		return c.err
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return mbe
	}
	return apierr.NoValidForm(part)
}

func convert(k Kind, b []byte) (any, bool) {
	switch k {
	case Text:
		if !utf8.Valid(b) {
			return nil, false
		}
		return string(b), true
	case ID:
		id, err := utils.ParseID(string(b))
		return id, err == nil
	case Binary:
		return b, true
	case Bool:
		v, err := utils.ParseBool(string(b))
		return v, err == nil
	case Int:
		v, err := utils.ParseInt(string(b))
		return v, err == nil
	}
	return nil, false
}

// Values holds the converted fields of a decoded form.
type Values struct {
	m map[string]any
}

// Has reports whether name is present.
func (v Values) Has(name string) bool {
	_, ok := v.m[name]
	return ok
}

// Text returns a text field or "".
func (v Values) Text(name string) string {
	s, _ := v.OptText(name)
	return s
}

// ID returns an identifier field or uuid.Nil.
func (v Values) ID(name string) uuid.UUID { return v.OptID(name).UUID }

// Bytes returns a binary field or nil.
func (v Values) Bytes(name string) []byte {
	b, _ := v.OptBytes(name)
	return b
}

// Bool returns a boolean field or false.
func (v Values) Bool(name string) bool {
	b, _ := v.OptBool(name)
	return b
}

// Int returns an integer field or 0.
func (v Values) Int(name string) int32 {
	n, _ := v.m[name].(int32)
	return n
}

func (v Values) OptText(name string) (string, bool) {
	s, ok := v.m[name].(string)
	return s, ok
}

func (v Values) OptID(name string) uuid.NullUUID {
	id, ok := v.m[name].(uuid.UUID)
	return uuid.NullUUID{UUID: id, Valid: ok}
}

func (v Values) OptBytes(name string) ([]byte, bool) {
	b, ok := v.m[name].([]byte)
	return b, ok
}

func (v Values) OptBool(name string) (bool, bool) {
	b, ok := v.m[name].(bool)
	return b, ok
}
