// Package apierr defines the client-facing error taxonomy of the API.
//
// Every failure that reaches a client is an *Error: a fixed HTTP status, a
// stable machine-readable kind, a human-readable message and optional
// structured data naming the offending field or cookie. Internal failures
// carry their cause for logging only; it is never serialized.
//
// Conventions:
//   - Handlers and services return errors; they never write error bodies.
//   - From converts any error into an *Error at the edge of the pipeline.
//   - Backend error codes are translated through the table in codes.go.
//
// Example response:
//
//	HTTP/1.1 401 Unauthorized
//	{
//	  "status": 401,
//	  "type": "SessionExpired",
//	  "message": "session expired",
//	  "data": { "cookie": "USSID" }
//	}
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind is the stable machine-readable error category.
type Kind string

const (
	KindUnauthorized         Kind = "Unauthorized"
	KindMissingBody          Kind = "MissingBody"
	KindInvalidData          Kind = "InvalidData"
	KindNoValidForm          Kind = "NoValidForm"
	KindNoValidCookie        Kind = "NoValidCookie"
	KindSessionExpired       Kind = "SessionExpired"
	KindUniqueDataConflict   Kind = "UniqueDataConflict"
	KindDataNotFound         Kind = "DataNotFound"
	KindPayloadTooLarge      Kind = "PayloadTooLarge"
	KindOperationFailed      Kind = "OperationFailed"
	KindUnsupportedOperation Kind = "UnsupportedOperation"
	KindCartItemExpired      Kind = "CartItemExpired"
	KindTooManyRequests      Kind = "TooManyRequests"
	KindInternal             Kind = "InternalServerError"
)

// InternalMessage is the only message ever exposed for internal failures.
const InternalMessage = "Internal server error"

// Error is a classified API error. Values are immutable after construction.
type Error struct {
	Status  int
	Kind    Kind
	Message string
	Data    any

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Kind, e.Status, e.Message, e.cause)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Cause returns the underlying error of an internal failure, if any.
func (e *Error) Cause() error { return e.cause }

// IsInternal reports whether the error is a server-side fault.
func (e *Error) IsInternal() bool { return e.Kind == KindInternal }

// Is matches on kind and data so that errors.Is works against constructor
// results, e.g. errors.Is(err, apierr.SessionExpired("USSID")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Data == t.Data
}

func newError(status int, kind Kind, msg string, data any) *Error {
	return &Error{Status: status, Kind: kind, Message: msg, Data: data}
}

// FieldData names the request field an error refers to.
type FieldData struct {
	Field string `json:"field"`
}

// CookieData names the cookie an error refers to.
type CookieData struct {
	Cookie string `json:"cookie"`
}

// Constructors.

func Unauthorized() *Error {
	return newError(http.StatusUnauthorized, KindUnauthorized, "unauthorized", nil)
}

func MissingBody(field string) *Error {
	return newError(http.StatusBadRequest, KindMissingBody, "missing request field", FieldData{field})
}

func InvalidData(field string) *Error {
	return newError(http.StatusBadRequest, KindInvalidData, "invalid request field", FieldData{field})
}

func NoValidForm(part string) *Error {
	return newError(http.StatusBadRequest, KindNoValidForm, "missing or invalid form part", FieldData{part})
}

func NoValidCookie(name string) *Error {
	return newError(http.StatusBadRequest, KindNoValidCookie, "missing or invalid cookie", CookieData{name})
}

func SessionExpired(name string) *Error {
	return newError(http.StatusUnauthorized, KindSessionExpired, "session expired", CookieData{name})
}

func UniqueDataConflict(field string) *Error {
	return newError(http.StatusConflict, KindUniqueDataConflict, "value already in use", FieldData{field})
}

func DataNotFound(name string) *Error {
	return newError(http.StatusNotFound, KindDataNotFound, "data not found", FieldData{name})
}

func PayloadTooLarge() *Error {
	return newError(http.StatusRequestEntityTooLarge, KindPayloadTooLarge, "payload too large", nil)
}

func OperationFailed() *Error {
	return newError(http.StatusBadRequest, KindOperationFailed, "operation failed", nil)
}

func UnsupportedOperation() *Error {
	return newError(http.StatusBadRequest, KindUnsupportedOperation, "unsupported operation", nil)
}

func CartItemExpired() *Error {
	return newError(http.StatusBadRequest, KindCartItemExpired, "cart item is no longer available", nil)
}

func TooManyRequests() *Error {
	return newError(http.StatusTooManyRequests, KindTooManyRequests, "rate limit exceeded", nil)
}

// Internal wraps cause as a server-side fault. The cause is kept for logs.
func Internal(cause error) *Error {
	e := newError(http.StatusInternalServerError, KindInternal, InternalMessage, nil)
	e.cause = cause
	return e
}

// From converts any error into an *Error:
//   - nil stays nil
//   - an *Error anywhere in the chain is returned unchanged
//   - a backend error whose code is in the code table is translated
//   - an exceeded body limit becomes PayloadTooLarge
//   - everything else becomes Internal
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if e, ok := FromCode(pgErr.Code); ok {
			return e
		}
		return Internal(err)
	}
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return PayloadTooLarge()
	}
	return Internal(err)
}
