// Package session resolves cookie-carried session tokens into identities.
//
// Three independent session kinds exist, each carried by its own cookie:
//
//	User         USSID    signed-in user
//	Cart         GSSID    guest shopping cart
//	Registration REGSSID  multi-step sign-up in progress
//
// Required resolvers fail with NoValidCookie when the cookie is absent or
// not an identifier, and with SessionExpired when the backend no longer
// knows the token. Optional resolvers yield an absent value instead of
// NoValidCookie. A kind is looked up at most once per request; later
// resolvers of the same kind reuse the first result.
//
// Token extractors parse the cookie without a lookup. They serve handlers
// that replace or end a possibly stale session (sign-in, sign-out,
// registration restart, cart put).
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/http/filter"
	"github.com/pigskit/pigskit-server/internal/repo"
	"github.com/pigskit/pigskit-server/internal/utils"
)

// Kind identifies a session family.
type Kind int

const (
	User Kind = iota
	Cart
	Registration
	numKinds
)

var cookieNames = [numKinds]string{
	User:         apierr.CookieUser,
	Cart:         apierr.CookieCart,
	Registration: apierr.CookieRegistration,
}

// Cookie returns the cookie name carrying the kind's token.
func (k Kind) Cookie() string { return cookieNames[k] }

func (k Kind) String() string { return k.Cookie() }

// resolved caches the identity of each kind for the rest of the request.
var resolved = [numKinds]filter.Key[uuid.UUID]{
	User:         filter.NewKey[uuid.UUID]("session.resolved.USSID"),
	Cart:         filter.NewKey[uuid.UUID]("session.resolved.GSSID"),
	Registration: filter.NewKey[uuid.UUID]("session.resolved.REGSSID"),
}

// Lookup maps a live session token to the identity it stands for. It
// returns repo.ErrNotFound (or a backend session-expired code) when the
// token is unknown or expired.
type Lookup func(ctx context.Context, token uuid.UUID) (uuid.UUID, error)

// Lookups provides one backend lookup per kind.
type Lookups struct {
	User         Lookup
	Cart         Lookup
	Registration Lookup
}

// Options controls emitted cookies. A zero max age yields a cookie that
// lives for the browser session.
type Options struct {
	UserMaxAge         time.Duration
	CartMaxAge         time.Duration
	RegistrationMaxAge time.Duration
	Secure             bool
}

// Resolver builds session filters and emits session cookies.
type Resolver struct {
	lookups [numKinds]Lookup
	maxAge  [numKinds]time.Duration
	secure  bool
}

// NewResolver returns a resolver backed by the given lookups.
func NewResolver(l Lookups, opts Options) *Resolver {
	return &Resolver{
		lookups: [numKinds]Lookup{User: l.User, Cart: l.Cart, Registration: l.Registration},
		maxAge:  [numKinds]time.Duration{User: opts.UserMaxAge, Cart: opts.CartMaxAge, Registration: opts.RegistrationMaxAge},
		secure:  opts.Secure,
	}
}

// Required resolves kind's cookie and stores the identity under key.
func (r *Resolver) Required(kind Kind, key filter.Key[uuid.UUID]) filter.Filter {
	return func(c *gin.Context) error {
		token, ok := cookieToken(c, kind)
		if !ok {
			return apierr.NoValidCookie(kind.Cookie())
		}
		id, err := r.identity(c, kind, token)
		if err != nil {
			return err
		}
		key.Set(c, id)
		return nil
	}
}

// Optional resolves kind's cookie when present. A missing or malformed
// cookie stores an absent value; a present but expired token still fails
// with SessionExpired.
func (r *Resolver) Optional(kind Kind, key filter.Key[uuid.NullUUID]) filter.Filter {
	return func(c *gin.Context) error {
		token, ok := cookieToken(c, kind)
		if !ok {
			key.Set(c, uuid.NullUUID{})
			return nil
		}
		id, err := r.identity(c, kind, token)
		if err != nil {
			return err
		}
		key.Set(c, uuid.NullUUID{UUID: id, Valid: true})
		return nil
	}
}

// Token parses kind's cookie without consulting the backend.
func Token(kind Kind, key filter.Key[uuid.UUID]) filter.Filter {
	return func(c *gin.Context) error {
		token, ok := cookieToken(c, kind)
		if !ok {
			return apierr.NoValidCookie(kind.Cookie())
		}
		key.Set(c, token)
		return nil
	}
}

// OptionalToken is Token with an absent value instead of NoValidCookie.
func OptionalToken(kind Kind, key filter.Key[uuid.NullUUID]) filter.Filter {
	return func(c *gin.Context) error {
		token, ok := cookieToken(c, kind)
		key.Set(c, uuid.NullUUID{UUID: token, Valid: ok})
		return nil
	}
}

// Issue sets kind's cookie to token.
func (r *Resolver) Issue(c *gin.Context, kind Kind, token uuid.UUID) {
	http.SetCookie(c.Writer, r.cookie(kind, token.String(), int(r.maxAge[kind]/time.Second)))
}

// Clear expires kind's cookie on the client.
func (r *Resolver) Clear(c *gin.Context, kind Kind) {
	http.SetCookie(c.Writer, r.cookie(kind, "", -1))
}

func (r *Resolver) cookie(kind Kind, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     kind.Cookie(),
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   r.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (r *Resolver) identity(c *gin.Context, kind Kind, token uuid.UUID) (uuid.UUID, error) {
	if id, ok := resolved[kind].Get(c); ok {
		return id, nil
	}
	lookup := r.lookups[kind]
	if lookup == nil {
		return uuid.Nil, apierr.Internal(fmt.Errorf("session: no lookup for %s", kind))
	}
	id, err := lookup(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return uuid.Nil, apierr.SessionExpired(kind.Cookie())
		}
		return uuid.Nil, apierr.From(err)
	}
	resolved[kind].Set(c, id)
	return id, nil
}

func cookieToken(c *gin.Context, kind Kind) (uuid.UUID, bool) {
	raw, err := c.Cookie(kind.Cookie())
	if err != nil || raw == "" {
		return uuid.Nil, false
	}
	token, err := utils.ParseID(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return token, true
}
