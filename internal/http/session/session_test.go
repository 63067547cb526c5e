package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/http/filter"
	"github.com/pigskit/pigskit-server/internal/repo"
)

// fakeBackend maps live tokens to identities and counts lookups.
type fakeBackend struct {
	live  map[uuid.UUID]uuid.UUID
	calls int
	err   error
}

func (f *fakeBackend) lookup(_ context.Context, token uuid.UUID) (uuid.UUID, error) {
	f.calls++
	if f.err != nil {
		return uuid.Nil, f.err
	}
	id, ok := f.live[token]
	if !ok {
		return uuid.Nil, repo.ErrNotFound
	}
	return id, nil
}

func newResolver(b *fakeBackend) *Resolver {
	return NewResolver(Lookups{User: b.lookup, Cart: b.lookup, Registration: b.lookup}, Options{
		CartMaxAge: 7 * 24 * time.Hour,
	})
}

func ctxWithCookie(name, value string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if name != "" {
		c.Request.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	return c, w
}

func TestKind_Cookie(t *testing.T) {
	assert.Equal(t, "USSID", User.Cookie())
	assert.Equal(t, "GSSID", Cart.Cookie())
	assert.Equal(t, "REGSSID", Registration.Cookie())
}

func TestRequired_MissingOrMalformedCookie(t *testing.T) {
	b := &fakeBackend{}
	r := newResolver(b)
	key := filter.NewKey[uuid.UUID]("user")

	for _, kind := range []Kind{User, Cart, Registration} {
		c, _ := ctxWithCookie("", "")
		assert.ErrorIs(t, r.Required(kind, key)(c), apierr.NoValidCookie(kind.Cookie()))

		c, _ = ctxWithCookie(kind.Cookie(), "not-a-uuid")
		assert.ErrorIs(t, r.Required(kind, key)(c), apierr.NoValidCookie(kind.Cookie()))

		c, _ = ctxWithCookie(kind.Cookie(), "")
		assert.ErrorIs(t, r.Required(kind, key)(c), apierr.NoValidCookie(kind.Cookie()))
	}
	assert.Zero(t, b.calls, "no lookup without a valid token")
}

func TestRequired_Expired(t *testing.T) {
	b := &fakeBackend{live: map[uuid.UUID]uuid.UUID{}}
	r := newResolver(b)

	c, _ := ctxWithCookie("GSSID", uuid.NewString())
	err := r.Required(Cart, filter.NewKey[uuid.UUID]("cart"))(c)

	assert.ErrorIs(t, err, apierr.SessionExpired("GSSID"))
	assert.Equal(t, 1, b.calls)
}

func TestRequired_BackendCodeAndFaults(t *testing.T) {
	key := filter.NewKey[uuid.UUID]("user")

	b := &fakeBackend{err: &pgconn.PgError{Code: apierr.CodeUserSessionExpired}}
	c, _ := ctxWithCookie("USSID", uuid.NewString())
	assert.ErrorIs(t, newResolver(b).Required(User, key)(c), apierr.SessionExpired("USSID"))

	b = &fakeBackend{err: errors.New("pool exhausted")}
	c, _ = ctxWithCookie("USSID", uuid.NewString())
	var ae *apierr.Error
	require.ErrorAs(t, newResolver(b).Required(User, key)(c), &ae)
	assert.True(t, ae.IsInternal())
}

func TestRequired_ResolvesOncePerRequest(t *testing.T) {
	token, user := uuid.New(), uuid.New()
	b := &fakeBackend{live: map[uuid.UUID]uuid.UUID{token: user}}
	r := newResolver(b)
	k1, k2 := filter.NewKey[uuid.UUID]("a"), filter.NewKey[uuid.UUID]("b")

	c, _ := ctxWithCookie("USSID", token.String())
	require.NoError(t, filter.And(r.Required(User, k1), r.Required(User, k2))(c))

	assert.Equal(t, user, k1.Value(c))
	assert.Equal(t, user, k2.Value(c))
	assert.Equal(t, 1, b.calls)
}

func TestOptional(t *testing.T) {
	token, user := uuid.New(), uuid.New()
	b := &fakeBackend{live: map[uuid.UUID]uuid.UUID{token: user}}
	r := newResolver(b)
	key := filter.NewKey[uuid.NullUUID]("maybe")

	t.Run("absent", func(t *testing.T) {
		c, _ := ctxWithCookie("", "")
		require.NoError(t, r.Optional(User, key)(c))
		assert.False(t, key.Value(c).Valid)
	})

	t.Run("malformed", func(t *testing.T) {
		c, _ := ctxWithCookie("USSID", "garbage")
		require.NoError(t, r.Optional(User, key)(c))
		assert.False(t, key.Value(c).Valid)
	})

	t.Run("live", func(t *testing.T) {
		c, _ := ctxWithCookie("USSID", token.String())
		require.NoError(t, r.Optional(User, key)(c))
		assert.Equal(t, uuid.NullUUID{UUID: user, Valid: true}, key.Value(c))
	})

	t.Run("expired", func(t *testing.T) {
		c, _ := ctxWithCookie("USSID", uuid.NewString())
		assert.ErrorIs(t, r.Optional(User, key)(c), apierr.SessionExpired("USSID"))
	})
}

func TestToken_NoLookup(t *testing.T) {
	b := &fakeBackend{}
	token := uuid.New()
	key := filter.NewKey[uuid.UUID]("tok")
	opt := filter.NewKey[uuid.NullUUID]("opt")

	c, _ := ctxWithCookie("REGSSID", token.String())
	require.NoError(t, Token(Registration, key)(c))
	require.NoError(t, OptionalToken(Registration, opt)(c))
	assert.Equal(t, token, key.Value(c))
	assert.Equal(t, uuid.NullUUID{UUID: token, Valid: true}, opt.Value(c))

	c, _ = ctxWithCookie("", "")
	assert.ErrorIs(t, Token(Registration, key)(c), apierr.NoValidCookie("REGSSID"))
	require.NoError(t, OptionalToken(Registration, opt)(c))
	assert.False(t, opt.Value(c).Valid)

	assert.Zero(t, b.calls)
}

func TestIssue_RoundTrip(t *testing.T) {
	token, cart := uuid.New(), uuid.New()
	b := &fakeBackend{live: map[uuid.UUID]uuid.UUID{token: cart}}
	r := newResolver(b)

	issuer, w := ctxWithCookie("", "")
	r.Issue(issuer, Cart, token)

	header := w.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(header, "GSSID="+token.String()), header)
	assert.Contains(t, header, "Path=/")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "Max-Age=604800")

	// Replay the emitted cookie on a new request.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", strings.SplitN(header, ";", 2)[0])
	c, _ := ctxWithCookie("", "")
	c.Request = req

	key := filter.NewKey[uuid.UUID]("cart")
	require.NoError(t, r.Required(Cart, key)(c))
	assert.Equal(t, cart, key.Value(c))
}

func TestIssue_SessionCookieAndClear(t *testing.T) {
	r := newResolver(&fakeBackend{})

	c, w := ctxWithCookie("", "")
	r.Issue(c, User, uuid.New())
	assert.NotContains(t, w.Header().Get("Set-Cookie"), "Max-Age", "user cookie lives for the browser session")

	c, w = ctxWithCookie("", "")
	r.Clear(c, User)
	header := w.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(header, "USSID=;"), header)
	assert.Contains(t, header, "Max-Age=0")
}

func TestIdentity_MissingLookupIsInternal(t *testing.T) {
	r := NewResolver(Lookups{}, Options{})
	c, _ := ctxWithCookie("USSID", uuid.NewString())

	var ae *apierr.Error
	require.ErrorAs(t, r.Required(User, filter.NewKey[uuid.UUID]("u"))(c), &ae)
	assert.True(t, ae.IsInternal())
}
