package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_StatusAndKind(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
		kind   Kind
		data   any
	}{
		{Unauthorized(), 401, KindUnauthorized, nil},
		{MissingBody("operation"), 400, KindMissingBody, FieldData{"operation"}},
		{InvalidData("count"), 400, KindInvalidData, FieldData{"count"}},
		{NoValidForm("shop_id"), 400, KindNoValidForm, FieldData{"shop_id"}},
		{NoValidCookie("USSID"), 400, KindNoValidCookie, CookieData{"USSID"}},
		{SessionExpired("GSSID"), 401, KindSessionExpired, CookieData{"GSSID"}},
		{UniqueDataConflict("email"), 409, KindUniqueDataConflict, FieldData{"email"}},
		{DataNotFound("shop"), 404, KindDataNotFound, FieldData{"shop"}},
		{PayloadTooLarge(), 413, KindPayloadTooLarge, nil},
		{OperationFailed(), 400, KindOperationFailed, nil},
		{UnsupportedOperation(), 400, KindUnsupportedOperation, nil},
		{CartItemExpired(), 400, KindCartItemExpired, nil},
		{TooManyRequests(), 429, KindTooManyRequests, nil},
		{Internal(errors.New("boom")), 500, KindInternal, nil},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.kind, tc.err.Kind)
			assert.Equal(t, tc.data, tc.err.Data)
			assert.NotEmpty(t, tc.err.Message)
		})
	}
}

func TestInternal_HidesCause(t *testing.T) {
	cause := errors.New("pq: relation \"users\" does not exist")
	e := Internal(cause)

	assert.True(t, e.IsInternal())
	assert.Same(t, cause, e.Cause())
	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "does not exist")

	env := e.Envelope()
	assert.Equal(t, Envelope{Status: 500, Type: KindInternal, Message: InternalMessage}, env)

	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "relation")
}

func TestIs_MatchesKindAndData(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", SessionExpired("USSID"))
	assert.ErrorIs(t, err, SessionExpired("USSID"))
	assert.NotErrorIs(t, err, SessionExpired("GSSID"))
	assert.NotErrorIs(t, err, NoValidCookie("USSID"))
}

func TestFrom(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, From(nil))
	})

	t.Run("api error passes through", func(t *testing.T) {
		orig := DataNotFound("product")
		assert.Same(t, orig, From(fmt.Errorf("ctx: %w", orig)))
	})

	t.Run("known backend code", func(t *testing.T) {
		e := From(fmt.Errorf("query: %w", &pgconn.PgError{Code: CodeCartItemExpired, Message: "item gone"}))
		assert.Equal(t, KindCartItemExpired, e.Kind)
		assert.Equal(t, http.StatusBadRequest, e.Status)
	})

	t.Run("unknown backend code", func(t *testing.T) {
		pe := &pgconn.PgError{Code: "ZZ999"}
		e := From(pe)
		assert.True(t, e.IsInternal())
		assert.ErrorIs(t, e, pe)
	})

	t.Run("standard sqlstate is internal", func(t *testing.T) {
		e := From(&pgconn.PgError{Code: "23505"})
		assert.True(t, e.IsInternal())
	})

	t.Run("body limit", func(t *testing.T) {
		e := From(&http.MaxBytesError{Limit: 10})
		assert.Equal(t, KindPayloadTooLarge, e.Kind)
		assert.Equal(t, http.StatusRequestEntityTooLarge, e.Status)
	})

	t.Run("anything else", func(t *testing.T) {
		e := From(errors.New("dial tcp: connection refused"))
		assert.True(t, e.IsInternal())
		assert.Equal(t, http.StatusInternalServerError, e.Status)
	})
}

func TestWrite_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Write(c, UniqueDataConflict("username"))

	require.Equal(t, http.StatusConflict, w.Code)
	assert.True(t, c.IsAborted())
	assert.JSONEq(t,
		`{"status":409,"type":"UniqueDataConflict","message":"value already in use","data":{"field":"username"}}`,
		w.Body.String())
}

func TestWrite_NullData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Write(c, Unauthorized())

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(401), body["status"])
	require.Contains(t, body, "data")
	assert.Nil(t, body["data"])
}
