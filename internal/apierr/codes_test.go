package apierr

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCode_Table(t *testing.T) {
	cases := map[string]struct {
		kind   Kind
		status int
		data   any
	}{
		"SE001": {KindSessionExpired, 401, CookieData{"USSID"}},
		"SE002": {KindSessionExpired, 401, CookieData{"GSSID"}},
		"SE003": {KindSessionExpired, 401, CookieData{"REGSSID"}},
		"AU001": {KindUnauthorized, 401, nil},
		"AU002": {KindUnauthorized, 401, nil},
		"NF001": {KindDataNotFound, 404, FieldData{"shop"}},
		"NF002": {KindDataNotFound, 404, FieldData{"product"}},
		"NF003": {KindDataNotFound, 404, FieldData{"user"}},
		"NF004": {KindDataNotFound, 404, FieldData{"cart item"}},
		"NF005": {KindDataNotFound, 404, FieldData{"member"}},
		"UQ001": {KindUniqueDataConflict, 409, FieldData{"shop_name"}},
		"UQ002": {KindUniqueDataConflict, 409, FieldData{"username"}},
		"UQ003": {KindUniqueDataConflict, 409, FieldData{"email"}},
		"UQ004": {KindUniqueDataConflict, 409, FieldData{"phone"}},
		"UQ005": {KindUniqueDataConflict, 409, FieldData{"member"}},
		"CI001": {KindCartItemExpired, 400, nil},
		"CI002": {KindInvalidData, 400, FieldData{"count"}},
		"OP001": {KindOperationFailed, 400, nil},
		"OP002": {KindUnsupportedOperation, 400, nil},
	}
	require.Len(t, Codes(), len(cases), "every table entry must be covered here")

	for code, want := range cases {
		t.Run(code, func(t *testing.T) {
			e, ok := FromCode(code)
			require.True(t, ok)
			assert.Equal(t, want.kind, e.Kind)
			assert.Equal(t, want.status, e.Status)
			assert.Equal(t, want.data, e.Data)
		})
	}
}

func TestFromCode_Deterministic(t *testing.T) {
	for _, code := range Codes() {
		first := From(&pgconn.PgError{Code: code})
		for i := 0; i < 3; i++ {
			again := From(&pgconn.PgError{Code: code})
			assert.Equal(t, first.Kind, again.Kind, code)
			assert.Equal(t, first.Status, again.Status, code)
			assert.Equal(t, first.Data, again.Data, code)
			assert.NotSame(t, first, again, "table must not share mutable values")
		}
	}
}

func TestFromCode_Unknown(t *testing.T) {
	for _, code := range []string{"", "SE999", "23505", "P0001"} {
		e, ok := FromCode(code)
		assert.False(t, ok, code)
		assert.Nil(t, e, code)
	}
}
