package filter

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pigskit/pigskit-server/internal/apierr"
)

type itemBody struct {
	ShopID uuid.UUID `json:"shop_id" binding:"required"`
	Count  int32     `json:"count" binding:"required,min=1"`
	Kind   string    `json:"kind" binding:"omitempty,oneof=a b"`
}

type opQuery struct {
	Operation string `form:"operation" binding:"required,oneof=email phone username"`
}

func TestJSON(t *testing.T) {
	key := NewKey[itemBody]("item")
	shop := uuid.New()

	cases := []struct {
		name string
		body string
		want error
	}{
		{"missing field", `{"count":1}`, apierr.MissingBody("shop_id")},
		{"zero counts as missing", `{"shop_id":"` + shop.String() + `","count":0}`, apierr.MissingBody("count")},
		{"below minimum", `{"shop_id":"` + shop.String() + `","count":-1}`, apierr.InvalidData("count")},
		{"enum violated", `{"shop_id":"` + shop.String() + `","count":1,"kind":"z"}`, apierr.InvalidData("kind")},
		{"type mismatch", `{"shop_id":"` + shop.String() + `","count":"many"}`, apierr.InvalidData("count")},
		{"empty body", ``, apierr.MissingBody("body")},
		{"malformed", `{"count":`, apierr.InvalidData("body")},
		{"malformed uuid", `{"shop_id":"nope","count":1}`, apierr.InvalidData("shop_id")},
		{"uuid of wrong type", `{"shop_id":7,"count":1}`, apierr.InvalidData("shop_id")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCtx(http.MethodPost, "/", tc.body)
			err := JSON(key)(c)
			assert.ErrorIs(t, err, tc.want)
			_, ok := key.Get(c)
			assert.False(t, ok)
		})
	}

	t.Run("valid", func(t *testing.T) {
		c := newCtx(http.MethodPost, "/", `{"shop_id":"`+shop.String()+`","count":3,"kind":"a"}`)
		require.NoError(t, JSON(key)(c))
		assert.Equal(t, itemBody{ShopID: shop, Count: 3, Kind: "a"}, key.Value(c))
	})

	t.Run("body limit passes through", func(t *testing.T) {
		c := newCtx(http.MethodPost, "/", `{"shop_id":"`+shop.String()+`","count":3}`)
		c.Request.Body = http.MaxBytesReader(c.Writer, io.NopCloser(strings.NewReader(`{"shop_id":"`+shop.String()+`","count":3}`)), 8)
		err := JSON(key)(c)
		var mbe *http.MaxBytesError
		assert.ErrorAs(t, err, &mbe)
	})
}

func TestQuery(t *testing.T) {
	key := NewKey[opQuery]("op")

	c := newCtx(http.MethodGet, "/?operation=email", "")
	require.NoError(t, Query(key)(c))
	assert.Equal(t, "email", key.Value(c).Operation)

	assert.ErrorIs(t, Query(key)(newCtx(http.MethodGet, "/", "")), apierr.MissingBody("operation"))
	assert.ErrorIs(t, Query(key)(newCtx(http.MethodGet, "/?operation=fax", "")), apierr.InvalidData("operation"))
}
