package form

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/http/filter"
)

type part struct {
	name, file string
	data       []byte
}

func multipartRequest(t *testing.T, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		var (
			w   interface{ Write([]byte) (int, error) }
			err error
		)
		if p.file != "" {
			w, err = mw.CreateFormFile(p.name, p.file)
		} else {
			w, err = mw.CreateFormField(p.name)
		}
		require.NoError(t, err)
		_, err = w.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func text(name, v string) part { return part{name: name, data: []byte(v)} }

var productSchema = NewSchema(1<<20,
	Required("shop_id", ID),
	Required("payload", Text),
	Optional("image", Binary),
	Optional("delete_image", Bool),
	Optional("count", Int),
)

func TestDecode_AllFields(t *testing.T) {
	shop := uuid.New()
	img := []byte{0xff, 0xd8, 0x00, 0x01}

	vals, err := productSchema.Decode(multipartRequest(t,
		text("shop_id", shop.String()),
		text("payload", `{"name":"Sesame bun"}`),
		part{name: "image", file: "a.jpg", data: img},
		text("delete_image", "true"),
		text("count", "12"),
	))
	require.NoError(t, err)

	assert.Equal(t, shop, vals.ID("shop_id"))
	assert.Equal(t, `{"name":"Sesame bun"}`, vals.Text("payload"))
	assert.Equal(t, img, vals.Bytes("image"))
	assert.True(t, vals.Bool("delete_image"))
	assert.Equal(t, int32(12), vals.Int("count"))
}

func TestDecode_MissingRequiredNamesField(t *testing.T) {
	// shop_id and payload present; the optional image is absent.
	vals, err := productSchema.Decode(multipartRequest(t,
		text("shop_id", uuid.NewString()),
		text("payload", "{}"),
	))
	require.NoError(t, err)
	_, ok := vals.OptBytes("image")
	assert.False(t, ok)
	assert.False(t, vals.Has("image"))

	// Missing payload names exactly that field.
	_, err = productSchema.Decode(multipartRequest(t, text("shop_id", uuid.NewString())))
	assert.ErrorIs(t, err, apierr.NoValidForm("payload"))

	// First failing required field in schema order wins.
	_, err = productSchema.Decode(multipartRequest(t, text("other", "x")))
	assert.ErrorIs(t, err, apierr.NoValidForm("shop_id"))
}

func TestDecode_InvalidValues(t *testing.T) {
	_, err := productSchema.Decode(multipartRequest(t,
		text("shop_id", "not-an-id"),
		text("payload", "{}"),
	))
	assert.ErrorIs(t, err, apierr.NoValidForm("shop_id"))

	_, err = productSchema.Decode(multipartRequest(t,
		text("shop_id", uuid.NewString()),
		part{name: "payload", data: []byte{0xff, 0xfe}},
	))
	assert.ErrorIs(t, err, apierr.NoValidForm("payload"))

	// Invalid optional values are treated as absent.
	vals, err := productSchema.Decode(multipartRequest(t,
		text("shop_id", uuid.NewString()),
		text("payload", "{}"),
		text("delete_image", "maybe"),
		text("count", "lots"),
	))
	require.NoError(t, err)
	_, ok := vals.OptBool("delete_image")
	assert.False(t, ok)
	assert.False(t, vals.Has("count"))
}

func TestDecode_UnknownPartsIgnoredLastDuplicateWins(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	vals, err := productSchema.Decode(multipartRequest(t,
		text("shop_id", first.String()),
		part{name: "junk", file: "junk.bin", data: bytes.Repeat([]byte("z"), 4096)},
		text("payload", "{}"),
		text("shop_id", second.String()),
	))
	require.NoError(t, err)
	assert.Equal(t, second, vals.ID("shop_id"))
	assert.False(t, vals.Has("junk"))
}

func TestDecode_TooLarge(t *testing.T) {
	small := NewSchema(512, Required("shop_id", ID), Required("avatar", Binary))

	// Over the cap fails with the size error even though shop_id is missing.
	_, err := small.Decode(multipartRequest(t,
		part{name: "avatar", file: "a.jpg", data: bytes.Repeat([]byte{1}, 2048)},
	))
	var mbe *http.MaxBytesError
	require.ErrorAs(t, err, &mbe)
	assert.Equal(t, int64(512), mbe.Limit)
	assert.Equal(t, apierr.KindPayloadTooLarge, apierr.From(err).Kind)
}

func TestDecode_OverCapAnywhere(t *testing.T) {
	req := multipartRequest(t,
		text("shop_id", uuid.NewString()),
		text("payload", `{"name":"pie"}`),
		text("note", "ignored"),
		part{name: "image", file: "p.png", data: bytes.Repeat([]byte{7}, 300)},
	)
	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	ct := req.Header.Get("Content-Type")

	decode := func(limit int) error {
		r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
		r.Header.Set("Content-Type", ct)
		_, err := NewSchema(int64(limit), productSchema.Fields...).Decode(r)
		return err
	}

	// Every cut point, inside boundaries and part headers included.
	for limit := 1; limit < len(body); limit++ {
		err := decode(limit)
		var mbe *http.MaxBytesError
		require.ErrorAs(t, err, &mbe, "cap %d", limit)
		require.Equal(t, int64(limit), mbe.Limit)
	}
	require.NoError(t, decode(len(body)))
}

func TestDecode_NotMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"shop_id":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := productSchema.Decode(req)
	assert.ErrorIs(t, err, apierr.NoValidForm("form"))
}

func TestFilter_StoresValues(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = multipartRequest(t, text("shop_id", uuid.NewString()), text("payload", "{}"))

	key := filter.NewKey[Values]("product")
	require.NoError(t, productSchema.Filter(key)(c))
	assert.Equal(t, "{}", key.Value(c).Text("payload"))
}

func TestNewSchema_Panics(t *testing.T) {
	assert.Panics(t, func() { NewSchema(0, Required("a", Text)) })
	assert.Panics(t, func() { NewSchema(10, Required("a", Text), Optional("a", Binary)) })
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "id", ID.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}
