package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pigskit/pigskit-server/internal/apierr"
	"github.com/pigskit/pigskit-server/internal/http/filter"
)

func dispatchRouter(h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(nil), Dispatch())
	r.NoRoute(NotFound())
	r.Any("/x", h)
	return r
}

func record(err error) gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(err)
		c.Abort()
	}
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestDispatch_SoftRejectionAndNoRoute(t *testing.T) {
	captureLogger(t)
	base := testutil.ToFloat64(apiErrors.WithLabelValues("NotFound"))
	r := dispatchRouter(record(filter.NotMatched("method PUT")))

	for _, path := range []string{"/x", "/nowhere"} {
		w := serve(r, http.MethodPut, path)
		if w.Code != http.StatusNotFound || w.Body.String() != NotFoundBody {
			t.Fatalf("%s: code=%d body=%q", path, w.Code, w.Body.String())
		}
	}
	if got := testutil.ToFloat64(apiErrors.WithLabelValues("NotFound")); got != base+2 {
		t.Fatalf("api_errors_total{NotFound} = %v; want %v", got, base+2)
	}
}

func TestDispatch_PayloadTooLarge(t *testing.T) {
	captureLogger(t)
	r := dispatchRouter(record(&http.MaxBytesError{Limit: 512000}))

	w := serve(r, http.MethodPost, "/x")
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("code=%d", w.Code)
	}
	var env apierr.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	if env.Type != apierr.KindPayloadTooLarge || env.Status != http.StatusRequestEntityTooLarge {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestDispatch_APIErrorLoggedAtInfo(t *testing.T) {
	buf := captureLogger(t)
	r := dispatchRouter(record(apierr.SessionExpired(apierr.CookieCart)))

	w := serve(r, http.MethodPost, "/x")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("code=%d", w.Code)
	}
	want := `{"status":401,"type":"SessionExpired","message":"session expired","data":{"cookie":"GSSID"}}`
	if strings.TrimSpace(w.Body.String()) != want {
		t.Fatalf("body = %s", w.Body.String())
	}

	var found bool
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, `"message":"api error"`) {
			found = true
			if !strings.Contains(line, `"level":"info"`) || strings.Contains(line, `"cause"`) {
				t.Fatalf("unexpected api error log: %s", line)
			}
		}
	}
	if !found {
		t.Fatalf("api error not logged:\n%s", buf.String())
	}
}

func TestDispatch_InternalLogsCauseNeverRendersIt(t *testing.T) {
	buf := captureLogger(t)
	r := dispatchRouter(record(apierr.Internal(errors.New("relation \"shops\" does not exist"))))

	w := serve(r, http.MethodGet, "/x")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("code=%d", w.Code)
	}
	if strings.Contains(w.Body.String(), "relation") {
		t.Fatalf("cause leaked: %s", w.Body.String())
	}
	if !strings.Contains(buf.String(), `"cause":"relation \"shops\" does not exist"`) {
		t.Fatalf("cause not logged:\n%s", buf.String())
	}
}

func TestDispatch_UnclassifiedIsBare500(t *testing.T) {
	buf := captureLogger(t)
	r := dispatchRouter(record(errors.New("writer hijacked")))

	w := serve(r, http.MethodGet, "/x")
	if w.Code != http.StatusInternalServerError || w.Body.Len() != 0 {
		t.Fatalf("code=%d body=%q", w.Code, w.Body.String())
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error log:\n%s", buf.String())
	}
}

func TestDispatch_WrittenResponseUntouched(t *testing.T) {
	captureLogger(t)
	r := dispatchRouter(func(c *gin.Context) {
		c.String(http.StatusOK, "Success.")
		_ = c.Error(errors.New("late"))
	})

	w := serve(r, http.MethodGet, "/x")
	if w.Code != http.StatusOK || w.Body.String() != "Success." {
		t.Fatalf("code=%d body=%q", w.Code, w.Body.String())
	}
}

func TestDevCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reached := false
	r := gin.New()
	r.Use(DevCORS("http://localhost:3000"), Dispatch())
	r.NoRoute(NotFound())
	r.Any("/api/shop", func(c *gin.Context) {
		reached = true
		c.String(http.StatusOK, "Successfully created shop.")
	})

	w := serve(r, http.MethodOptions, "/api/shop")
	if w.Code != http.StatusOK || reached {
		t.Fatalf("preflight: code=%d reached=%v", w.Code, reached)
	}
	// Preflight is answered even where no route exists.
	if w := serve(r, http.MethodOptions, "/nowhere"); w.Code != http.StatusOK {
		t.Fatalf("preflight on unknown path: %d", w.Code)
	}

	w = serve(r, http.MethodPost, "/api/shop")
	if !reached || w.Code != http.StatusOK {
		t.Fatalf("post: code=%d reached=%v", w.Code, reached)
	}
	h := w.Header()
	for k, v := range map[string]string{
		"Access-Control-Allow-Headers":     "Content-Type",
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Allow-Origin":      "http://localhost:3000",
		"Access-Control-Allow-Methods":     "GET, POST, OPTIONS, PUT, PATCH, DELETE",
	} {
		if h.Get(k) != v {
			t.Fatalf("%s = %q; want %q", k, h.Get(k), v)
		}
	}

	// Error responses are decorated too.
	w = serve(r, http.MethodGet, "/nowhere")
	if w.Code != http.StatusNotFound || w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("404 not decorated: %d %v", w.Code, w.Header())
	}
}
