package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/pigskit/pigskit-server/internal/config"
)

func TestNewHTTPServer_CopiesLimits(t *testing.T) {
	cfg := config.Config{
		Port:              "8088",
		ReadTimeout:       2 * time.Second,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      3 * time.Second,
		IdleTimeout:       4 * time.Second,
		MaxHeaderBytes:    1 << 12,
	}
	srv := newHTTPServer(cfg, http.NotFoundHandler())

	if srv.Addr != ":8088" || srv.ReadTimeout != 2*time.Second || srv.ReadHeaderTimeout != time.Second ||
		srv.WriteTimeout != 3*time.Second || srv.IdleTimeout != 4*time.Second || srv.MaxHeaderBytes != 1<<12 {
		t.Fatalf("server = %+v", srv)
	}
	if srv.BaseContext != nil {
		t.Fatal("request contexts must not derive from the signal context")
	}
}

func TestServe_DrainsInFlightRequestOnSignal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entered := make(chan struct{})
	release := make(chan struct{})
	reqErr := make(chan error, 1)
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		reqErr <- r.Context().Err()
		_, _ = io.WriteString(w, "done")
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	srv := newHTTPServer(config.Config{}, h)
	served := make(chan error, 1)
	go func() { served <- serve(ctx, srv, ln, 5*time.Second) }()

	type result struct {
		body string
		err  error
	}
	got := make(chan result, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/slow")
		if err != nil {
			got <- result{err: err}
			return
		}
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		got <- result{body: string(b), err: err}
	}()

	<-entered
	cancel()
	// Give Shutdown time to start before the handler finishes.
	time.Sleep(50 * time.Millisecond)
	close(release)

	if err := <-reqErr; err != nil {
		t.Fatalf("request context ended on signal: %v", err)
	}
	if res := <-got; res.err != nil || res.body != "done" {
		t.Fatalf("response = %q, %v", res.body, res.err)
	}
	select {
	case err := <-served:
		if err != nil {
			t.Fatalf("serve = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after shutdown")
	}
}
