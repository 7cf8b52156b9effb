package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ping" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	_, port, _ := net.SplitHostPort(ts.Listener.Addr().String())
	for _, listen := range []string{":" + port, "127.0.0.1:" + port, port} {
		if err := Ping(context.Background(), listen, 2); err != nil {
			t.Errorf("Ping(%q): %v", listen, err)
		}
	}
}

func TestPing_Errors(t *testing.T) {
	if err := Ping(context.Background(), "", 1); err == nil {
		t.Error("empty listen address should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Ping(ctx, ":1", 5); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled ping: %v", err)
	}
}
