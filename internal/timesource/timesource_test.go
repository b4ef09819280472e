package timesource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilcam/veilcam/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func timeServer(t *testing.T, unixtime int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"utc_datetime":"x","unixtime":%d}`, unixtime)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPProvider_Now(t *testing.T) {
	srv := timeServer(t, 1700000000)

	p := NewHTTPProvider("test", srv.URL)
	got, err := p.Now(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), got)
}

func TestHTTPProvider_BadResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/garbage":
			_, _ = w.Write([]byte("not json"))
		case "/empty":
			_, _ = w.Write([]byte("{}"))
		}
	}))
	defer srv.Close()

	for _, path := range []string{"/status", "/garbage", "/empty"} {
		p := NewHTTPProvider("test", srv.URL+path)
		_, err := p.Now(context.Background())
		assert.Error(t, err, path)
	}
}

func TestChain_FirstProviderWins(t *testing.T) {
	srv1 := timeServer(t, 1700000000)
	srv2 := timeServer(t, 1600000000)

	c := NewChain(discardLogger(),
		NewHTTPProvider("one", srv1.URL),
		NewHTTPProvider("two", srv2.URL),
	)

	r := c.Now(context.Background())
	assert.True(t, r.Trusted)
	assert.Equal(t, "one", r.Source)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), r.Time)
}

func TestChain_FallsThroughToSecond(t *testing.T) {
	srv2 := timeServer(t, 1700000000)

	c := NewChain(discardLogger(),
		NewHTTPProvider("dead", "http://127.0.0.1:1/time"),
		NewHTTPProvider("alive", srv2.URL),
	)

	r := c.Now(context.Background())
	assert.True(t, r.Trusted)
	assert.Equal(t, "alive", r.Source)
}

func TestChain_LocalFallback(t *testing.T) {
	orig := localNow
	defer func() { localNow = orig }()
	fixed := time.Unix(1800000000, 0)
	localNow = func() time.Time { return fixed }

	c := NewChain(discardLogger(), NewHTTPProvider("dead", "http://127.0.0.1:1/time"))

	r := c.Now(context.Background())
	assert.False(t, r.Trusted)
	assert.Equal(t, "local", r.Source)
	assert.Equal(t, fixed.UTC(), r.Time)
}
