package castore

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilcam/veilcam/internal/common"
	"github.com/veilcam/veilcam/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPinataStore_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pinning/pinFileToIPFS", r.URL.Path)
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"IpfsHash":"QmTest123","PinSize":4,"Timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	s := NewPinataStore(srv.URL, "https://gateway.example", "token-123", discardLogger())

	cid, err := s.Upload(context.Background(), []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "QmTest123", cid)

	assert.Equal(t, "https://gateway.example/ipfs/QmTest123", s.Resolve(cid))
}

func TestPinataStore_UploadErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer srv.Close()

	s := NewPinataStore(srv.URL, "https://gateway.example", "bad", discardLogger())

	_, err := s.Upload(context.Background(), []byte("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"capsule_id":"cap_1"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	body, err := Fetch(context.Background(), nil, srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, `{"capsule_id":"cap_1"}`, string(body))

	_, err = Fetch(context.Background(), nil, srv.URL+"/missing")
	assert.ErrorIs(t, err, common.ErrorFetch)

	// unreachable host
	_, err = Fetch(context.Background(), nil, "http://127.0.0.1:1/x")
	assert.ErrorIs(t, err, common.ErrorFetch)
}
