package http

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lisheld/matrixslide/internal/domain"
	"github.com/lisheld/matrixslide/pkg/log"
)

func TestFetcher_Fetch(t *testing.T) {
	body := []byte("BM fake bitmap")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.bmp":
			w.Header().Set("Content-Type", "image/bmp")
			_, _ = w.Write(body)
		case "/big.bmp":
			_, _ = w.Write(bytes.Repeat([]byte{0}, MaxImageBytes+10))
		case "/slow.bmp":
			<-r.Context().Done()
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), log.NewNoopLogger())

	t.Run("ok", func(t *testing.T) {
		data, err := f.Fetch(context.Background(), srv.URL+"/ok.bmp")
		require.NoError(t, err)
		assert.Equal(t, body, data)
	})

	t.Run("non-200 is a fetch error", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), srv.URL+"/missing.bmp")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrFetch))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("oversized body", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), srv.URL+"/big.bmp")
		assert.ErrorIs(t, err, domain.ErrFetch)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), "://nope")
		assert.ErrorIs(t, err, domain.ErrFetch)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := f.Fetch(ctx, srv.URL+"/slow.bmp")
		assert.ErrorIs(t, err, domain.ErrFetch)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewClient(t *testing.T) {
	c, err := NewClient(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.Timeout)

	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, tr.TLSNextProto["h2"], "http2 should be registered on the transport")
}
