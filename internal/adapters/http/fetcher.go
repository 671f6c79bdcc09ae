package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/lisheld/matrixslide/internal/domain"
	"github.com/lisheld/matrixslide/internal/ports"
)

// MaxImageBytes caps a download. A 64x64 24-bit BMP is about 12 KiB.
const MaxImageBytes = 1 << 20

// Fetcher implements ports.Fetcher with plain HTTP GET requests.
type Fetcher struct {
	client   ports.HTTPClient
	logger   ports.Logger
	maxBytes int64
}

// NewFetcher creates a fetcher. A nil client uses http.DefaultClient.
func NewFetcher(client ports.HTTPClient, logger ports.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		client:   client,
		logger:   logger,
		maxBytes: MaxImageBytes,
	}
}

// Fetch downloads url and returns its body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrFetch, err)
	}
	req.Header.Set("Accept", "image/bmp, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if f.logger != nil {
		f.logger.Debug("http response",
			ports.Int("status", resp.StatusCode),
			ports.Int64("content_length", resp.ContentLength),
			ports.String("proto", resp.Proto),
		)
	}

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrFetch, url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrFetch, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", domain.ErrFetch, f.maxBytes)
	}
	return data, nil
}
