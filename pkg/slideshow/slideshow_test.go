package slideshow

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/lisheld/matrixslide/internal/adapters/matrix"
	"github.com/lisheld/matrixslide/internal/domain"
)

type stubRadio struct{ err error }

func (r stubRadio) Connect(context.Context, domain.Credentials) error { return r.err }
func (r stubRadio) Address() net.IP                                   { return net.IPv4(10, 0, 0, 9) }

type collectingHandler struct {
	BaseEventHandler

	mu      sync.Mutex
	states  []State
	shown   []string
	skipped []string
}

func (h *collectingHandler) OnStateChange(e StateChangeEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states = append(h.states, e.Current)
}

func (h *collectingHandler) OnFrameShown(e FrameShownEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shown = append(h.shown, e.URL)
}

func (h *collectingHandler) OnFrameSkipped(e FrameSkippedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.skipped = append(h.skipped, e.URL)
}

func (h *collectingHandler) counts() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.shown), len(h.skipped)
}

func bmpServer(t *testing.T) *httptest.Server {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetRGBA(3, 3, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))
	body := buf.Bytes()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.bmp" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(urls ...string) Config {
	cfg := DefaultConfig()
	cfg.WiFiSSID = "home"
	cfg.WiFiPassword = "pw"
	cfg.ImageURLs = urls
	cfg.CycleTime = 5 * time.Millisecond
	cfg.SplashDuration = 0
	cfg.GCAfterCycle = false
	return cfg
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{WiFiSSID: "x", WiFiPassword: "y"})
	assert.ErrorIs(t, err, domain.ErrEmptyPlaylist)

	_, err = New(Config{ImageURLs: []string{"http://a/b.bmp"}})
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestSlideshow_RunsAndStops(t *testing.T) {
	srv := bmpServer(t)
	handler := &collectingHandler{}
	display := matrix.NewHeadless(64, 64, 8)

	s, err := New(testConfig(srv.URL+"/missing.bmp", srv.URL+"/a.bmp", srv.URL+"/b.bmp"),
		WithHTTPClient(srv.Client()),
		WithRadio(stubRadio{}),
		WithDisplay(display),
		WithEventHandler(handler),
	)
	require.NoError(t, err)
	assert.Equal(t, StateStopped, s.Status())

	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), domain.ErrAlreadyRunning)

	require.Eventually(t, func() bool {
		shown, skipped := handler.counts()
		return shown >= 4 && skipped >= 2
	}, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, StateLooping, s.Status())

	require.NoError(t, s.Stop())
	assert.Equal(t, StateStopped, s.Status())
	<-s.Done()

	handler.mu.Lock()
	assert.Equal(t, srv.URL+"/a.bmp", handler.shown[0])
	assert.Equal(t, srv.URL+"/b.bmp", handler.shown[1])
	assert.Equal(t, srv.URL+"/missing.bmp", handler.skipped[0])
	assert.Equal(t, []State{StateConnecting, StateLooping, StateStopping, StateStopped}, handler.states)
	handler.mu.Unlock()

	assert.Equal(t, color.RGBA{R: 255, A: 255}, display.Current().At(3, 3))
	assert.ErrorIs(t, s.Stop(), domain.ErrNotRunning)
	assert.NoError(t, s.Close())
}

func TestSlideshow_JoinFailureCrashes(t *testing.T) {
	cause := errors.New("no ap in range")
	s, err := New(testConfig("http://127.0.0.1:1/a.bmp"),
		WithRadio(stubRadio{err: cause}),
	)
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("slideshow did not exit after join failure")
	}

	assert.Equal(t, StateCrashed, s.Status())
	assert.ErrorIs(t, s.Err(), domain.ErrNetworkUnreachable)
	assert.ErrorIs(t, s.Err(), cause)
	assert.ErrorIs(t, s.Stop(), domain.ErrNotRunning)
}

func TestSlideshow_SplashShownFirst(t *testing.T) {
	srv := bmpServer(t)
	display := matrix.NewHeadless(64, 64, 8)
	cfg := testConfig(srv.URL + "/a.bmp")
	cfg.SplashDuration = 50 * time.Millisecond

	s, err := New(cfg, WithHTTPClient(srv.Client()), WithRadio(stubRadio{}), WithDisplay(display))
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	require.Eventually(t, func() bool { return display.Shows() >= 1 }, time.Second, time.Millisecond)
	first := display.Current()
	if first.Source == "splash" {
		lit := false
		for y := 0; y < 64 && !lit; y++ {
			for x := 0; x < 64; x++ {
				if first.At(x, y) == matrix.SplashColor {
					lit = true
					break
				}
			}
		}
		assert.True(t, lit, "splash frame has no lit LEDs")
	}
	require.Eventually(t, func() bool { return display.Shows() >= 2 }, 5*time.Second, 5*time.Millisecond)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Looping", StateLooping.String())
	assert.Equal(t, "Unknown", State(42).String())
}

func TestSlideshow_ParentCancelStops(t *testing.T) {
	srv := bmpServer(t)
	handler := &collectingHandler{}
	s, err := New(testConfig(srv.URL+"/a.bmp"),
		WithHTTPClient(srv.Client()),
		WithRadio(stubRadio{}),
		WithEventHandler(handler),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	require.Eventually(t, func() bool { return s.Status() == StateLooping }, 5*time.Second, time.Millisecond)

	cancel()
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("slideshow did not exit after cancel")
	}
	assert.Equal(t, StateStopped, s.Status())
	assert.NoError(t, s.Err())
	assert.ErrorIs(t, s.Stop(), domain.ErrNotRunning)

	handler.mu.Lock()
	assert.Equal(t, []State{StateConnecting, StateLooping, StateStopping, StateStopped}, handler.states)
	handler.mu.Unlock()

	// A cancelled slideshow can be started again.
	require.NoError(t, s.Start(context.Background()))
	require.Eventually(t, func() bool { return s.Status() == StateLooping }, 5*time.Second, time.Millisecond)
	require.NoError(t, s.Stop())
	assert.Equal(t, StateStopped, s.Status())
}

func TestSlideshow_CancelWhileConnecting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New(testConfig("http://127.0.0.1:1/a.bmp"), WithRadio(blockingRadio{}))
	require.NoError(t, err)
	require.NoError(t, s.Start(ctx))
	<-s.Done()

	assert.Equal(t, StateStopped, s.Status())
	assert.NoError(t, s.Err())
}

type blockingRadio struct{}

func (blockingRadio) Connect(ctx context.Context, _ domain.Credentials) error {
	<-ctx.Done()
	return ctx.Err()
}
func (blockingRadio) Address() net.IP { return nil }

func TestNew_UnusableProbeAddress(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no host", "http:///a.bmp"},
		{"bad scheme", "ftp://example.com/a.bmp"},
		{"unparsable", "http://[::1/a.bmp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(testConfig(tt.url))
			assert.ErrorContains(t, err, "probe address")
		})
	}

	// An explicit probe address skips the derivation.
	cfg := testConfig("ftp://example.com/a.bmp")
	cfg.ProbeAddr = "127.0.0.1:1"
	_, err := New(cfg)
	assert.NoError(t, err)
}

type panel struct {
	mu      sync.Mutex
	lit     map[[2]int16]color.RGBA
	flushes int
}

func (p *panel) Size() (int16, int16) { return 64, 64 }

func (p *panel) SetPixel(x, y int16, c color.RGBA) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lit[[2]int16{x, y}] = c
}

func (p *panel) Display() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.flushes++
	return nil
}

func (p *panel) pixel(x, y int16) (color.RGBA, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lit[[2]int16{x, y}], p.flushes
}

func TestSlideshow_DriverDisplay(t *testing.T) {
	srv := bmpServer(t)
	dev := &panel{lit: map[[2]int16]color.RGBA{}}

	s, err := New(testConfig(srv.URL+"/a.bmp"),
		WithHTTPClient(srv.Client()),
		WithRadio(stubRadio{}),
		WithDisplay(NewDriverDisplay(dev, 8)),
	)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	require.Eventually(t, func() bool {
		c, flushes := dev.pixel(3, 3)
		return flushes > 0 && c == color.RGBA{R: 255, A: 255}
	}, 5*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Close())
}
