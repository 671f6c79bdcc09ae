package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lisheld/matrixslide/internal/domain"
	"github.com/lisheld/matrixslide/internal/ports"
)

// RunnerConfig contains configuration for the slideshow loop.
type RunnerConfig struct {
	URLs      []string
	CycleTime time.Duration
}

// Dependencies are the adapters the runner drives.
type Dependencies struct {
	Radio     ports.Radio
	Fetcher   ports.Fetcher
	Decoder   ports.Decoder
	Display   ports.Display
	Clock     ports.Clock
	Reclaimer ports.Reclaimer
	Logger    ports.Logger
	Emitter   FrameEventEmitter
}

// FrameEventEmitter is called once per iteration with its outcome.
type FrameEventEmitter interface {
	OnFrameShown(index int, url string, duration time.Duration)
	OnFrameSkipped(index int, url string, err error)
}

// Runner is the slideshow: it owns the network session, the playlist
// cursor and the cycle timer.
type Runner struct {
	config   RunnerConfig
	playlist *domain.Playlist
	deps     Dependencies
}

// NewRunner validates the configuration and returns a runner positioned at
// the first URL.
func NewRunner(cfg RunnerConfig, deps Dependencies) (*Runner, error) {
	playlist, err := domain.NewPlaylist(cfg.URLs)
	if err != nil {
		return nil, err
	}
	if cfg.CycleTime <= 0 {
		return nil, fmt.Errorf("cycle time must be positive, got %s", cfg.CycleTime)
	}
	if deps.Radio == nil || deps.Fetcher == nil || deps.Decoder == nil || deps.Display == nil {
		return nil, errors.New("runner: radio, fetcher, decoder and display are required")
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Reclaimer == nil {
		deps.Reclaimer = NoopReclaimer{}
	}
	if deps.Logger == nil {
		deps.Logger = noopLogger{}
	}
	return &Runner{config: cfg, playlist: playlist, deps: deps}, nil
}

// Index returns the playlist cursor.
func (r *Runner) Index() int {
	return r.playlist.Index()
}

// ShowSplash displays frame and holds it for d before returning.
// A display error is logged and otherwise ignored.
func (r *Runner) ShowSplash(ctx context.Context, frame *domain.Frame, d time.Duration) error {
	if frame == nil {
		return nil
	}
	if err := r.deps.Display.Show(frame); err != nil {
		r.deps.Logger.Warn("could not show splash", ports.Err(err))
		return nil
	}
	r.deps.Logger.Info("splash displayed", ports.Duration("hold", d))
	if d <= 0 {
		return nil
	}
	return r.deps.Clock.Sleep(ctx, d)
}

// Start validates credentials and joins the network. Any error is fatal.
func (r *Runner) Start(ctx context.Context, creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	r.deps.Logger.Info("connecting to wifi", ports.String("ssid", creds.SSID))
	if err := r.deps.Radio.Connect(ctx, creds); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %w", domain.ErrNetworkUnreachable, err)
	}

	ip := "unknown"
	if addr := r.deps.Radio.Address(); addr != nil {
		ip = addr.String()
	}
	r.deps.Logger.Info("connected", ports.String("ssid", creds.SSID), ports.String("ip", ip))
	return nil
}

// RunForever repeats Step until the context is cancelled.
func (r *Runner) RunForever(ctx context.Context) error {
	r.deps.Logger.Info("starting photo slideshow",
		ports.Int("images", r.playlist.Len()),
		ports.Duration("cycle_time", r.config.CycleTime),
	)
	r.deps.Logger.Debug("playlist", ports.Strings("urls", r.playlist.URLs()))
	for {
		if err := r.Step(ctx); err != nil {
			return err
		}
	}
}

// Step runs one iteration: show the current URL, advance the cursor, wait
// the cycle time, reclaim memory. Fetch, decode and display failures are
// logged and skipped; only context cancellation is returned.
func (r *Runner) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	index := r.playlist.Index()
	url := r.playlist.Current()
	r.deps.Logger.Info("processing image",
		ports.Int("image", index+1),
		ports.Int("of", r.playlist.Len()),
		ports.String("url", url),
	)

	start := r.deps.Clock.Now()
	err := r.show(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.deps.Logger.Error("image skipped",
			ports.Int("image", index+1),
			ports.String("url", url),
			ports.Err(err),
		)
		if r.deps.Emitter != nil {
			r.deps.Emitter.OnFrameSkipped(index, url, err)
		}
	} else {
		took := r.deps.Clock.Now().Sub(start)
		r.deps.Logger.Info("image displayed",
			ports.Int("image", index+1),
			ports.Duration("took", took),
		)
		if r.deps.Emitter != nil {
			r.deps.Emitter.OnFrameShown(index, url, took)
		}
	}

	r.playlist.Advance()

	r.deps.Logger.Debug("waiting before next image", ports.Duration("cycle_time", r.config.CycleTime))
	if err := r.deps.Clock.Sleep(ctx, r.config.CycleTime); err != nil {
		return err
	}

	r.deps.Reclaimer.Reclaim()
	return nil
}

// show fetches, decodes and displays one URL. The decoded frame is not
// retained past this call.
func (r *Runner) show(ctx context.Context, url string) error {
	data, err := r.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	r.deps.Logger.Debug("downloaded image", ports.Int("bytes", len(data)))

	w, h := r.deps.Display.Size()
	frame, err := r.deps.Decoder.Decode(data, w, h)
	if err != nil {
		return err
	}
	frame.Source = url

	if err := r.deps.Display.Show(frame); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...ports.Field) {}
func (noopLogger) Info(string, ...ports.Field)  {}
func (noopLogger) Warn(string, ...ports.Field)  {}
func (noopLogger) Error(string, ...ports.Field) {}
