package slideshow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	bmpAdapter "github.com/lisheld/matrixslide/internal/adapters/bmp"
	httpAdapter "github.com/lisheld/matrixslide/internal/adapters/http"
	"github.com/lisheld/matrixslide/internal/adapters/matrix"
	"github.com/lisheld/matrixslide/internal/adapters/network"
	"github.com/lisheld/matrixslide/internal/app"
	"github.com/lisheld/matrixslide/internal/domain"
	"github.com/lisheld/matrixslide/internal/ports"
	"github.com/lisheld/matrixslide/pkg/log"
)

// Slideshow cycles images on an LED matrix. Use New() to create one, then
// Start() to begin.
type Slideshow struct {
	config    Config
	lifecycle *app.Lifecycle
	runner    *app.Runner
	display   ports.Display
	logger    ports.Logger

	mu   sync.RWMutex
	done chan struct{}
}

// New creates a Slideshow in StateStopped.
// Returns an error if the configuration is invalid.
func New(cfg Config, opts ...Option) (*Slideshow, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	client := o.httpClient
	if client == nil {
		c, err := httpAdapter.NewClient(cfg.HTTPTimeout)
		if err != nil {
			return nil, err
		}
		client = c
	}

	display := o.display
	if display == nil {
		display = matrix.NewHeadless(cfg.Width, cfg.Height, cfg.BitDepth)
	}
	// The splash is drawn at the size of the display actually in use.
	cfg.Width, cfg.Height = display.Size()

	radio := o.radio
	if radio == nil {
		probe := cfg.ProbeAddr
		if probe == "" {
			p, err := network.ProbeAddrFromURL(cfg.ImageURLs[0])
			if err != nil {
				return nil, fmt.Errorf("probe address from %q: %w", cfg.ImageURLs[0], err)
			}
			probe = p
		}
		radio = network.NewHostRadio(network.RadioConfig{
			ProbeAddr:      probe,
			Attempts:       cfg.JoinAttempts,
			InitialBackoff: cfg.JoinBackoff,
		}, nil, logger)
	}

	reclaimer := o.reclaimer
	if reclaimer == nil {
		if cfg.GCAfterCycle {
			reclaimer = app.GCReclaimer{}
		} else {
			reclaimer = app.NoopReclaimer{}
		}
	}

	runner, err := app.NewRunner(app.RunnerConfig{
		URLs:      cfg.ImageURLs,
		CycleTime: cfg.CycleTime,
	}, app.Dependencies{
		Radio:     radio,
		Fetcher:   httpAdapter.NewFetcher(client, logger),
		Decoder:   bmpAdapter.NewDecoder(),
		Display:   display,
		Clock:     o.clock,
		Reclaimer: reclaimer,
		Logger:    logger,
		Emitter:   emitter,
	})
	if err != nil {
		return nil, err
	}

	return &Slideshow{
		config:    cfg,
		lifecycle: app.NewLifecycle(logger, emitter),
		runner:    runner,
		display:   display,
		logger:    logger,
	}, nil
}

// Start shows the splash, joins the network and begins the loop in the
// background. It returns immediately.
func (s *Slideshow) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := s.lifecycle.TransitionTo(app.StateConnecting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.lifecycle.SetCancel(cancel)
	s.done = make(chan struct{})
	done := s.done

	s.lifecycle.Go(func() {
		defer close(done)
		defer cancel()
		s.run(runCtx)
		s.settle(runCtx)
	})

	return nil
}

func (s *Slideshow) run(ctx context.Context) {
	if s.config.SplashDuration > 0 {
		splash := matrix.SplashFrame(s.config.Width, s.config.Height, matrix.SplashText, matrix.SplashColor)
		if err := s.runner.ShowSplash(ctx, splash, s.config.SplashDuration); err != nil {
			if ctx.Err() == nil {
				_ = s.lifecycle.Fail(err)
			}
			return
		}
	}

	if err := s.runner.Start(ctx, s.config.credentials()); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("network join failed", ports.Err(err))
		_ = s.lifecycle.Fail(err)
		return
	}

	if err := s.lifecycle.TransitionTo(app.StateLooping, "network joined"); err != nil {
		// Stop() raced the join.
		return
	}

	err := s.runner.RunForever(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("slideshow error", ports.Err(err))
		_ = s.lifecycle.Fail(err)
	}
}

// settle moves a loop that ended because its parent context was cancelled
// to StateStopped. Stop and Fail have already left Connecting/Looping, so
// the transition is refused for them.
func (s *Slideshow) settle(ctx context.Context) {
	if ctx.Err() == nil {
		return
	}
	ran := s.lifecycle.Since()
	if err := s.lifecycle.TransitionTo(app.StateStopping, "context cancelled"); err != nil {
		return
	}
	s.logger.Info("slideshow cancelled", ports.Duration("ran", ran))
	_ = s.lifecycle.TransitionTo(app.StateStopped, "context cancelled")
}

// Stop cancels the loop and waits for it to exit.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced.
func (s *Slideshow) Stop() error {
	s.mu.Lock()

	if !s.lifecycle.CanStop() {
		s.mu.Unlock()
		return domain.ErrNotRunning
	}
	ran := s.lifecycle.Since()
	if err := s.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		s.mu.Unlock()
		return err
	}
	s.lifecycle.Cancel()
	s.mu.Unlock()
	s.logger.Info("stopping slideshow", ports.Duration("ran", ran))

	err := s.lifecycle.Wait(app.ShutdownTimeout)
	if err != nil {
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = s.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// Close stops the slideshow if needed and releases the display.
func (s *Slideshow) Close() error {
	if err := s.Stop(); err != nil && !errors.Is(err, domain.ErrNotRunning) {
		return err
	}
	if err := s.display.Close(); err != nil {
		return fmt.Errorf("close display: %w", err)
	}
	return nil
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (s *Slideshow) Status() State {
	return convertState(s.lifecycle.State())
}

// Done is closed when the background loop exits, whether stopped or
// crashed. It is nil before the first Start.
func (s *Slideshow) Done() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.done
}

// Err returns the error that crashed the slideshow, if any.
func (s *Slideshow) Err() error {
	return s.lifecycle.Err()
}
