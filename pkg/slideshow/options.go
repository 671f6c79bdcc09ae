package slideshow

import (
	"github.com/lisheld/matrixslide/internal/ports"
	"github.com/lisheld/matrixslide/pkg/log"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = log.Logger

// Display is an LED matrix backend.
type Display = ports.Display

// Radio brings up the network session.
type Radio = ports.Radio

// Clock provides the cancellable wait between images.
type Clock = ports.Clock

// Reclaimer runs after each wait.
type Reclaimer = ports.Reclaimer

// Option configures optional behavior of a Slideshow.
type Option func(*options)

type options struct {
	httpClient   ports.HTTPClient
	logger       ports.Logger
	eventHandler EventHandler
	display      ports.Display
	radio        ports.Radio
	clock        ports.Clock
	reclaimer    ports.Reclaimer
}

// WithHTTPClient sets the client used to download images.
// If not provided, an HTTP/2-capable client with the configured timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for slideshow events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithDisplay sets the matrix backend. The default is an in-memory matrix.
func WithDisplay(d Display) Option {
	return func(o *options) {
		o.display = d
	}
}

// WithRadio replaces the default network probe.
func WithRadio(r Radio) Option {
	return func(o *options) {
		o.radio = r
	}
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithReclaimer replaces the post-wait memory reclamation step.
func WithReclaimer(r Reclaimer) Option {
	return func(o *options) {
		o.reclaimer = r
	}
}
