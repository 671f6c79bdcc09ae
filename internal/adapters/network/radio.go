// Package network brings up the slideshow's network session.
//
// On a host the operating system already owns the WiFi association, so
// joining means proving the network can reach the image server: the radio
// dials a probe address, retrying with exponential backoff, and records the
// local address the kernel picked.
package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/lisheld/matrixslide/internal/domain"
	"github.com/lisheld/matrixslide/internal/ports"
	"github.com/lisheld/matrixslide/pkg/log"
)

// Defaults for RadioConfig.
const (
	DefaultJoinAttempts   = 5
	DefaultInitialBackoff = 500 * time.Millisecond
	DefaultMaxBackoff     = 8 * time.Second
	DefaultDialTimeout    = 5 * time.Second
)

// Dialer opens connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// RadioConfig controls the join procedure.
type RadioConfig struct {
	// ProbeAddr is a host:port that must be reachable for the join to
	// succeed. Empty skips the probe.
	ProbeAddr string

	// Attempts bounds the number of probe dials.
	Attempts int

	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	DialTimeout    time.Duration
}

func (c *RadioConfig) setDefaults() {
	if c.Attempts <= 0 {
		c.Attempts = DefaultJoinAttempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = DefaultInitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = DefaultMaxBackoff
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = DefaultDialTimeout
	}
}

// HostRadio implements ports.Radio on a machine with an existing network stack.
type HostRadio struct {
	cfg    RadioConfig
	dialer Dialer
	logger ports.Logger

	mu   sync.Mutex
	addr net.IP
}

// NewHostRadio creates a radio. A nil dialer uses net.Dialer.
func NewHostRadio(cfg RadioConfig, dialer Dialer, logger ports.Logger) *HostRadio {
	cfg.setDefaults()
	if dialer == nil {
		dialer = &net.Dialer{Timeout: cfg.DialTimeout}
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &HostRadio{cfg: cfg, dialer: dialer, logger: logger}
}

// Connect probes the network until it answers or the attempts run out.
func (r *HostRadio) Connect(ctx context.Context, creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}
	if r.cfg.ProbeAddr == "" {
		r.logger.Debug("no probe address, assuming network is up")
		r.setAddr(firstLocalIP())
		return nil
	}

	b := newBackoff(r.cfg.InitialBackoff, r.cfg.MaxBackoff)
	var lastErr error
	for attempt := 1; attempt <= r.cfg.Attempts; attempt++ {
		ip, err := r.probe(ctx)
		if err == nil {
			r.setAddr(ip)
			b.reset()
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		lastErr = err
		r.logger.Warn("network probe failed",
			ports.Int("attempt", attempt),
			ports.Int("max_attempts", r.cfg.Attempts),
			ports.String("probe", r.cfg.ProbeAddr),
			ports.Err(err),
		)
		if attempt == r.cfg.Attempts {
			break
		}
		if err := b.sleep(ctx); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", domain.ErrNetworkUnreachable, r.cfg.Attempts, lastErr)
}

func (r *HostRadio) probe(ctx context.Context) (net.IP, error) {
	dctx, cancel := context.WithTimeout(ctx, r.cfg.DialTimeout)
	defer cancel()

	conn, err := r.dialer.DialContext(dctx, "tcp", r.cfg.ProbeAddr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if tcp, ok := conn.LocalAddr().(*net.TCPAddr); ok {
		return tcp.IP, nil
	}
	return nil, nil
}

// Address returns the local IP used to reach the probe address.
func (r *HostRadio) Address() net.IP {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addr
}

func (r *HostRadio) setAddr(ip net.IP) {
	r.mu.Lock()
	r.addr = ip
	r.mu.Unlock()
}

func firstLocalIP() net.IP {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	for _, a := range addrs {
		if ipn, ok := a.(*net.IPNet); ok && !ipn.IP.IsLoopback() && ipn.IP.To4() != nil {
			return ipn.IP
		}
	}
	return nil
}

// ProbeAddrFromURL returns host:port for rawURL, defaulting the port from
// the scheme.
func ProbeAddrFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", errors.New("url has no host")
	}
	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		case "http":
			port = "80"
		default:
			return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
		}
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
