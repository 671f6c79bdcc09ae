package slideshow

import (
	"fmt"
	"time"

	"github.com/lisheld/matrixslide/internal/domain"
)

// Config holds the slideshow settings.
type Config struct {
	WiFiSSID     string
	WiFiPassword string

	// ImageURLs is the playlist, shown in order and repeated forever.
	ImageURLs []string

	// CycleTime is how long each image stays up. Default 10s.
	CycleTime time.Duration

	// HTTPTimeout bounds one download. Default 30s.
	HTTPTimeout time.Duration

	// SplashDuration holds the "LOADING..." screen before connecting.
	// Zero disables the splash.
	SplashDuration time.Duration

	// GCAfterCycle runs the garbage collector after each wait.
	GCAfterCycle bool

	Width    int
	Height   int
	BitDepth int

	// ProbeAddr, JoinAttempts and JoinBackoff tune the default radio.
	ProbeAddr    string
	JoinAttempts int
	JoinBackoff  time.Duration
}

// DefaultConfig returns a Config with default values. Credentials and
// URLs are left empty.
func DefaultConfig() Config {
	return Config{
		CycleTime:      10 * time.Second,
		HTTPTimeout:    30 * time.Second,
		SplashDuration: 2 * time.Second,
		GCAfterCycle:   true,
		Width:          domain.MatrixWidth,
		Height:         domain.MatrixHeight,
		BitDepth:       4,
	}
}

// SetDefaults fills zero-valued fields.
func (c *Config) SetDefaults() {
	if c.CycleTime == 0 {
		c.CycleTime = 10 * time.Second
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = 30 * time.Second
	}
	if c.Width == 0 {
		c.Width = domain.MatrixWidth
	}
	if c.Height == 0 {
		c.Height = domain.MatrixHeight
	}
	if c.BitDepth == 0 {
		c.BitDepth = 4
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.credentials().Validate(); err != nil {
		return err
	}
	if len(c.ImageURLs) == 0 {
		return domain.ErrEmptyPlaylist
	}
	if c.CycleTime <= 0 {
		return fmt.Errorf("cycle time must be positive, got %s", c.CycleTime)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

func (c Config) credentials() domain.Credentials {
	return domain.Credentials{SSID: c.WiFiSSID, Password: c.WiFiPassword}
}
