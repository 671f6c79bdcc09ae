package cliconfig

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lisheld/matrixslide/internal/adapters/network"
	"github.com/lisheld/matrixslide/internal/domain"
)

// Display backends.
const (
	DisplayHeadless = "headless"
	DisplayWindow   = "window"
)

// DefaultImageURLs is the playlist used when none is configured.
var DefaultImageURLs = []string{
	"https://raw.githubusercontent.com/lisheld/MatrixPortalThings/refs/heads/main/bmp/DSC07557.bmp",
	"https://raw.githubusercontent.com/lisheld/MatrixPortalThings/refs/heads/main/bmp/IMG_2144.bmp",
	"https://raw.githubusercontent.com/lisheld/MatrixPortalThings/refs/heads/main/bmp/IMG_2391.bmp",
	"https://raw.githubusercontent.com/lisheld/MatrixPortalThings/refs/heads/main/bmp/IMG_2590.bmp",
}

// Config holds CLI configuration for matrixslide.
type Config struct {
	WiFiSSID     string
	WiFiPassword string

	ImageURLs []string
	URLFile   string

	CycleTime      time.Duration
	HTTPTimeout    time.Duration
	SplashDuration time.Duration
	GCAfterCycle   bool

	Display  string
	Width    int
	Height   int
	BitDepth int
	Scale    int

	ProbeAddr    string
	JoinAttempts int
	JoinBackoff  time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ImageURLs:      append([]string(nil), DefaultImageURLs...),
		CycleTime:      10 * time.Second,
		HTTPTimeout:    30 * time.Second,
		SplashDuration: 2 * time.Second,
		GCAfterCycle:   true,
		Display:        DisplayWindow,
		Width:          domain.MatrixWidth,
		Height:         domain.MatrixHeight,
		BitDepth:       4,
		Scale:          8,
		JoinAttempts:   network.DefaultJoinAttempts,
		JoinBackoff:    network.DefaultInitialBackoff,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	creds := domain.Credentials{SSID: c.WiFiSSID, Password: c.WiFiPassword}
	if err := creds.Validate(); err != nil {
		return err
	}

	if len(c.ImageURLs) == 0 {
		return fmt.Errorf("%w: image_urls is empty", domain.ErrEmptyPlaylist)
	}
	for i, raw := range c.ImageURLs {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("image url %d: %w", i+1, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("image url %d: %q is not an http(s) url", i+1, raw)
		}
	}

	if c.CycleTime <= 0 {
		return fmt.Errorf("cycle time must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.SplashDuration < 0 {
		c.SplashDuration = 0
	}

	c.Display = strings.ToLower(strings.TrimSpace(c.Display))
	switch c.Display {
	case DisplayHeadless, DisplayWindow:
	case "":
		c.Display = DisplayWindow
	default:
		return fmt.Errorf("unknown display %q (want %s or %s)", c.Display, DisplayHeadless, DisplayWindow)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.BitDepth < 1 || c.BitDepth > 8 {
		return fmt.Errorf("bit depth must be between 1 and 8, got %d", c.BitDepth)
	}
	if c.Scale <= 0 {
		c.Scale = 8
	}

	if c.JoinAttempts <= 0 {
		c.JoinAttempts = network.DefaultJoinAttempts
	}
	if c.ProbeAddr == "" {
		addr, err := network.ProbeAddrFromURL(c.ImageURLs[0])
		if err != nil {
			return fmt.Errorf("derive probe address: %w", err)
		}
		c.ProbeAddr = addr
	}

	return nil
}

// Masked returns a copy safe to log.
func (c Config) Masked() Config {
	if c.WiFiPassword != "" {
		c.WiFiPassword = "*****"
	}
	c.ImageURLs = append([]string(nil), c.ImageURLs...)
	return c
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings replaces a list if non-empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setSeconds sets a duration from a TOML value: an integer or float number
// of seconds, or a duration string such as "1m30s".
func (s *configSetter) setSeconds(flag string, value any, dst *time.Duration) error {
	if value == nil || s.changed[flag] {
		return nil
	}
	d, err := parseSeconds(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setSecondsFromString is setSeconds for environment variables.
func (s *configSetter) setSecondsFromString(flag, value string, dst *time.Duration) error {
	if value == "" {
		return nil
	}
	return s.setSeconds(flag, value, dst)
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// maxSeconds is the largest whole number of seconds a time.Duration holds.
const maxSeconds = math.MaxInt64 / int64(time.Second)

func parseSeconds(value any) (time.Duration, error) {
	switch v := value.(type) {
	case int64:
		return wholeSeconds(v)
	case int:
		return wholeSeconds(int64(v))
	case float64:
		return fractionalSeconds(v)
	case string:
		v = strings.TrimSpace(v)
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return fractionalSeconds(f)
		}
		return time.ParseDuration(v)
	default:
		return 0, fmt.Errorf("unsupported value %v (%T)", value, value)
	}
}

func wholeSeconds(v int64) (time.Duration, error) {
	if v > maxSeconds || v < -maxSeconds {
		return 0, fmt.Errorf("%d seconds is out of range", v)
	}
	return time.Duration(v) * time.Second, nil
}

func fractionalSeconds(v float64) (time.Duration, error) {
	ns := v * float64(time.Second)
	if math.IsNaN(ns) || math.Abs(ns) >= math.MaxInt64 {
		return 0, fmt.Errorf("%v seconds is out of range", v)
	}
	return time.Duration(ns), nil
}
