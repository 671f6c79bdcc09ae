package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultConfigName is the CircuitPython settings file name.
const DefaultConfigName = "settings.toml"

// FileConfig is the layout of settings.toml. Time values are numbers of
// seconds (integer or float) or Go duration strings.
type FileConfig struct {
	WiFiSSID       string   `toml:"WIFI_SSID"`
	WiFiPassword   string   `toml:"WIFI_PASSWORD"`
	ImageURLs      []string `toml:"image_urls"`
	URLFile        string   `toml:"url_file"`
	CycleTime      any      `toml:"cycle_time"`
	HTTPTimeout    any      `toml:"http_timeout"`
	SplashDuration any      `toml:"splash_duration"`
	GCAfterCycle   *bool    `toml:"gc_after_cycle"`

	Display FileDisplay `toml:"display"`
	Network FileNetwork `toml:"network"`
}

// FileDisplay is the [display] table.
type FileDisplay struct {
	Backend  string `toml:"backend"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	BitDepth int    `toml:"bit_depth"`
	Scale    int    `toml:"scale"`
}

// FileNetwork is the [network] table.
type FileNetwork struct {
	ProbeAddr    string `toml:"probe_addr"`
	JoinAttempts int    `toml:"join_attempts"`
	JoinBackoff  any    `toml:"join_backoff"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
// A relative url_file is resolved against the file's directory.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	if fc.URLFile != "" && !filepath.IsAbs(fc.URLFile) {
		fc.URLFile = filepath.Join(filepath.Dir(path), fc.URLFile)
	}
	return fc, nil
}

// DefaultConfigPath returns ./settings.toml when it exists, otherwise
// ~/.matrixslide/settings.toml if the home directory is accessible.
func DefaultConfigPath() string {
	if FileExists(DefaultConfigName) {
		return DefaultConfigName
	}
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".matrixslide", DefaultConfigName)
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("wifi-ssid", fc.WiFiSSID, &cfg.WiFiSSID)
	s.setString("wifi-password", fc.WiFiPassword, &cfg.WiFiPassword)
	s.setStrings("image-url", fc.ImageURLs, &cfg.ImageURLs)
	s.setString("url-file", fc.URLFile, &cfg.URLFile)

	if err := s.setSeconds("cycle-time", fc.CycleTime, &cfg.CycleTime); err != nil {
		return err
	}
	if err := s.setSeconds("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setSeconds("splash", fc.SplashDuration, &cfg.SplashDuration); err != nil {
		return err
	}
	s.setBool("gc", fc.GCAfterCycle, &cfg.GCAfterCycle)

	s.setString("display", fc.Display.Backend, &cfg.Display)
	s.setInt("width", fc.Display.Width, &cfg.Width)
	s.setInt("height", fc.Display.Height, &cfg.Height)
	s.setInt("bit-depth", fc.Display.BitDepth, &cfg.BitDepth)
	s.setInt("scale", fc.Display.Scale, &cfg.Scale)

	s.setString("probe-addr", fc.Network.ProbeAddr, &cfg.ProbeAddr)
	s.setInt("join-attempts", fc.Network.JoinAttempts, &cfg.JoinAttempts)
	if err := s.setSeconds("join-backoff", fc.Network.JoinBackoff, &cfg.JoinBackoff); err != nil {
		return err
	}

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
