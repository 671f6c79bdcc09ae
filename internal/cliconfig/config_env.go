package cliconfig

import (
	"os"
	"strings"
)

// EnvPrefix prefixes every matrixslide environment variable. The WiFi
// credentials are also read unprefixed, as CircuitPython's os.getenv does.
const EnvPrefix = "MATRIXSLIDE_"

func getenv(name string) string {
	return os.Getenv(EnvPrefix + name)
}

// ApplyEnvConfig applies environment variables to cfg, skipping any value
// whose flag was set on the command line.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	ssid := getenv("WIFI_SSID")
	if ssid == "" {
		ssid = os.Getenv("WIFI_SSID")
	}
	password := getenv("WIFI_PASSWORD")
	if password == "" {
		password = os.Getenv("WIFI_PASSWORD")
	}
	s.setString("wifi-ssid", ssid, &cfg.WiFiSSID)
	s.setString("wifi-password", password, &cfg.WiFiPassword)

	if v := getenv("IMAGE_URLS"); v != "" {
		s.setStrings("image-url", splitList(v), &cfg.ImageURLs)
	}
	s.setString("url-file", getenv("URL_FILE"), &cfg.URLFile)

	if err := s.setSecondsFromString("cycle-time", getenv("CYCLE_TIME"), &cfg.CycleTime); err != nil {
		return err
	}
	if err := s.setSecondsFromString("timeout", getenv("HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setSecondsFromString("splash", getenv("SPLASH_DURATION"), &cfg.SplashDuration); err != nil {
		return err
	}
	s.setBoolFromString("gc", getenv("GC_AFTER_CYCLE"), &cfg.GCAfterCycle)

	s.setString("display", getenv("DISPLAY"), &cfg.Display)
	if err := s.setIntFromString("width", getenv("WIDTH"), &cfg.Width); err != nil {
		return err
	}
	if err := s.setIntFromString("height", getenv("HEIGHT"), &cfg.Height); err != nil {
		return err
	}
	if err := s.setIntFromString("bit-depth", getenv("BIT_DEPTH"), &cfg.BitDepth); err != nil {
		return err
	}
	if err := s.setIntFromString("scale", getenv("SCALE"), &cfg.Scale); err != nil {
		return err
	}

	s.setString("probe-addr", getenv("PROBE_ADDR"), &cfg.ProbeAddr)
	if err := s.setIntFromString("join-attempts", getenv("JOIN_ATTEMPTS"), &cfg.JoinAttempts); err != nil {
		return err
	}
	if err := s.setSecondsFromString("join-backoff", getenv("JOIN_BACKOFF"), &cfg.JoinBackoff); err != nil {
		return err
	}

	return nil
}

// splitList splits a comma or whitespace separated list, dropping blanks.
func splitList(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
}
