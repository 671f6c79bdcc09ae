package cliconfig

import (
	"strings"
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"WIFI_SSID":                  "env-ssid",
				"WIFI_PASSWORD":              "env-pw",
				"MATRIXSLIDE_IMAGE_URLS":     "http://a/1.bmp, http://a/2.bmp",
				"MATRIXSLIDE_CYCLE_TIME":     "20",
				"MATRIXSLIDE_HTTP_TIMEOUT":   "1m",
				"MATRIXSLIDE_BIT_DEPTH":      "3",
				"MATRIXSLIDE_DISPLAY":        "headless",
				"MATRIXSLIDE_GC_AFTER_CYCLE": "false",
			},
			changed: map[string]bool{},
			initial: Config{GCAfterCycle: true},
			expected: Config{
				WiFiSSID:     "env-ssid",
				WiFiPassword: "env-pw",
				ImageURLs:    []string{"http://a/1.bmp", "http://a/2.bmp"},
				CycleTime:    20 * time.Second,
				HTTPTimeout:  time.Minute,
				BitDepth:     3,
				Display:      "headless",
				GCAfterCycle: false,
			},
		},
		{
			name: "prefixed credentials win over bare ones",
			envVars: map[string]string{
				"WIFI_SSID":             "bare",
				"MATRIXSLIDE_WIFI_SSID": "prefixed",
			},
			changed:  map[string]bool{},
			expected: Config{WiFiSSID: "prefixed"},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"WIFI_SSID":              "env-ssid",
				"MATRIXSLIDE_CYCLE_TIME": "20",
			},
			changed: map[string]bool{"wifi-ssid": true},
			initial: Config{WiFiSSID: "flag-ssid"},
			expected: Config{
				WiFiSSID:  "flag-ssid",
				CycleTime: 20 * time.Second,
			},
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"MATRIXSLIDE_CYCLE_TIME": "not-a-duration",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "returns error for invalid int",
			envVars: map[string]string{
				"MATRIXSLIDE_BIT_DEPTH": "deep",
			},
			changed: map[string]bool{},
			wantErr: true,
		},
		{
			name: "handles bool '1' as true",
			envVars: map[string]string{
				"MATRIXSLIDE_GC_AFTER_CYCLE": "1",
			},
			changed:  map[string]bool{},
			expected: Config{GCAfterCycle: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"WIFI_SSID", "WIFI_PASSWORD"} {
				if _, ok := tt.envVars[k]; !ok {
					t.Setenv(k, "")
				}
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyEnvConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyEnvConfig() unexpected error: %v", err)
				return
			}
			if tt.wantErr {
				return
			}

			if cfg.WiFiSSID != tt.expected.WiFiSSID {
				t.Errorf("WiFiSSID = %v, want %v", cfg.WiFiSSID, tt.expected.WiFiSSID)
			}
			if cfg.WiFiPassword != tt.expected.WiFiPassword {
				t.Errorf("WiFiPassword = %v, want %v", cfg.WiFiPassword, tt.expected.WiFiPassword)
			}
			if strings.Join(cfg.ImageURLs, ",") != strings.Join(tt.expected.ImageURLs, ",") {
				t.Errorf("ImageURLs = %v, want %v", cfg.ImageURLs, tt.expected.ImageURLs)
			}
			if cfg.CycleTime != tt.expected.CycleTime {
				t.Errorf("CycleTime = %v, want %v", cfg.CycleTime, tt.expected.CycleTime)
			}
			if cfg.HTTPTimeout != tt.expected.HTTPTimeout {
				t.Errorf("HTTPTimeout = %v, want %v", cfg.HTTPTimeout, tt.expected.HTTPTimeout)
			}
			if cfg.BitDepth != tt.expected.BitDepth {
				t.Errorf("BitDepth = %v, want %v", cfg.BitDepth, tt.expected.BitDepth)
			}
			if cfg.Display != tt.expected.Display {
				t.Errorf("Display = %v, want %v", cfg.Display, tt.expected.Display)
			}
			if cfg.GCAfterCycle != tt.expected.GCAfterCycle {
				t.Errorf("GCAfterCycle = %v, want %v", cfg.GCAfterCycle, tt.expected.GCAfterCycle)
			}
		})
	}
}

// Integration test: precedence order (CLI > Env > File)
func TestConfigPrecedence(t *testing.T) {
	fileConf := FileConfig{
		WiFiSSID:     "file-ssid",
		WiFiPassword: "file-pw",
		CycleTime:    int64(30),
		Display:      FileDisplay{BitDepth: 6},
	}

	t.Setenv("WIFI_SSID", "env-ssid")
	t.Setenv("WIFI_PASSWORD", "env-pw")
	t.Setenv("MATRIXSLIDE_CYCLE_TIME", "12")

	changed := map[string]bool{
		"wifi-ssid": true,
	}

	cfg := DefaultConfig()
	cfg.WiFiSSID = "cli-ssid"

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.WiFiSSID != "cli-ssid" {
		t.Errorf("WiFiSSID = %v, want cli-ssid (CLI should win)", cfg.WiFiSSID)
	}
	if cfg.WiFiPassword != "env-pw" {
		t.Errorf("WiFiPassword = %v, want env-pw (env should override file)", cfg.WiFiPassword)
	}
	if cfg.CycleTime != 12*time.Second {
		t.Errorf("CycleTime = %v, want 12s (env should override file)", cfg.CycleTime)
	}
	if cfg.BitDepth != 6 {
		t.Errorf("BitDepth = %v, want 6 (file should set)", cfg.BitDepth)
	}
}
