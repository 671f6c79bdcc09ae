package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	falseVal := false

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				WiFiSSID:     "home",
				WiFiPassword: "pw",
				ImageURLs:    []string{"http://a/1.bmp", "http://a/2.bmp"},
				CycleTime:    int64(5),
				HTTPTimeout:  "45s",
				GCAfterCycle: &falseVal,
				Display:      FileDisplay{Backend: "headless", BitDepth: 6, Scale: 4},
				Network:      FileNetwork{JoinAttempts: 9, JoinBackoff: 0.25},
			},
			changed: map[string]bool{},
			initial: Config{GCAfterCycle: true},
			expected: Config{
				WiFiSSID:     "home",
				WiFiPassword: "pw",
				ImageURLs:    []string{"http://a/1.bmp", "http://a/2.bmp"},
				CycleTime:    5 * time.Second,
				HTTPTimeout:  45 * time.Second,
				GCAfterCycle: false,
				Display:      "headless",
				BitDepth:     6,
				Scale:        4,
				JoinAttempts: 9,
				JoinBackoff:  250 * time.Millisecond,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				WiFiSSID:  "file-ssid",
				ImageURLs: []string{"http://file/1.bmp"},
				CycleTime: int64(30),
			},
			changed: map[string]bool{"wifi-ssid": true, "cycle-time": true},
			initial: Config{
				WiFiSSID:  "flag-ssid",
				CycleTime: 3 * time.Second,
			},
			expected: Config{
				WiFiSSID:  "flag-ssid",
				ImageURLs: []string{"http://file/1.bmp"},
				CycleTime: 3 * time.Second,
			},
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{CycleTime: "forever"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
		{
			name:       "empty values leave defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    Config{CycleTime: 10 * time.Second, BitDepth: 4},
			expected:   Config{CycleTime: 10 * time.Second, BitDepth: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyFileConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyFileConfig() unexpected error: %v", err)
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
			if cfg.GCAfterCycle != tt.expected.GCAfterCycle {
				t.Errorf("GCAfterCycle = %v, want %v", cfg.GCAfterCycle, tt.expected.GCAfterCycle)
			}
			if cfg.Display != tt.expected.Display {
				t.Errorf("Display = %v, want %v", cfg.Display, tt.expected.Display)
			}
			if cfg.BitDepth != tt.expected.BitDepth {
				t.Errorf("BitDepth = %v, want %v", cfg.BitDepth, tt.expected.BitDepth)
			}
			if cfg.Scale != tt.expected.Scale {
				t.Errorf("Scale = %v, want %v", cfg.Scale, tt.expected.Scale)
			}
			if cfg.JoinAttempts != tt.expected.JoinAttempts {
				t.Errorf("JoinAttempts = %v, want %v", cfg.JoinAttempts, tt.expected.JoinAttempts)
			}
			if cfg.JoinBackoff != tt.expected.JoinBackoff {
				t.Errorf("JoinBackoff = %v, want %v", cfg.JoinBackoff, tt.expected.JoinBackoff)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "settings.toml")

	tomlContent := `
WIFI_SSID = "home"
WIFI_PASSWORD = "secret"
image_urls = [
  "https://example.com/a.bmp",
  "https://example.com/b.bmp",
]
url_file = "urls.txt"
cycle_time = 15
http_timeout = 2.5
gc_after_cycle = false

[display]
backend = "headless"
bit_depth = 5

[network]
probe_addr = "example.com:443"
join_backoff = "750ms"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.WiFiSSID != "home" || fc.WiFiPassword != "secret" {
		t.Errorf("credentials = %q/%q", fc.WiFiSSID, fc.WiFiPassword)
	}
	if len(fc.ImageURLs) != 2 {
		t.Errorf("ImageURLs = %v, want 2 entries", fc.ImageURLs)
	}
	if fc.URLFile != filepath.Join(tmpDir, "urls.txt") {
		t.Errorf("URLFile = %v, want it resolved next to the config", fc.URLFile)
	}
	if fc.Display.Backend != "headless" || fc.Display.BitDepth != 5 {
		t.Errorf("Display = %+v", fc.Display)
	}
	if fc.Network.ProbeAddr != "example.com:443" {
		t.Errorf("ProbeAddr = %v", fc.Network.ProbeAddr)
	}
	if fc.GCAfterCycle == nil || *fc.GCAfterCycle {
		t.Errorf("GCAfterCycle = %v, want false", fc.GCAfterCycle)
	}

	cfg := DefaultConfig()
	if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
		t.Fatalf("ApplyFileConfig() error = %v", err)
	}
	if cfg.CycleTime != 15*time.Second {
		t.Errorf("CycleTime = %v, want 15s", cfg.CycleTime)
	}
	if cfg.HTTPTimeout != 2500*time.Millisecond {
		t.Errorf("HTTPTimeout = %v, want 2.5s", cfg.HTTPTimeout)
	}
	if cfg.JoinBackoff != 750*time.Millisecond {
		t.Errorf("JoinBackoff = %v, want 750ms", cfg.JoinBackoff)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/settings.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
WIFI_SSID = "home"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.HasSuffix(path, DefaultConfigName) {
		t.Errorf("DefaultConfigPath() = %v, should end with %s", path, DefaultConfigName)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}

func TestLoadURLFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "urls.txt")
	content := "# playlist\nhttp://a/1.bmp\n\n  http://a/2.bmp  \n#http://a/3.bmp\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	urls, err := LoadURLFile(path)
	if err != nil {
		t.Fatalf("LoadURLFile() error = %v", err)
	}
	if strings.Join(urls, ",") != "http://a/1.bmp,http://a/2.bmp" {
		t.Errorf("urls = %v", urls)
	}

	cfg := Config{URLFile: path, ImageURLs: []string{"http://flag/x.bmp"}}
	if err := ApplyURLFile(&cfg, map[string]bool{"image-url": true}); err != nil {
		t.Fatal(err)
	}
	if cfg.ImageURLs[0] != "http://flag/x.bmp" {
		t.Errorf("flag urls were replaced: %v", cfg.ImageURLs)
	}
	if err := ApplyURLFile(&cfg, map[string]bool{}); err != nil {
		t.Fatal(err)
	}
	if len(cfg.ImageURLs) != 2 {
		t.Errorf("ImageURLs = %v, want file contents", cfg.ImageURLs)
	}

	cfg.URLFile = filepath.Join(tmpDir, "missing.txt")
	if err := ApplyURLFile(&cfg, map[string]bool{}); err == nil {
		t.Error("ApplyURLFile() expected error for missing file")
	}
}
