package cliconfig

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadURLFile reads one image URL per line. Blank lines and lines starting
// with '#' are skipped.
func LoadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return urls, nil
}

// ApplyURLFile replaces cfg.ImageURLs with the contents of cfg.URLFile,
// unless URLs were given on the command line.
func ApplyURLFile(cfg *Config, changed map[string]bool) error {
	if cfg.URLFile == "" || changed["image-url"] {
		return nil
	}
	urls, err := LoadURLFile(cfg.URLFile)
	if err != nil {
		return fmt.Errorf("load url file: %w", err)
	}
	cfg.ImageURLs = urls
	return nil
}
