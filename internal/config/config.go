// Package config loads optional faqbot settings from a TOML file.
//
// Example ~/.faqbot/config.toml:
//
//	threshold = 0.25
//	top_k = 5
//	sources = ["~/faq.txt", "https://example.com/help"]
//	defaults = false
//	typing_delay = "250ms"
//
// Every key is optional; command-line flags take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file name inside the config directory
const FileName = "config.toml"

// File mirrors the TOML config file. Pointer fields distinguish "unset" from zero.
type File struct {
	Threshold   *float64 `toml:"threshold,omitempty"`
	TopK        *int     `toml:"top_k,omitempty"`
	Sources     []string `toml:"sources,omitempty"`
	Selector    string   `toml:"selector,omitempty"`
	Defaults    *bool    `toml:"defaults,omitempty"`
	TypingDelay string   `toml:"typing_delay,omitempty"`
}

// DefaultPath returns ~/.faqbot/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".faqbot", FileName), nil
}

// Load reads and validates the config file at path.
// A missing file yields an empty File and no error.
func Load(path string) (File, error) {
	var f File

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	if err := toml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	if err := f.Validate(); err != nil {
		return File{}, fmt.Errorf("invalid config %q: %w", path, err)
	}

	f.Sources = expandHome(f.Sources)
	return f, nil
}

// Save writes f to path as TOML, creating the parent directory if needed.
func Save(path string, f File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config %q: %w", path, err)
	}
	return nil
}

// Validate checks value ranges.
func (f File) Validate() error {
	if f.Threshold != nil && (*f.Threshold <= 0 || *f.Threshold > 1) {
		return fmt.Errorf("threshold must be in (0, 1], got %v", *f.Threshold)
	}
	if f.TopK != nil && *f.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1, got %d", *f.TopK)
	}
	if _, err := f.Delay(); err != nil {
		return err
	}
	return nil
}

// Delay parses TypingDelay; an empty value yields 0.
func (f File) Delay() (time.Duration, error) {
	if f.TypingDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.TypingDelay)
	if err != nil {
		return 0, fmt.Errorf("typing_delay: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("typing_delay must not be negative, got %s", f.TypingDelay)
	}
	return d, nil
}

// expandHome replaces a leading "~/" in file sources with the home directory
func expandHome(sources []string) []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return sources
	}

	out := make([]string, len(sources))
	for i, s := range sources {
		if strings.HasPrefix(s, "~/") {
			s = filepath.Join(home, s[2:])
		}
		out[i] = s
	}
	return out
}
