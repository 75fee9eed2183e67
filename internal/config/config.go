// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates the planetchat configuration.
//
// Configuration lives in ~/.planetchat/config.toml. A missing file means
// defaults; a malformed file is an error at startup. A handful of
// environment variables override the file for scripting and tests.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete planetchat configuration.
type Config struct {
	Backend BackendConfig `toml:"backend"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Watch   WatchConfig   `toml:"watch"`
}

// BackendConfig points at the document Q&A service.
type BackendConfig struct {
	// BaseURL is the root of the backend API.
	BaseURL string `toml:"base_url"`
	// TimeoutSeconds bounds each request. Uploads of large PDFs and
	// answer generation both take a while, so the default is generous.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// StorageConfig controls where session state is persisted.
type StorageConfig struct {
	// Backend selects the persistence implementation: "file" or "sqlite".
	Backend string `toml:"backend"`
	// Dir is the state directory. Empty means ~/.planetchat/state.
	Dir string `toml:"dir"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// RevealIntervalMs is the pause between revealed answer characters.
	RevealIntervalMs int `toml:"reveal_interval_ms"`
	// GlamourStyle is the markdown style: "auto", "dark", "light", "notty".
	GlamourStyle string `toml:"glamour_style"`
}

// WatchConfig controls the optional drop-folder auto-upload.
type WatchConfig struct {
	// Dir is the watched directory. Empty disables the watcher.
	Dir string `toml:"dir"`
	// DebounceSeconds is the minimum gap between auto-uploads, so a file
	// still being copied in does not trigger repeated uploads.
	DebounceSeconds int `toml:"debounce_seconds"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:        "http://127.0.0.1:8000",
			TimeoutSeconds: 120,
		},
		Storage: StorageConfig{
			Backend: "file",
		},
		UI: UIConfig{
			RevealIntervalMs: 20,
			GlamourStyle:     "auto",
		},
		Watch: WatchConfig{
			DebounceSeconds: 2,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".planetchat", "config.toml")
	}
	return filepath.Join(home, ".planetchat", "config.toml")
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides, and validates the result. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv layers environment overrides on top of the file.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("PLANETCHAT_BASE_URL")); v != "" {
		c.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("PLANETCHAT_STORAGE")); v != "" {
		c.Storage.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("PLANETCHAT_STATE_DIR")); v != "" {
		c.Storage.Dir = v
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q is not a valid URL", c.Backend.BaseURL)
	}
	if c.Backend.TimeoutSeconds <= 0 {
		return fmt.Errorf("backend.timeout_seconds must be positive, got %d", c.Backend.TimeoutSeconds)
	}

	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("storage.backend must be \"file\" or \"sqlite\", got %q", c.Storage.Backend)
	}

	if c.UI.RevealIntervalMs <= 0 {
		return fmt.Errorf("ui.reveal_interval_ms must be positive, got %d", c.UI.RevealIntervalMs)
	}
	switch c.UI.GlamourStyle {
	case "", "auto", "dark", "light", "notty", "ascii", "pink", "dracula":
	default:
		return fmt.Errorf("ui.glamour_style %q is not a known style", c.UI.GlamourStyle)
	}

	if c.Watch.DebounceSeconds < 0 {
		return fmt.Errorf("watch.debounce_seconds must not be negative, got %d", c.Watch.DebounceSeconds)
	}
	return nil
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Timeout returns the backend request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// RevealInterval returns the reveal tick interval as a duration.
func (c *Config) RevealInterval() time.Duration {
	return time.Duration(c.UI.RevealIntervalMs) * time.Millisecond
}

// StateDir returns the resolved state directory.
func (c *Config) StateDir() string {
	if c.Storage.Dir != "" {
		return c.Storage.Dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".planetchat", "state")
	}
	return filepath.Join(home, ".planetchat", "state")
}

// WatchEnabled reports whether the drop-folder watcher is configured.
func (c *Config) WatchEnabled() bool {
	return strings.TrimSpace(c.Watch.Dir) != ""
}

// Debounce returns the watcher debounce gap as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceSeconds) * time.Second
}
