// Package config provides configuration structures and utilities for jpnews:
// server address, database location, analyzer and markup choices.
package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "jpnews"

	// DefaultAddr matches the port the web frontend expects.
	DefaultAddr = ":8000"

	// DefaultDictionary is the kagome system dictionary.
	DefaultDictionary = "ipa"

	// DefaultMode is the kagome segmentation mode.
	DefaultMode = "normal"

	// DefaultFormat is the markup used when none is requested.
	DefaultFormat = "ruby"

	// DefaultRequestTimeout bounds one HTTP request, tokenizer call included.
	DefaultRequestTimeout = 10 * time.Second

	// DefaultConcurrency bounds batch annotation.
	DefaultConcurrency = 4
)

// Config holds all configuration options. It is populated from defaults,
// then the YAML file, then CLI flags.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// AllowedOrigins lists CORS origins; "*" allows any.
	AllowedOrigins []string

	// RequestTimeout bounds each HTTP request.
	RequestTimeout time.Duration

	// DBDir is the directory holding the SQLite database.
	// Defaults to the XDG data directory.
	DBDir string

	// Dictionary is "ipa" or "uni".
	Dictionary string

	// Mode is "normal", "search" or "extended".
	Mode string

	// Kanjidic2Path optionally points at kanjidic2.xml to widen the
	// fallback reading table.
	Kanjidic2Path string

	// Format is the default markup, "ruby" or "bracket".
	Format string

	// Concurrency bounds batch annotation.
	Concurrency int

	// Verbose enables debug logging.
	Verbose bool

	// LogLevel is used when Verbose is false.
	LogLevel string

	// LogJSON switches logs to JSON.
	LogJSON bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Addr:           DefaultAddr,
		AllowedOrigins: []string{"*"},
		RequestTimeout: DefaultRequestTimeout,
		DBDir:          XDGDataDir(),
		Dictionary:     DefaultDictionary,
		Mode:           DefaultMode,
		Format:         DefaultFormat,
		Concurrency:    DefaultConcurrency,
		LogLevel:       "info",
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	switch c.Dictionary {
	case "ipa", "uni":
	default:
		return ErrInvalidDictionary
	}
	switch c.Mode {
	case "normal", "search", "extended":
	default:
		return ErrInvalidMode
	}
	switch c.Format {
	case "ruby", "bracket":
	default:
		return ErrInvalidFormat
	}
	if c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.DBDir == "" {
		return ErrNoDBDir
	}
	return nil
}

// XDGDataDir returns the XDG data directory for jpnews
// (~/.local/share/jpnews on Linux).
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for jpnews
// (~/.config/jpnews on Linux).
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
