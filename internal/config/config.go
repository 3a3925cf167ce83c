package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete resdash configuration
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Search  SearchConfig  `mapstructure:"search"`
	TUI     TUIConfig     `mapstructure:"tui"`
	View    ViewConfig    `mapstructure:"view"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig controls where resource snapshots are read from
type DataConfig struct {
	// Path is the snapshot file (.json, .yaml/.yml or .msgpack/.mpk).
	// When empty the built-in sample records are shown.
	// Supports ~ for home directory expansion.
	Path string `mapstructure:"path"`
	// Watch reloads the snapshot whenever the file changes (default: false)
	Watch bool `mapstructure:"watch"`
}

// SearchConfig controls search behavior
type SearchConfig struct {
	// DebounceMs is the quiet window after the last keystroke before a typed
	// search term is applied (default: 300, 0 applies immediately)
	DebounceMs int `mapstructure:"debounce_ms"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme for the TUI (default: "default")
	// Options: "default", "nord", "dracula", "solarized-light", or any theme
	// file in the themes directory
	Theme string `mapstructure:"theme"`
	// DateFormat is a Go time layout for timestamp cells
	// (default: "Jan 2, 2006, 3:04:05 PM")
	DateFormat string `mapstructure:"date_format"`
}

// ViewConfig controls view links
type ViewConfig struct {
	// BaseURL is the address that view link queries are appended to
	// (default: "resdash://resources")
	BaseURL string `mapstructure:"base_url"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Defaults shared with other packages that cannot import config.
const (
	DefaultBaseURL    = "resdash://resources"
	DefaultDateFormat = "Jan 2, 2006, 3:04:05 PM"
	DefaultDebounceMs = 300
)

// ResolvePath returns the snapshot path with ~ expanded. Relative paths are
// resolved against baseDir. An empty Path stays empty.
func (d *DataConfig) ResolvePath(baseDir string) string {
	if d.Path == "" {
		return ""
	}

	path := d.Path

	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	return path
}

// Debounce returns the search debounce window as a time.Duration
func (c *SearchConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path:  "", // Empty means use the built-in sample records
			Watch: false,
		},
		Search: SearchConfig{
			DebounceMs: DefaultDebounceMs,
		},
		TUI: TUIConfig{
			Theme:      "default",
			DateFormat: DefaultDateFormat,
		},
		View: ViewConfig{
			BaseURL: DefaultBaseURL,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Data defaults
	viper.SetDefault("data.path", defaults.Data.Path)
	viper.SetDefault("data.watch", defaults.Data.Watch)

	// Search defaults
	viper.SetDefault("search.debounce_ms", defaults.Search.DebounceMs)

	// TUI defaults
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.date_format", defaults.TUI.DateFormat)

	// View defaults
	viper.SetDefault("view.base_url", defaults.View.BaseURL)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "resdash")
	}
	// Fall back to ~/.config/resdash
	home, err := os.UserHomeDir()
	if err != nil {
		return ".resdash"
	}
	return filepath.Join(home, ".config", "resdash")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogDir returns the directory debug logs are written to
func LogDir() string {
	return filepath.Join(ConfigDir(), "logs")
}

// ThemesDir returns the directory custom theme files are discovered in
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}
