package config

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/pact-ai/resdash/internal/resource"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "search.debounce_ms")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// themeNameRegex validates theme names, which double as theme file names
var themeNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// Bounds for search.debounce_ms
const (
	MinDebounceMs = 0
	MaxDebounceMs = 5000
)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateData()...)
	errors = append(errors, c.validateSearch()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateView()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateData validates the DataConfig
func (c *Config) validateData() []ValidationError {
	var errors []ValidationError

	path := c.Data.Path
	if path == "" {
		if c.Data.Watch {
			errors = append(errors, ValidationError{
				Field:   "data.watch",
				Value:   c.Data.Watch,
				Message: "requires data.path to be set",
			})
		}
		return errors
	}

	// Check for null bytes which are invalid in paths
	if strings.ContainsRune(path, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "data.path",
			Value:   path,
			Message: "contains invalid null character",
		})
		return errors
	}

	if _, err := resource.FormatFromPath(path); err != nil {
		errors = append(errors, ValidationError{
			Field:   "data.path",
			Value:   path,
			Message: "must end in .json, .yaml, .yml, .msgpack or .mpk",
		})
	}

	return errors
}

// validateSearch validates the SearchConfig
func (c *Config) validateSearch() []ValidationError {
	var errors []ValidationError

	if c.Search.DebounceMs < MinDebounceMs {
		errors = append(errors, ValidationError{
			Field:   "search.debounce_ms",
			Value:   c.Search.DebounceMs,
			Message: "must be non-negative",
		})
	}
	if c.Search.DebounceMs > MaxDebounceMs {
		errors = append(errors, ValidationError{
			Field:   "search.debounce_ms",
			Value:   c.Search.DebounceMs,
			Message: fmt.Sprintf("exceeds maximum of %dms", MaxDebounceMs),
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	// Empty theme means default. Whether the theme exists is checked once
	// custom themes have been discovered.
	if c.TUI.Theme != "" && !themeNameRegex.MatchString(c.TUI.Theme) {
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: "must start with a letter and contain only letters, numbers, hyphens, and underscores",
		})
	}

	// A layout with no recognised elements formats every time identically.
	if c.TUI.DateFormat != "" && !isTimeLayout(c.TUI.DateFormat) {
		errors = append(errors, ValidationError{
			Field:   "tui.date_format",
			Value:   c.TUI.DateFormat,
			Message: "must be a Go time layout such as \"2006-01-02 15:04\"",
		})
	}

	return errors
}

func isTimeLayout(layout string) bool {
	a := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC).Format(layout)
	b := time.Date(2009, 10, 11, 16, 17, 18, 0, time.UTC).Format(layout)
	return a != b
}

// validateView validates the ViewConfig
func (c *Config) validateView() []ValidationError {
	var errors []ValidationError

	base := c.View.BaseURL
	if base == "" {
		errors = append(errors, ValidationError{
			Field:   "view.base_url",
			Value:   base,
			Message: "must not be empty",
		})
		return errors
	}

	u, err := url.Parse(base)
	switch {
	case err != nil:
		errors = append(errors, ValidationError{
			Field:   "view.base_url",
			Value:   base,
			Message: "must be a valid URL",
		})
	case u.Scheme == "":
		errors = append(errors, ValidationError{
			Field:   "view.base_url",
			Value:   base,
			Message: "must include a scheme (e.g., resdash://resources)",
		})
	case u.RawQuery != "" || u.Fragment != "" || strings.ContainsAny(base, "?#"):
		errors = append(errors, ValidationError{
			Field:   "view.base_url",
			Value:   base,
			Message: "must not contain a query or fragment",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
