package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pact-ai/resdash/internal/config"
	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/derive"
	"github.com/pact-ai/resdash/internal/errors"
	"github.com/pact-ai/resdash/internal/logging"
	"github.com/pact-ai/resdash/internal/resource"
	"github.com/pact-ai/resdash/internal/tui/styles"
	"github.com/pact-ai/resdash/internal/urlstate"
)

// loadConfig loads and validates the configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates a logger for one run, writing to the config log
// directory with rotation. Returns a NopLogger if logging is disabled or
// the log file cannot be opened.
func CreateLogger(cfg *config.Config) *logging.Logger {
	if !cfg.Logging.Enabled {
		return logging.NopLogger()
	}

	rotationConfig := logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}
	logger, err := logging.NewLogger(config.LogDir(), cfg.Logging.Level, rotationConfig)
	if err != nil {
		// The dashboard owns the terminal, so this is the only place a
		// logging failure can be reported.
		fmt.Fprintf(os.Stderr, "Warning: debug logging disabled: %v\n", err)
		return logging.NopLogger()
	}
	return logger.WithSession(logging.NewSessionID())
}

// applyTheme discovers custom themes and activates the configured one,
// falling back to the default theme.
func applyTheme(name string, logger *logging.Logger) {
	loaded, errs := styles.DiscoverCustomThemes(config.ThemesDir())
	for _, err := range errs {
		logger.Warn("skipping custom theme", "error", err)
	}
	if len(loaded) > 0 {
		logger.Debug("custom themes loaded", "themes", loaded)
	}

	if name == "" {
		name = string(styles.ThemeDefault)
	}
	if !styles.IsValidTheme(name) {
		logger.Warn("unknown theme, using default", "theme", name)
		name = string(styles.ThemeDefault)
	}
	styles.SetActiveTheme(styles.ThemeName(name))
}

// loadSnapshot reads the snapshot at path, or the built-in sample records
// when path is empty.
func loadSnapshot(path string, logger *logging.Logger) (*resource.Snapshot, error) {
	if path == "" {
		logger.Info("no data file configured, showing sample records")
		return resource.SampleSnapshot(), nil
	}
	snap, err := resource.LoadFile(path)
	if err != nil {
		logger.Error("snapshot load failed", "path", path, "error", err)
		return nil, err
	}
	logger.Info("snapshot loaded", "path", path, "records", snap.Len())
	return snap, nil
}

// openView builds the criteria store and address for a run. A non-empty
// link is opened as if followed: its filters replace the defaults.
func openView(base, link string) (*criteria.Store, *urlstate.Address) {
	store := criteria.NewStore(criteria.Default())
	addr := urlstate.NewAddress(base, "")
	if link != "" {
		urlstate.Open(store, addr, link)
	}
	return store, addr
}

// parseSortFlag parses "column[:asc|desc]". An empty value means no sort.
func parseSortFlag(value string) (*criteria.SortSpec, error) {
	if value == "" {
		return nil, nil
	}

	id, dir, hasDir := strings.Cut(value, ":")
	col, ok := derive.ColumnByID(strings.TrimSpace(id))
	if !ok {
		ids := make([]string, 0, len(derive.Columns()))
		for _, c := range derive.Columns() {
			ids = append(ids, c.ID)
		}
		return nil, errors.NewValidationError("unknown sort column; valid columns: " + strings.Join(ids, ", ")).
			WithField("sort").
			WithValue(id)
	}

	spec := &criteria.SortSpec{ColumnID: col.ID, Direction: criteria.Asc}
	if hasDir {
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "asc":
		case "desc":
			spec.Direction = criteria.Desc
		default:
			return nil, errors.NewValidationError("sort direction must be asc or desc").
				WithField("sort").
				WithValue(dir)
		}
	}
	return spec, nil
}
