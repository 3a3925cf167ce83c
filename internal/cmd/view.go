package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pact-ai/resdash/internal/config"
	"github.com/pact-ai/resdash/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive resource dashboard.

Data comes from --data (or data.path in the config file). Without either,
a small built-in sample is shown. Pass a view link with --link to start
from a shared search and filter selection.

Keys:
  /        search patient ID       f   filter by status and type
  s        cycle sort on column    h/l move between columns
  r        reset everything        ?   help
  y        quit and print link     q   quit

Examples:
  resdash view --data records.json
  resdash view --data records.yaml --watch
  resdash view --link 'resdash://resources?status=FAILED'`,
	RunE: runView,
}

func init() {
	addViewFlags(viewCmd)
	rootCmd.AddCommand(viewCmd)
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("data", "", "snapshot file (.json, .yaml, .msgpack); overrides data.path")
	cmd.Flags().String("link", "", "view link to open")
	cmd.Flags().Bool("watch", false, "reload the snapshot when the file changes; overrides data.watch")
}

// viewSettings are the resolved inputs for one run.
type viewSettings struct {
	dataPath string
	link     string
	watch    bool
}

// resolveViewSettings merges flags over config values.
func resolveViewSettings(cmd *cobra.Command, cfg *config.Config) (viewSettings, error) {
	s := viewSettings{watch: cfg.Data.Watch}

	cwd, err := os.Getwd()
	if err != nil {
		return s, fmt.Errorf("failed to get current directory: %w", err)
	}
	s.dataPath = cfg.Data.ResolvePath(cwd)

	if f := cmd.Flags().Lookup("data"); f != nil && f.Changed {
		d := config.DataConfig{Path: f.Value.String()}
		s.dataPath = d.ResolvePath(cwd)
	}
	if f := cmd.Flags().Lookup("watch"); f != nil && f.Changed {
		s.watch, _ = cmd.Flags().GetBool("watch")
	}
	if f := cmd.Flags().Lookup("link"); f != nil {
		s.link = f.Value.String()
	}

	if s.watch && s.dataPath == "" {
		return s, fmt.Errorf("--watch requires a data file (--data or data.path)")
	}
	return s, nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	settings, err := resolveViewSettings(cmd, cfg)
	if err != nil {
		return err
	}

	logger := CreateLogger(cfg)
	defer func() { _ = logger.Close() }()

	applyTheme(cfg.TUI.Theme, logger)

	snap, err := loadSnapshot(settings.dataPath, logger)
	if err != nil {
		return err
	}

	store, addr := openView(cfg.View.BaseURL, settings.link)
	logger.Info("dashboard starting", "link", addr.String(), "records", snap.Len(), "watch", settings.watch)

	opts := tui.Options{
		Snapshot:    snap,
		Store:       store,
		Address:     addr,
		SearchDelay: cfg.Search.Debounce(),
		DateLayout:  cfg.TUI.DateFormat,
		Logger:      logger,
	}
	if settings.watch {
		opts.WatchPath = settings.dataPath
	}

	result, err := tui.New(opts).Run()
	if err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	if result.Yanked {
		fmt.Fprintln(cmd.OutOrStdout(), result.Link)
	}
	return nil
}
