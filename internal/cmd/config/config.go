// Package config provides CLI commands for managing resdash configuration.
package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/pact-ai/resdash/internal/config"
	"github.com/pact-ai/resdash/internal/tui/styles"
)

// Wrapper functions for exec to allow testing
var execLookPath = exec.LookPath
var execCommand = exec.Command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify resdash configuration",
	Long: `View or modify resdash configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  resdash config set data.path ~/exports/records.json
  resdash config set search.debounce_ms 150
  resdash config set tui.theme nord

Valid keys:
  data.path            - Snapshot file (.json, .yaml, .yml, .msgpack, .mpk)
  data.watch           - Reload the snapshot when it changes (true/false)
  search.debounce_ms   - Delay before a typed search applies (0-5000)
  tui.theme            - Color theme (see 'resdash config theme list')
  tui.date_format      - Go time layout for timestamps
  view.base_url        - Base of view links
  logging.enabled      - Write a debug log (true/false)
  logging.level        - debug, info, warn, error
  logging.max_size_mb  - Log size before rotation
  logging.max_backups  - Rotated logs to keep`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/resdash/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in your editor",
	Long: `Open the config file in your preferred editor.

Uses $EDITOR environment variable, or falls back to common editors (vim, nano, vi).
If no config file exists, creates one with default values first.`,
	RunE: runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset [key]",
	Short: "Reset configuration to defaults",
	Long: `Reset configuration values to their defaults.

Without arguments, resets all configuration to defaults.
With a key argument, resets only that specific key.

Examples:
  resdash config reset                    # Reset all to defaults
  resdash config reset search.debounce_ms # Reset only search.debounce_ms`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
}

// Register adds all config-related commands to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

// keyTypes lists settable keys and how their values are parsed.
var keyTypes = map[string]string{
	"data.path":           "string",
	"data.watch":          "bool",
	"search.debounce_ms":  "int",
	"tui.theme":           "theme",
	"tui.date_format":     "string",
	"view.base_url":       "string",
	"logging.enabled":     "bool",
	"logging.level":       "string",
	"logging.max_size_mb": "int",
	"logging.max_backups": "int",
}

// defaultValues maps each settable key to its default.
func defaultValues() map[string]any {
	d := appconfig.Default()
	return map[string]any{
		"data.path":           d.Data.Path,
		"data.watch":          d.Data.Watch,
		"search.debounce_ms":  d.Search.DebounceMs,
		"tui.theme":           d.TUI.Theme,
		"tui.date_format":     d.TUI.DateFormat,
		"view.base_url":       d.View.BaseURL,
		"logging.enabled":     d.Logging.Enabled,
		"logging.level":       d.Logging.Level,
		"logging.max_size_mb": d.Logging.MaxSizeMB,
		"logging.max_backups": d.Logging.MaxBackups,
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintf(out, "Warning: %v\nShowing defaults.\n\n", err)
		cfg = appconfig.Default()
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	dataPath := cfg.Data.Path
	if dataPath == "" {
		dataPath = "(built-in sample)"
	}
	fmt.Fprintln(out, "data:")
	fmt.Fprintf(out, "  path: %s\n", dataPath)
	fmt.Fprintf(out, "  watch: %v\n", cfg.Data.Watch)

	fmt.Fprintln(out, "search:")
	fmt.Fprintf(out, "  debounce_ms: %d\n", cfg.Search.DebounceMs)

	fmt.Fprintln(out, "tui:")
	fmt.Fprintf(out, "  theme: %s\n", cfg.TUI.Theme)
	fmt.Fprintf(out, "  date_format: %s\n", cfg.TUI.DateFormat)

	fmt.Fprintln(out, "view:")
	fmt.Fprintf(out, "  base_url: %s\n", cfg.View.BaseURL)

	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)

	return nil
}

// parseValue converts value to the type key expects and checks it against
// the same rules Load applies.
func parseValue(key, value string) (any, error) {
	keyType, ok := keyTypes[key]
	if !ok {
		return nil, fmt.Errorf("unknown configuration key: %s\nRun 'resdash config set --help' to see valid keys", key)
	}

	var typedValue any
	switch keyType {
	case "string":
		typedValue = value
	case "theme":
		// Discover custom themes first
		_, _ = styles.DiscoverCustomThemes(appconfig.ThemesDir())
		if !styles.IsValidTheme(value) {
			valid := append(styles.BuiltinThemes(), styles.CustomThemeNames()...)
			return nil, fmt.Errorf("invalid theme: %s\nValid options: %s", value, strings.Join(valid, ", "))
		}
		typedValue = value
	case "bool":
		if value != "true" && value != "false" {
			return nil, fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typedValue = value == "true"
	case "int":
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: expected integer", key)
		}
		typedValue = intVal
	}

	// Validate the single key against a config that is otherwise default.
	candidate := appconfig.Default()
	switch key {
	case "data.path":
		candidate.Data.Path = value
	case "search.debounce_ms":
		candidate.Search.DebounceMs = typedValue.(int)
	case "tui.date_format":
		candidate.TUI.DateFormat = value
	case "view.base_url":
		candidate.View.BaseURL = value
	case "logging.level":
		candidate.Logging.Level = value
	case "logging.max_size_mb":
		candidate.Logging.MaxSizeMB = typedValue.(int)
	case "logging.max_backups":
		candidate.Logging.MaxBackups = typedValue.(int)
	}
	if errs := candidate.Validate(); len(errs) > 0 {
		return nil, appconfig.ValidationErrors(errs)
	}
	return typedValue, nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	typedValue, err := parseValue(key, value)
	if err != nil {
		return err
	}

	configFile, err := writeConfig(func() { viper.Set(key, typedValue) })
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, typedValue)
	fmt.Fprintf(cmd.OutOrStdout(), "Config saved to %s\n", configFile)
	return nil
}

// writeConfig applies mutate to viper and writes the result to the user
// config file.
func writeConfig(mutate func()) (string, error) {
	configDir := appconfig.ConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	mutate()

	configFile := appconfig.ConfigFile()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return configFile, nil
}

// defaultConfigContent is written by config init.
const defaultConfigContent = `# resdash configuration

# Where resource snapshots come from
data:
  # Snapshot file: .json, .yaml/.yml or .msgpack/.mpk
  # Leave empty to show the built-in sample records
  path: ""
  # Reload the snapshot whenever the file changes
  watch: false

search:
  # Milliseconds to wait after the last keystroke before searching
  # (0 searches on every keystroke, maximum 5000)
  debounce_ms: 300

# TUI (terminal user interface) settings
tui:
  # Color theme: default, nord, dracula, solarized-light, or a custom theme
  theme: default
  # Go time layout for timestamp columns
  date_format: "Jan 2, 2006, 3:04:05 PM"

view:
  # Base of shareable view links
  base_url: resdash://resources

# Debug logging (see 'resdash logs')
logging:
  enabled: true
  # debug, info, warn or error
  level: info
  max_size_mb: 10
  max_backups: 3
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'resdash config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit this file to customize resdash.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := appconfig.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/resdash/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: RESDASH_* (e.g., RESDASH_SEARCH_DEBOUNCE_MS), also read from ./.env")
	fmt.Fprintf(out, "Logs: %s\n", appconfig.LogDir())
	fmt.Fprintf(out, "Themes: %s\n", appconfig.ThemesDir())

	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()

	// Check if config file exists, if not create it
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file doesn't exist, creating with defaults...\n")
		if err := runConfigInit(cmd, args); err != nil {
			return err
		}
	}

	// Find an editor
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		// Try common editors
		for _, e := range []string{"vim", "nano", "vi"} {
			if _, err := execLookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set $EDITOR environment variable")
	}

	editorCmd := execCommand(editor, configFile)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config file saved: %s\n", configFile)
	return nil
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	defaults := defaultValues()
	out := cmd.OutOrStdout()

	var mutate func()
	if len(args) == 0 {
		mutate = func() {
			for key, value := range defaults {
				viper.Set(key, value)
			}
		}
	} else {
		key := args[0]
		value, ok := defaults[key]
		if !ok {
			return fmt.Errorf("unknown configuration key: %s\nRun 'resdash config set --help' to see valid keys", key)
		}
		mutate = func() { viper.Set(key, value) }
	}

	configFile, err := writeConfig(mutate)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Fprintln(out, "Reset all configuration to defaults.")
	} else {
		fmt.Fprintf(out, "Reset %s to default: %v\n", args[0], defaults[args[0]])
	}
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}
