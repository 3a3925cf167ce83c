// Package cmd implements the resdash command line.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/pact-ai/resdash/internal/cmd/config"
	"github.com/pact-ai/resdash/internal/config"
	"github.com/pact-ai/resdash/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "resdash",
	Short: "Terminal dashboard for processed clinical resources",
	Long: `resdash lists processed clinical resources in a table you can search,
filter by status and resource type, and sort by any column.

The current search and filters are kept in a shareable view link:
open it later with --link to land on the same view.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runView,
}

// Execute runs the root command, reporting any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ReportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// Exit codes returned by the resdash binary.
const (
	ExitOK    = 0
	ExitError = 1
	// ExitInput means the command was given input it cannot use.
	ExitInput = 2
)

// ReportError prints err for the user. Errors not classified as user
// facing (flag parsing, I/O, bugs) get a pointer to help and the debug log.
func ReportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if !errors.IsUserFacing(err) {
		fmt.Fprintln(w, "Run 'resdash --help' for usage, or 'resdash logs --level error' for details.")
	}
}

// ExitCode maps err onto the process exit code: user-facing errors of
// warning severity or below are input problems, everything else is a
// failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.IsUserFacing(err) && errors.GetSeverity(err) <= errors.SeverityWarning {
		return ExitInput
	}
	return ExitError
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/resdash/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	addViewFlags(rootCmd)
	configcmd.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	// A .env file in the working directory feeds RESDASH_* variables.
	// Variables already set in the environment win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/resdash")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("RESDASH")
	// Replace dots with underscores for nested keys in env vars
	// e.g., RESDASH_SEARCH_DEBOUNCE_MS for search.debounce_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
