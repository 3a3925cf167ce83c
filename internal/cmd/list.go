package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pact-ai/resdash/internal/config"
	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/derive"
	"github.com/pact-ai/resdash/internal/errors"
	"github.com/pact-ai/resdash/internal/resource"
	"github.com/pact-ai/resdash/internal/tui"
	"github.com/pact-ai/resdash/internal/tui/format"
	"github.com/pact-ai/resdash/internal/tui/styles"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the resources matching a view",
	Long: `Print the resources matching a view link without opening the dashboard.

Rows go through the same search, filter and sort steps as the dashboard.

Examples:
  resdash list --data records.json
  resdash list --link 'resdash://resources?status=FAILED,PROCESSING' --sort created:desc
  resdash list --format json | jq '.[].resource.metadata.identifier'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listData   string
	listLink   string
	listSort   string
	listFormat string
)

// Output formats for list.
const (
	listFormatTable = "table"
	listFormatJSON  = "json"
	listFormatYAML  = "yaml"
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listData, "data", "", "snapshot file (.json, .yaml, .msgpack); overrides data.path")
	listCmd.Flags().StringVar(&listLink, "link", "", "view link whose search and filters to apply")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort column with optional direction, e.g. created:desc")
	listCmd.Flags().StringVarP(&listFormat, "format", "o", listFormatTable, "output format: table, json or yaml")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	spec, err := parseSortFlag(listSort)
	if err != nil {
		return err
	}

	path := cfg.Data.Path
	if listData != "" {
		path = listData
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	path = (&config.DataConfig{Path: path}).ResolvePath(cwd)

	logger := CreateLogger(cfg).WithComponent("list")
	defer func() { _ = logger.Close() }()

	snap, err := loadSnapshot(path, logger)
	if err != nil {
		return err
	}

	store, addr := openView(cfg.View.BaseURL, listLink)
	c := store.Replace(store.Criteria().WithSort(spec))
	view := derive.NewPipeline().Derive(snap, c)

	out := cmd.OutOrStdout()
	switch strings.ToLower(listFormat) {
	case listFormatJSON:
		return writeRecords(out, resource.FormatJSON, view.Rows)
	case listFormatYAML:
		return writeRecords(out, resource.FormatYAML, view.Rows)
	case listFormatTable:
		applyTheme(cfg.TUI.Theme, logger)
		fmter := format.New(cfg.TUI.DateFormat)
		fmt.Fprintln(out, renderList(view, spec, fmter, terminalWidth()))
		fmt.Fprintln(out, styles.Active().Muted.Render(fmt.Sprintf("Showing %d of %d", len(view.Rows), view.Total)))
		fmt.Fprintln(out, styles.Active().Link.Render(addr.String()))
		return nil
	default:
		return errors.NewValidationError("unknown format (want table, json or yaml)").
			WithField("format").
			WithValue(listFormat)
	}
}

func writeRecords(w io.Writer, f resource.Format, records []resource.Record) error {
	data, err := resource.Encode(f, records)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// defaultListWidth is used when stdout is not a terminal.
const defaultListWidth = 160

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultListWidth
	}
	return w
}

// renderList renders rows as a table, splitting width evenly between
// columns.
func renderList(view derive.View, spec *criteria.SortSpec, fmter format.Formatter, width int) string {
	if len(view.Rows) == 0 {
		return styles.Active().Muted.Render("No resources match the current criteria.")
	}

	// Each column costs a border and two padding cells.
	cellWidth := max(6, width/len(derive.Columns())-3)

	rows := make([][]string, len(view.Rows))
	for i, r := range view.Rows {
		rows[i] = tui.RowCells(fmter, r, cellWidth)
	}
	return tui.RenderTable(rows, spec, -1, -1)
}
