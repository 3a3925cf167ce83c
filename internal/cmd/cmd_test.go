package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pact-ai/resdash/internal/config"
	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/errors"
	"github.com/pact-ai/resdash/internal/logging"
	"github.com/pact-ai/resdash/internal/resource"
	"github.com/pact-ai/resdash/internal/testutil"
	"github.com/pact-ai/resdash/internal/tui/styles"
)

// setupCmdTest isolates config, logs and viper state for one test.
func setupCmdTest(t *testing.T) {
	t.Helper()
	testutil.SetupConfigHome(t)
	viper.Reset()
	config.SetDefaults()
	viper.Set("logging.enabled", false)
	t.Cleanup(viper.Reset)
}

func capture(t *testing.T, cmd *cobra.Command) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	t.Cleanup(func() { cmd.SetOut(nil) })
	return buf
}

func TestRootCommandHasSubcommands(t *testing.T) {
	if rootCmd.Use != "resdash" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "resdash")
	}

	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"view", "list", "link", "logs", "config"} {
		if !names[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}

	for _, flag := range []string{"data", "link", "watch"} {
		if rootCmd.Flags().Lookup(flag) == nil {
			t.Errorf("root command missing --%s", flag)
		}
	}
}

func TestParseSortFlag(t *testing.T) {
	tests := []struct {
		in      string
		want    *criteria.SortSpec
		wantErr bool
	}{
		{"", nil, false},
		{"created", &criteria.SortSpec{ColumnID: "created", Direction: criteria.Asc}, false},
		{"created:desc", &criteria.SortSpec{ColumnID: "created", Direction: criteria.Desc}, false},
		{"PatientID:ASC", &criteria.SortSpec{ColumnID: "patientId", Direction: criteria.Asc}, false},
		{"status: desc", &criteria.SortSpec{ColumnID: "status", Direction: criteria.Desc}, false},
		{"colour", nil, true},
		{"created:sideways", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSortFlag(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseSortFlag(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				var valErr *errors.ValidationError
				if !errors.As(err, &valErr) || valErr.Field != "sort" {
					t.Errorf("error = %v, want ValidationError on sort", err)
				}
				return
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("parseSortFlag(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("parseSortFlag(%q) = %+v, want %+v", tt.in, *got, *tt.want)
			}
		})
	}
}

func TestBuildCriteria(t *testing.T) {
	c := buildCriteria(
		[]string{"failed", "PROCESSING_STATE_FAILED", "processing", ""},
		[]string{"Observation", " ", "Observation", "Condition"},
		"00",
	)

	wantStates := []resource.ProcessingState{resource.StateFailed, resource.StateProcessing}
	if got := c.Statuses.Values(); !slices.Equal(got, wantStates) {
		t.Errorf("Statuses = %v, want %v", got, wantStates)
	}
	if got := c.Types.Values(); !slices.Equal(got, []string{"Observation", "Condition"}) {
		t.Errorf("Types = %v, want [Observation Condition]", got)
	}
	if c.SearchTerm != "00" || c.EffectiveSearchTerm != "00" {
		t.Errorf("search = %q/%q, want 00/00", c.SearchTerm, c.EffectiveSearchTerm)
	}
}

func TestRunLink(t *testing.T) {
	setupCmdTest(t)
	out := capture(t, linkCmd)

	linkStatuses, linkTypes, linkSearch, linkBase = []string{"failed"}, nil, "", ""
	t.Cleanup(func() { linkStatuses, linkTypes, linkSearch, linkBase = nil, nil, "", "" })

	if err := runLink(linkCmd, nil); err != nil {
		t.Fatalf("runLink() error = %v", err)
	}
	want := config.DefaultBaseURL + "?status=PROCESSING_STATE_FAILED\n"
	if out.String() != want {
		t.Errorf("runLink() output = %q, want %q", out.String(), want)
	}

	out.Reset()
	linkBase = "https://dash.example.com/r"
	linkTypes = []string{"Observation", "Condition"}
	linkSearch = "patient 1"
	if err := runLink(linkCmd, nil); err != nil {
		t.Fatalf("runLink() error = %v", err)
	}
	want = "https://dash.example.com/r?search=patient+1&status=PROCESSING_STATE_FAILED&type=Observation,Condition\n"
	if out.String() != want {
		t.Errorf("runLink() output = %q, want %q", out.String(), want)
	}
}

func TestRunListJSON(t *testing.T) {
	setupCmdTest(t)
	out := capture(t, listCmd)

	listData = testutil.WriteSampleSnapshot(t)
	listLink = "resdash://resources?status=COMPLETED"
	listSort = "created:desc"
	listFormat = "json"
	t.Cleanup(func() { listData, listLink, listSort, listFormat = "", "", "", listFormatTable })

	if err := runList(listCmd, nil); err != nil {
		t.Fatalf("runList() error = %v", err)
	}

	records, err := resource.Decode(resource.FormatJSON, out.Bytes())
	if err != nil {
		t.Fatalf("output is not a snapshot: %v\n%s", err, out.String())
	}
	var ids []string
	for _, r := range records {
		ids = append(ids, r.PatientID())
	}
	if !slices.Equal(ids, []string{"patient-001", "patient-006"}) {
		t.Errorf("listed %v, want [patient-001 patient-006]", ids)
	}
}

func TestRunListTable(t *testing.T) {
	setupCmdTest(t)
	out := capture(t, listCmd)

	listData = testutil.WriteSampleSnapshot(t)
	listLink = "?search=00&type=Observation"
	listSort = ""
	listFormat = "table"
	t.Cleanup(func() { listData, listLink, listSort, listFormat = "", "", "", listFormatTable })

	if err := runList(listCmd, nil); err != nil {
		t.Fatalf("runList() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"Patient ID", "patient-002", "Showing 1 of 6", "type=Observation"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "patient-001") {
		t.Errorf("table output should not list patient-001:\n%s", got)
	}
}

func TestRunListErrors(t *testing.T) {
	setupCmdTest(t)
	capture(t, listCmd)
	t.Cleanup(func() { listData, listLink, listSort, listFormat = "", "", "", listFormatTable })

	listData, listSort, listFormat = "", "", "csv"
	if err := runList(listCmd, nil); err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("runList(csv) error = %v, want unknown format", err)
	}

	listFormat, listSort = listFormatTable, "bogus"
	if err := runList(listCmd, nil); err == nil {
		t.Error("runList(bad sort) error = nil, want error")
	}

	listSort = ""
	listData = filepath.Join(t.TempDir(), "missing.json")
	if err := runList(listCmd, nil); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("runList(missing) error = %v, want not found", err)
	}
}

func TestResolveViewSettings(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	newCmd := func(flags map[string]string) *cobra.Command {
		c := &cobra.Command{Use: "view"}
		addViewFlags(c)
		for k, v := range flags {
			if err := c.Flags().Set(k, v); err != nil {
				t.Fatalf("Set(%s) error = %v", k, err)
			}
		}
		return c
	}

	tests := []struct {
		name    string
		cfg     config.DataConfig
		flags   map[string]string
		want    viewSettings
		wantErr bool
	}{
		{
			name: "config only",
			cfg:  config.DataConfig{Path: "records.json", Watch: true},
			want: viewSettings{dataPath: filepath.Join(cwd, "records.json"), watch: true},
		},
		{
			name:  "flags win",
			cfg:   config.DataConfig{Path: "records.json", Watch: true},
			flags: map[string]string{"data": "/tmp/other.yaml", "watch": "false", "link": "?status=FAILED"},
			want:  viewSettings{dataPath: "/tmp/other.yaml", link: "?status=FAILED"},
		},
		{
			name: "sample data",
			want: viewSettings{},
		},
		{
			name:    "watch without data",
			flags:   map[string]string{"watch": "true"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Data = tt.cfg

			got, err := resolveViewSettings(newCmd(tt.flags), cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveViewSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("resolveViewSettings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOpenView(t *testing.T) {
	store, addr := openView("resdash://resources", "")
	if !store.Criteria().IsDefault() {
		t.Error("openView without a link should start from defaults")
	}
	if addr.String() != "resdash://resources" {
		t.Errorf("addr = %q", addr.String())
	}

	store, addr = openView("resdash://resources", "https://elsewhere.example/x?status=FAILED&search=02")
	c := store.Criteria()
	if !c.Statuses.Contains(resource.StateFailed) || c.EffectiveSearchTerm != "02" {
		t.Errorf("criteria = %+v, want FAILED and search 02", c)
	}
	if want := "resdash://resources?search=02&status=PROCESSING_STATE_FAILED"; addr.String() != want {
		t.Errorf("addr = %q, want %q", addr.String(), want)
	}
	if n := len(addr.History()); n != 2 {
		t.Errorf("history length = %d, want 2", n)
	}
}

func TestApplyThemeFallsBack(t *testing.T) {
	testutil.SetupConfigHome(t)
	t.Cleanup(func() { styles.SetActiveTheme(styles.ThemeDefault) })

	applyTheme("nord", logging.NopLogger())
	nord := styles.NewThemedStyles(styles.GetPalette(styles.ThemeName("nord")))
	if got, want := styles.Active().StateColor(resource.StateFailed), nord.StateColor(resource.StateFailed); got != want {
		t.Errorf("active failed color = %v, want nord %v", got, want)
	}

	applyTheme("does-not-exist", logging.NopLogger())
	def := styles.NewThemedStyles(styles.DefaultPalette())
	if got, want := styles.Active().StateColor(resource.StateFailed), def.StateColor(resource.StateFailed); got != want {
		t.Errorf("active failed color = %v, want default %v", got, want)
	}
}

func TestLoadSnapshot(t *testing.T) {
	snap, err := loadSnapshot("", logging.NopLogger())
	if err != nil {
		t.Fatalf("loadSnapshot(\"\") error = %v", err)
	}
	if snap.Len() != 6 {
		t.Errorf("sample snapshot has %d records, want 6", snap.Len())
	}

	path := testutil.WriteSnapshot(t, t.TempDir(), "two.msgpack", resource.Sample()[:2])
	snap, err = loadSnapshot(path, logging.NopLogger())
	if err != nil {
		t.Fatalf("loadSnapshot(%s) error = %v", path, err)
	}
	if snap.Len() != 2 || snap.Source != path {
		t.Errorf("snapshot = %d records from %q, want 2 from %q", snap.Len(), snap.Source, path)
	}
}

func writeTestLog(t *testing.T) string {
	t.Helper()
	now := time.Now()
	path := filepath.Join(t.TempDir(), logging.LogFileName)
	testutil.WriteLogFile(t, path, []testutil.LogLine{
		{Time: now.Add(-2 * time.Hour), Level: "DEBUG", Msg: "custom themes loaded", Component: "tui", SessionID: "aaaa1111"},
		{Time: now.Add(-10 * time.Minute), Level: "INFO", Msg: "snapshot loaded", SessionID: "aaaa1111", Attrs: map[string]any{"records": 6, "path": "records.json"}},
		{Time: now.Add(-5 * time.Minute), Level: "WARN", Msg: "snapshot reload failed", Component: "watcher", SessionID: "bbbb2222", Attrs: map[string]any{"error": "malformed"}},
		{Time: now.Add(-time.Minute), Level: "ERROR", Msg: "dashboard error", Component: "tui", SessionID: "bbbb2222"},
	}, "plain text line")
	return path
}

func TestDisplayLogsFilters(t *testing.T) {
	path := writeTestLog(t)

	tests := []struct {
		name    string
		filter  logFilter
		tail    int
		want    []string
		notWant []string
	}{
		{
			name:   "everything",
			filter: logFilter{minLevel: -1},
			want:   []string{"custom themes loaded", "snapshot loaded", "reload failed", "dashboard error", "plain text line"},
		},
		{
			name:    "min level warn",
			filter:  logFilter{minLevel: levelPriority(logging.LevelWarn)},
			want:    []string{"reload failed", "dashboard error"},
			notWant: []string{"snapshot loaded", "custom themes"},
		},
		{
			name:    "session prefix",
			filter:  logFilter{minLevel: -1, session: "aaaa"},
			want:    []string{"custom themes loaded", "snapshot loaded"},
			notWant: []string{"dashboard error"},
		},
		{
			name:    "component",
			filter:  logFilter{minLevel: -1, component: "watcher"},
			want:    []string{"reload failed"},
			notWant: []string{"dashboard error", "snapshot loaded"},
		},
		{
			name:    "since",
			filter:  logFilter{minLevel: -1, since: time.Now().Add(-time.Hour)},
			want:    []string{"snapshot loaded"},
			notWant: []string{"custom themes"},
		},
		{
			name:    "tail",
			filter:  logFilter{minLevel: -1},
			tail:    2,
			want:    []string{"dashboard error", "plain text line"},
			notWant: []string{"reload failed"},
		},
		{
			name:   "no match",
			filter: logFilter{minLevel: -1, component: "nobody"},
			want:   []string{"No matching log entries found."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := displayLogs(&out, path, tt.tail, tt.filter); err != nil {
				t.Fatalf("displayLogs() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(out.String(), nw) {
					t.Errorf("output should not contain %q:\n%s", nw, out.String())
				}
			}
		})
	}
}

func TestFormatLogEntryOrdersExtras(t *testing.T) {
	line := `{"time":"2025-07-10T10:00:00Z","level":"INFO","msg":"snapshot loaded","component":"list","session_id":"abc","records":6,"path":"r.json"}`

	got, ok := formatLine(line, logFilter{minLevel: -1})
	if !ok {
		t.Fatal("formatLine() dropped a matching line")
	}
	for _, want := range []string{"[INFO]", "list:", "snapshot loaded"} {
		if !strings.Contains(got, want) {
			t.Errorf("formatLine() = %q, missing %q", got, want)
		}
	}
	if strings.Index(got, "path=") > strings.Index(got, "records=") {
		t.Errorf("extras should be sorted by key: %q", got)
	}
	if strings.Contains(got, "session_id") {
		t.Errorf("session id should not be printed as an extra: %q", got)
	}
}

func TestNewLogFilterGrep(t *testing.T) {
	logsGrep, logsLevel, logsSince = "reload|dashboard", "warn", ""
	t.Cleanup(func() { logsGrep, logsLevel, logsSince = "", "", "" })

	f, err := newLogFilter()
	if err != nil {
		t.Fatalf("newLogFilter() error = %v", err)
	}
	var out bytes.Buffer
	if err := displayLogs(&out, writeTestLog(t), 0, f); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "reload failed") || strings.Contains(out.String(), "snapshot loaded") {
		t.Errorf("grep output = %s", out.String())
	}

	logsGrep = "("
	if _, err := newLogFilter(); err == nil {
		t.Error("newLogFilter() with bad regex error = nil, want error")
	}
	logsGrep, logsSince = "", "yesterday"
	if _, err := newLogFilter(); err == nil {
		t.Error("newLogFilter() with bad duration error = nil, want error")
	}
}

func TestFollowLogsReadsAppendedLines(t *testing.T) {
	path := writeTestLog(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- followLogs(ctx, &out, path, logFilter{minLevel: -1}) }()

	// Give the follower time to seek to the end before appending.
	time.Sleep(150 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	// Written in two pieces to exercise partial-line handling.
	_, _ = f.WriteString(`{"time":"2025-07-10T10:00:00Z","level":"INFO","msg":"appended`)
	_ = f.Sync()
	time.Sleep(150 * time.Millisecond)
	_, _ = f.WriteString(` entry"}` + "\n")
	f.Close()

	deadline := time.After(3 * time.Second)
	for !strings.Contains(out.String(), "appended entry") {
		select {
		case <-deadline:
			t.Fatalf("follow output = %q, want appended entry", out.String())
		case <-time.After(50 * time.Millisecond):
		}
	}
	if strings.Contains(out.String(), "dashboard error") {
		t.Error("follow should start at the end of the file")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("followLogs() error = %v", err)
	}
}

func TestReportErrorAndExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantHint bool
	}{
		{
			name:     "bad sort flag",
			err:      errors.NewValidationError("unknown sort column").WithField("sort"),
			wantCode: ExitInput,
		},
		{
			name:     "missing snapshot",
			err:      errors.NewNotFoundError("snapshot", "records.json"),
			wantCode: ExitInput,
		},
		{
			name:     "bad snapshot record",
			err:      errors.NewDataError("patient id is required", errors.ErrMissingField),
			wantCode: ExitError,
		},
		{
			name:     "internal",
			err:      errors.Wrap(errors.New("permission denied"), "reading snapshot"),
			wantCode: ExitError,
			wantHint: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			ReportError(&out, tt.err)

			if !strings.HasPrefix(out.String(), "Error: "+tt.err.Error()) {
				t.Errorf("ReportError() = %q, want the error message first", out.String())
			}
			if got := strings.Contains(out.String(), "resdash logs"); got != tt.wantHint {
				t.Errorf("ReportError() hint = %v, want %v\n%s", got, tt.wantHint, out.String())
			}
			if got := ExitCode(tt.err); got != tt.wantCode {
				t.Errorf("ExitCode() = %d, want %d", got, tt.wantCode)
			}
		})
	}

	if got := ExitCode(nil); got != ExitOK {
		t.Errorf("ExitCode(nil) = %d, want %d", got, ExitOK)
	}
}

func TestRunListUnknownFormatIsInputError(t *testing.T) {
	setupCmdTest(t)
	capture(t, listCmd)
	t.Cleanup(func() { listData, listLink, listSort, listFormat = "", "", "", listFormatTable })

	listFormat = "csv"
	err := runList(listCmd, nil)
	var valErr *errors.ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "format" {
		t.Fatalf("runList(csv) error = %v, want ValidationError on format", err)
	}
	if ExitCode(err) != ExitInput {
		t.Errorf("ExitCode() = %d, want %d", ExitCode(err), ExitInput)
	}
}
