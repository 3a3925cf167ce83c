// Package testutil provides fixtures shared by resdash tests.
package testutil

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pact-ai/resdash/internal/resource"
)

// WriteSnapshot writes records to dir/name, choosing the encoding from the
// file extension. Returns the full path.
func WriteSnapshot(t *testing.T, dir, name string, records []resource.Record) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := resource.WriteFile(path, records); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", name, err)
	}
	return path
}

// WriteSampleSnapshot writes the built-in sample records to a fresh temp
// directory as JSON. Returns the full path.
func WriteSampleSnapshot(t *testing.T) string {
	t.Helper()
	return WriteSnapshot(t, t.TempDir(), "records.json", resource.Sample())
}

// SetupConfigHome points XDG_CONFIG_HOME at a fresh temp directory so
// config, logs and themes stay inside the test. Returns the resdash config
// directory.
func SetupConfigHome(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "resdash")
}

// LogLine is one entry for WriteLogFile.
type LogLine struct {
	Time      time.Time
	Level     string
	Msg       string
	Component string
	SessionID string
	Attrs     map[string]any
}

// WriteLogFile writes lines as JSON log entries to path, creating the
// parent directory. Raw strings in extra are appended verbatim afterwards.
func WriteLogFile(t *testing.T, path string, lines []LogLine, extra ...string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create log directory: %v", err)
	}

	var sb strings.Builder
	for _, l := range lines {
		entry := map[string]any{
			"time":  l.Time.Format(time.RFC3339Nano),
			"level": l.Level,
			"msg":   l.Msg,
		}
		if l.Component != "" {
			entry["component"] = l.Component
		}
		if l.SessionID != "" {
			entry["session_id"] = l.SessionID
		}
		for k, v := range l.Attrs {
			entry[k] = v
		}
		data, err := json.Marshal(entry)
		if err != nil {
			t.Fatalf("failed to encode log line: %v", err)
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}
	for _, raw := range extra {
		sb.WriteString(raw)
		sb.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("failed to write log file: %v", err)
	}
}

// ProjectRoot returns the module root, assuming the test runs somewhere
// below it.
func ProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("go.mod not found above working directory")
		}
		dir = parent
	}
}

// SkipIfNoGolangciLint skips the test if golangci-lint is not installed.
func SkipIfNoGolangciLint(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("golangci-lint"); err != nil {
		t.Skip("golangci-lint not found in PATH, skipping test")
	}
}
