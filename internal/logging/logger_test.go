package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pact-ai/resdash/internal/errors"
)

func readEntries(t *testing.T, dir string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLoggerCreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := NewLogger(dir, LevelInfo, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(filepath.Join(dir, LogFileName)); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestNewLoggerStderr(t *testing.T) {
	logger, err := NewLogger("", LevelInfo, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	if logger.writer != nil {
		t.Error("expected no file writer when dir is empty")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, "warn", DefaultRotationConfig())
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")
	logger.Close()

	entries := readEntries(t, dir)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0]["level"] != "WARN" || entries[1]["level"] != "ERROR" {
		t.Errorf("levels = %v, %v", entries[0]["level"], entries[1]["level"])
	}
}

func TestLoggerChildAttributes(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, LevelDebug, DefaultRotationConfig())
	if err != nil {
		t.Fatal(err)
	}

	parent := logger.WithSession("run-1")
	child := parent.WithComponent("watcher").With("path", "records.json", 42, "skipped")
	child.Info("reloaded", "records", 6)
	parent.Info("plain")
	logger.Close()

	entries := readEntries(t, dir)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	got := entries[0]
	want := map[string]any{
		"msg":        "reloaded",
		"session_id": "run-1",
		"component":  "watcher",
		"path":       "records.json",
		"records":    float64(6),
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("entry[%q] = %v, want %v", k, got[k], v)
		}
	}

	if _, ok := entries[1]["component"]; ok {
		t.Error("child attributes leaked into the parent logger")
	}
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	l.WithComponent("x").Info("discarded")
	if err := l.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewSessionID(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if a == b {
		t.Error("session ids should differ")
	}
	if len(a) != 36 {
		t.Errorf("len(NewSessionID()) = %d, want 36", len(a))
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"Warn":    LevelWarn,
		"error":   LevelError,
		"verbose": LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogErrorUsesSeverity(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, LevelDebug, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.LogError("sort rejected", errors.NewValidationError("bad column").WithField("sort"))
	logger.LogError("reload failed", errors.NewDataError("bad record", errors.ErrMissingField))
	logger.LogError("read failed", errors.New("permission denied"), "path", "records.json")
	logger.Close()

	entries := readEntries(t, dir)
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	wantLevels := []string{LevelWarn, LevelError, LevelError}
	for i, want := range wantLevels {
		if got := entries[i]["level"]; got != want {
			t.Errorf("entry %d level = %v, want %v", i, got, want)
		}
		if _, ok := entries[i]["error"]; !ok {
			t.Errorf("entry %d missing error attribute", i)
		}
	}
	if entries[2]["path"] != "records.json" {
		t.Errorf("entry 2 path = %v, want records.json", entries[2]["path"])
	}
}

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		sev  errors.Severity
		want slog.Level
	}{
		{errors.SeverityDebug, slog.LevelDebug},
		{errors.SeverityInfo, slog.LevelInfo},
		{errors.SeverityWarning, slog.LevelWarn},
		{errors.SeverityError, slog.LevelError},
		{errors.SeverityCritical, slog.LevelError},
	}
	for _, tt := range tests {
		if got := SeverityLevel(tt.sev); got != tt.want {
			t.Errorf("SeverityLevel(%v) = %v, want %v", tt.sev, got, tt.want)
		}
	}
}
