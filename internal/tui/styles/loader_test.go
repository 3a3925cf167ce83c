package styles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validTheme = `name: Clinic
version: "1"
colors:
  primary: "#112233"
  secondary: "#445566"
  warning: "#778899"
  error: "#AA0000"
  muted: "#888"
  surface: "#222222"
  text: "#FFFFFF"
  border: "#333333"
  states:
    failed: "#FF0000"
`

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadThemeFile(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "clinic.yaml", validTheme)

	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile() error = %v", err)
	}

	p := theme.ToPalette()
	if p.StateFailed != "#FF0000" {
		t.Errorf("StateFailed = %v, want override", p.StateFailed)
	}
	if p.StateCompleted != p.Secondary {
		t.Errorf("StateCompleted = %v, want secondary fallback %v", p.StateCompleted, p.Secondary)
	}
	if p.StateOther != p.Muted {
		t.Errorf("StateOther = %v, want muted fallback %v", p.StateOther, p.Muted)
	}
}

func TestThemeFileValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{"missing name", func(s string) string { return strings.Replace(s, "name: Clinic", "", 1) }, "name is required"},
		{"bad version", func(s string) string { return strings.Replace(s, `version: "1"`, `version: "2"`, 1) }, "unsupported theme version"},
		{"missing color", func(s string) string { return strings.Replace(s, `  border: "#333333"`, "", 1) }, "border is required"},
		{"bad hex", func(s string) string { return strings.Replace(s, "#112233", "blue", 1) }, "invalid hex color"},
		{"bad state hex", func(s string) string { return strings.Replace(s, "#FF0000", "#GG0000", 1) }, "states.failed"},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, dir, "theme.yaml", tt.mutate(validTheme))
			_, err := LoadThemeFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadThemeFile() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDiscoverCustomThemes(t *testing.T) {
	defer ClearCustomThemes()

	dir := t.TempDir()
	writeTheme(t, dir, "clinic.yaml", validTheme)
	writeTheme(t, dir, "nord.yml", validTheme)
	writeTheme(t, dir, "broken.yaml", "name: [")
	writeTheme(t, dir, "notes.txt", "ignored")

	loaded, errs := DiscoverCustomThemes(dir)
	if len(loaded) != 1 || loaded[0] != "clinic" {
		t.Errorf("loaded = %v, want [clinic]", loaded)
	}
	if len(errs) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(errs), errs)
	}
	if !IsValidTheme("clinic") {
		t.Error("clinic should be a valid theme after discovery")
	}
	if GetPalette("clinic").Primary != "#112233" {
		t.Error("GetPalette(clinic) did not use the custom theme")
	}
	if names := CustomThemeNames(); len(names) != 1 || names[0] != "clinic" {
		t.Errorf("CustomThemeNames() = %v", names)
	}
}

func TestDiscoverCustomThemesMissingDir(t *testing.T) {
	loaded, errs := DiscoverCustomThemes(filepath.Join(t.TempDir(), "absent"))
	if loaded != nil || errs != nil {
		t.Errorf("DiscoverCustomThemes(absent) = %v, %v, want nil, nil", loaded, errs)
	}
}

func TestExportThemeRoundTrip(t *testing.T) {
	for _, name := range BuiltinThemes() {
		t.Run(name, func(t *testing.T) {
			data, err := ExportTheme(ThemeName(name))
			if err != nil {
				t.Fatalf("ExportTheme() error = %v", err)
			}
			path := writeTheme(t, t.TempDir(), "exported.yaml", string(data))
			theme, err := LoadThemeFile(path)
			if err != nil {
				t.Fatalf("LoadThemeFile(exported) error = %v", err)
			}
			if got, want := *theme.ToPalette(), *GetPalette(ThemeName(name)); got != want {
				t.Errorf("round-tripped palette = %+v, want %+v", got, want)
			}
		})
	}

	if _, err := ExportTheme("no-such-theme"); err == nil {
		t.Error("ExportTheme(unknown) error = nil, want error")
	}
}

func TestSaveTheme(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "themes")
	theme := ThemeFromPalette("Mine", DefaultPalette())

	path, err := SaveTheme(dir, "mine", theme)
	if err != nil {
		t.Fatalf("SaveTheme() error = %v", err)
	}
	if want := filepath.Join(dir, "mine.yaml"); path != want {
		t.Errorf("SaveTheme() path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "name: Mine") {
		t.Errorf("saved theme missing name:\n%s", data)
	}

	theme.Colors.Primary = "purple"
	if _, err := SaveTheme(dir, "bad", theme); err == nil {
		t.Error("SaveTheme(invalid) error = nil, want error")
	}
}
