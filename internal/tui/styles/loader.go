package styles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	Name        string      `yaml:"name"`
	Author      string      `yaml:"author,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Version     string      `yaml:"version"`
	Colors      ThemeColors `yaml:"colors"`
}

// ThemeColors contains all color definitions for a theme, as hex strings.
type ThemeColors struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Warning   string `yaml:"warning"`
	Error     string `yaml:"error"`
	Muted     string `yaml:"muted"`
	Surface   string `yaml:"surface"`
	Text      string `yaml:"text"`
	Border    string `yaml:"border"`

	// States default to the base colors when omitted.
	States ThemeStateColors `yaml:"states,omitempty"`
}

// ThemeStateColors overrides processing state badge colors.
type ThemeStateColors struct {
	Completed  string `yaml:"completed,omitempty"`
	Failed     string `yaml:"failed,omitempty"`
	Processing string `yaml:"processing,omitempty"`
	NotStarted string `yaml:"not_started,omitempty"`
	Other      string `yaml:"other,omitempty"`
}

var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads and validates a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}
	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}
	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %q (supported: 1)", t.Version)
	}

	required := []struct{ name, value string }{
		{"primary", t.Colors.Primary},
		{"secondary", t.Colors.Secondary},
		{"warning", t.Colors.Warning},
		{"error", t.Colors.Error},
		{"muted", t.Colors.Muted},
		{"surface", t.Colors.Surface},
		{"text", t.Colors.Text},
		{"border", t.Colors.Border},
	}
	for _, c := range required {
		if c.value == "" {
			return fmt.Errorf("color %s is required", c.name)
		}
		if !hexColorRegex.MatchString(c.value) {
			return fmt.Errorf("color %s: invalid hex color %q", c.name, c.value)
		}
	}

	optional := []struct{ name, value string }{
		{"states.completed", t.Colors.States.Completed},
		{"states.failed", t.Colors.States.Failed},
		{"states.processing", t.Colors.States.Processing},
		{"states.not_started", t.Colors.States.NotStarted},
		{"states.other", t.Colors.States.Other},
	}
	for _, c := range optional {
		if c.value != "" && !hexColorRegex.MatchString(c.value) {
			return fmt.Errorf("color %s: invalid hex color %q", c.name, c.value)
		}
	}
	return nil
}

// ToPalette converts the theme to a palette, filling unset state colors
// from the base colors.
func (t *ThemeFile) ToPalette() *ColorPalette {
	c := t.Colors
	return &ColorPalette{
		Primary:   lipgloss.Color(c.Primary),
		Secondary: lipgloss.Color(c.Secondary),
		Warning:   lipgloss.Color(c.Warning),
		Error:     lipgloss.Color(c.Error),
		Muted:     lipgloss.Color(c.Muted),
		Surface:   lipgloss.Color(c.Surface),
		Text:      lipgloss.Color(c.Text),
		Border:    lipgloss.Color(c.Border),

		StateCompleted:  colorOrDefault(c.States.Completed, c.Secondary),
		StateFailed:     colorOrDefault(c.States.Failed, c.Error),
		StateProcessing: colorOrDefault(c.States.Processing, c.Warning),
		StateNotStarted: colorOrDefault(c.States.NotStarted, c.Primary),
		StateOther:      colorOrDefault(c.States.Other, c.Muted),
	}
}

func colorOrDefault(color, fallback string) lipgloss.Color {
	if color != "" {
		return lipgloss.Color(color)
	}
	return lipgloss.Color(fallback)
}

// customThemes is populated at startup before the TUI runs.
var customThemes = make(map[ThemeName]*ThemeFile)

// RegisterCustomTheme makes a theme available by name.
func RegisterCustomTheme(name ThemeName, theme *ThemeFile) {
	customThemes[name] = theme
}

// GetCustomTheme returns a registered custom theme or nil.
func GetCustomTheme(name ThemeName) *ThemeFile {
	return customThemes[name]
}

// IsCustomTheme checks if a theme name is a registered custom theme.
func IsCustomTheme(name string) bool {
	_, ok := customThemes[ThemeName(name)]
	return ok
}

// CustomThemeNames returns registered custom theme names, sorted.
func CustomThemeNames() []string {
	names := make([]string, 0, len(customThemes))
	for name := range customThemes {
		names = append(names, string(name))
	}
	slices.Sort(names)
	return names
}

// ClearCustomThemes removes all registered custom themes.
func ClearCustomThemes() {
	customThemes = make(map[ThemeName]*ThemeFile)
}

// DiscoverCustomThemes loads every *.yaml / *.yml theme in dir. The theme
// name is the file name without extension. A missing directory is not an
// error. Invalid files and attempts to shadow a built-in theme are reported
// and skipped.
func DiscoverCustomThemes(dir string) ([]string, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, []error{fmt.Errorf("reading themes directory: %w", err)}
	}

	var loaded []string
	var errs []error
	for _, entry := range entries {
		name := entry.Name()
		ext := filepath.Ext(name)
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		theme, err := LoadThemeFile(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		themeName := strings.TrimSuffix(name, ext)
		if IsBuiltinTheme(themeName) {
			errs = append(errs, fmt.Errorf("%s: cannot override built-in theme '%s'", name, themeName))
			continue
		}

		RegisterCustomTheme(ThemeName(themeName), theme)
		loaded = append(loaded, themeName)
	}
	return loaded, errs
}

// ThemeFromPalette describes p as a theme file.
func ThemeFromPalette(name string, p *ColorPalette) *ThemeFile {
	return &ThemeFile{
		Name:    name,
		Version: "1",
		Colors: ThemeColors{
			Primary:   string(p.Primary),
			Secondary: string(p.Secondary),
			Warning:   string(p.Warning),
			Error:     string(p.Error),
			Muted:     string(p.Muted),
			Surface:   string(p.Surface),
			Text:      string(p.Text),
			Border:    string(p.Border),
			States: ThemeStateColors{
				Completed:  string(p.StateCompleted),
				Failed:     string(p.StateFailed),
				Processing: string(p.StateProcessing),
				NotStarted: string(p.StateNotStarted),
				Other:      string(p.StateOther),
			},
		},
	}
}

// ExportTheme renders a built-in or registered theme as YAML.
func ExportTheme(name ThemeName) ([]byte, error) {
	theme := GetCustomTheme(name)
	if theme == nil {
		if !IsBuiltinTheme(string(name)) {
			return nil, fmt.Errorf("unknown theme %q", name)
		}
		theme = ThemeFromPalette(string(name), GetPalette(name))
	}
	return yaml.Marshal(theme)
}

// SaveTheme validates theme and writes it to dir/<name>.yaml, creating dir
// if needed.
func SaveTheme(dir, name string, theme *ThemeFile) (string, error) {
	if err := theme.Validate(); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(theme)
	if err != nil {
		return "", fmt.Errorf("encoding theme: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating themes directory: %w", err)
	}
	path := filepath.Join(dir, name+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing theme file: %w", err)
	}
	return path, nil
}
