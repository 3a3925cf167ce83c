package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a named color theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault        ThemeName = "default"         // Purple/green dark theme
	ThemeNord           ThemeName = "nord"            // Cool blue-gray
	ThemeDracula        ThemeName = "dracula"         // Dracula theme colors
	ThemeSolarizedLight ThemeName = "solarized-light" // For light terminals
)

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{
		string(ThemeDefault),
		string(ThemeNord),
		string(ThemeDracula),
		string(ThemeSolarizedLight),
	}
}

// IsBuiltinTheme checks if a theme name is a built-in theme.
func IsBuiltinTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// IsValidTheme checks if a theme name is built-in or a registered custom theme.
func IsValidTheme(name string) bool {
	return IsBuiltinTheme(name) || IsCustomTheme(name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	Primary   lipgloss.Color // titles, active column, cursor
	Secondary lipgloss.Color // checked options, key hints
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color // secondary text, N/A cells
	Surface   lipgloss.Color // selected row background
	Text      lipgloss.Color
	Border    lipgloss.Color

	// Processing state badge colors. StateOther covers unspecified and
	// unknown states.
	StateCompleted  lipgloss.Color
	StateFailed     lipgloss.Color
	StateProcessing lipgloss.Color
	StateNotStarted lipgloss.Color
	StateOther      lipgloss.Color
}

// DefaultPalette returns the default purple/green dark theme palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"),
		Secondary: lipgloss.Color("#10B981"),
		Warning:   lipgloss.Color("#F59E0B"),
		Error:     lipgloss.Color("#F87171"),
		Muted:     lipgloss.Color("#9CA3AF"),
		Surface:   lipgloss.Color("#374151"),
		Text:      lipgloss.Color("#F9FAFB"),
		Border:    lipgloss.Color("#6B7280"),

		StateCompleted:  lipgloss.Color("#10B981"),
		StateFailed:     lipgloss.Color("#F87171"),
		StateProcessing: lipgloss.Color("#F59E0B"),
		StateNotStarted: lipgloss.Color("#60A5FA"),
		StateOther:      lipgloss.Color("#9CA3AF"),
	}
}

// NordPalette returns the Nord palette.
func NordPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#88C0D0"),
		Secondary: lipgloss.Color("#A3BE8C"),
		Warning:   lipgloss.Color("#EBCB8B"),
		Error:     lipgloss.Color("#BF616A"),
		Muted:     lipgloss.Color("#7B88A1"),
		Surface:   lipgloss.Color("#3B4252"),
		Text:      lipgloss.Color("#ECEFF4"),
		Border:    lipgloss.Color("#4C566A"),

		StateCompleted:  lipgloss.Color("#A3BE8C"),
		StateFailed:     lipgloss.Color("#BF616A"),
		StateProcessing: lipgloss.Color("#EBCB8B"),
		StateNotStarted: lipgloss.Color("#81A1C1"),
		StateOther:      lipgloss.Color("#7B88A1"),
	}
}

// DraculaPalette returns the Dracula palette.
func DraculaPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#BD93F9"),
		Secondary: lipgloss.Color("#50FA7B"),
		Warning:   lipgloss.Color("#FFB86C"),
		Error:     lipgloss.Color("#FF5555"),
		Muted:     lipgloss.Color("#6272A4"),
		Surface:   lipgloss.Color("#44475A"),
		Text:      lipgloss.Color("#F8F8F2"),
		Border:    lipgloss.Color("#6272A4"),

		StateCompleted:  lipgloss.Color("#50FA7B"),
		StateFailed:     lipgloss.Color("#FF5555"),
		StateProcessing: lipgloss.Color("#F1FA8C"),
		StateNotStarted: lipgloss.Color("#8BE9FD"),
		StateOther:      lipgloss.Color("#6272A4"),
	}
}

// SolarizedLightPalette returns Solarized tuned for light backgrounds.
func SolarizedLightPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#6C71C4"),
		Secondary: lipgloss.Color("#859900"),
		Warning:   lipgloss.Color("#B58900"),
		Error:     lipgloss.Color("#DC322F"),
		Muted:     lipgloss.Color("#657B83"),
		Surface:   lipgloss.Color("#EEE8D5"),
		Text:      lipgloss.Color("#073642"),
		Border:    lipgloss.Color("#93A1A1"),

		StateCompleted:  lipgloss.Color("#859900"),
		StateFailed:     lipgloss.Color("#DC322F"),
		StateProcessing: lipgloss.Color("#B58900"),
		StateNotStarted: lipgloss.Color("#268BD2"),
		StateOther:      lipgloss.Color("#657B83"),
	}
}

// GetPalette returns the palette for name. Custom themes are consulted
// after built-ins; anything unknown falls back to the default palette.
func GetPalette(name ThemeName) *ColorPalette {
	switch name {
	case ThemeDefault:
		return DefaultPalette()
	case ThemeNord:
		return NordPalette()
	case ThemeDracula:
		return DraculaPalette()
	case ThemeSolarizedLight:
		return SolarizedLightPalette()
	}
	if t := GetCustomTheme(name); t != nil {
		return t.ToPalette()
	}
	return DefaultPalette()
}
