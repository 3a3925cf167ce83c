// Package styles holds the lipgloss styles for the dashboard, built from a
// named color palette.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pact-ai/resdash/internal/resource"
)

// ThemedStyles is the full set of styles derived from one palette.
type ThemedStyles struct {
	Palette *ColorPalette

	Title        lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
	Warning      lipgloss.Style
	HelpKey      lipgloss.Style
	HelpDesc     lipgloss.Style
	SearchPrompt lipgloss.Style
	SearchBox    lipgloss.Style

	// Table
	Header       lipgloss.Style
	ActiveHeader lipgloss.Style
	Cell         lipgloss.Style
	SelectedRow  lipgloss.Style
	Border       lipgloss.Style
	Badge        lipgloss.Style

	// Filter modal
	Modal         lipgloss.Style
	Checkbox      lipgloss.Style
	CheckboxEmpty lipgloss.Style
	OptionCursor  lipgloss.Style
	SectionTitle  lipgloss.Style

	Footer lipgloss.Style
	Link   lipgloss.Style
}

// NewThemedStyles builds styles from p.
func NewThemedStyles(p *ColorPalette) *ThemedStyles {
	s := &ThemedStyles{Palette: p}

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(p.Primary).MarginBottom(1)
	s.Muted = lipgloss.NewStyle().Foreground(p.Muted)
	s.Error = lipgloss.NewStyle().Foreground(p.Error)
	s.Warning = lipgloss.NewStyle().Foreground(p.Warning)
	s.HelpKey = lipgloss.NewStyle().Foreground(p.Secondary).Bold(true)
	s.HelpDesc = lipgloss.NewStyle().Foreground(p.Muted)
	s.SearchPrompt = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	s.SearchBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(p.Text).Padding(0, 1)
	s.ActiveHeader = s.Header.Foreground(p.Primary).Underline(true)
	s.Cell = lipgloss.NewStyle().Foreground(p.Text).Padding(0, 1)
	s.SelectedRow = s.Cell.Background(p.Surface)
	s.Border = lipgloss.NewStyle().Foreground(p.Border)
	s.Badge = lipgloss.NewStyle().Bold(true)

	s.Modal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	s.Checkbox = lipgloss.NewStyle().Foreground(p.Secondary)
	s.CheckboxEmpty = lipgloss.NewStyle().Foreground(p.Muted)
	s.OptionCursor = lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	s.SectionTitle = lipgloss.NewStyle().Foreground(p.Text).Bold(true)

	s.Footer = lipgloss.NewStyle().Foreground(p.Muted).MarginTop(1)
	s.Link = lipgloss.NewStyle().Foreground(p.Secondary)

	return s
}

// StateColor maps a processing state to its badge color. Unspecified and
// unknown states share the StateOther color.
func (s *ThemedStyles) StateColor(state resource.ProcessingState) lipgloss.Color {
	switch state {
	case resource.StateCompleted:
		return s.Palette.StateCompleted
	case resource.StateFailed:
		return s.Palette.StateFailed
	case resource.StateProcessing:
		return s.Palette.StateProcessing
	case resource.StateNotStarted:
		return s.Palette.StateNotStarted
	default:
		return s.Palette.StateOther
	}
}

// StateBadge returns the badge style for a state. Only terminal states are
// rendered bold.
func (s *ThemedStyles) StateBadge(state resource.ProcessingState) lipgloss.Style {
	return s.Badge.Foreground(s.StateColor(state)).Bold(state.IsTerminal())
}

// activeTheme is only touched from the bubbletea event loop and command
// setup, both single goroutines.
var activeTheme = NewThemedStyles(DefaultPalette())

// SetActiveTheme switches the active styles to the named theme.
func SetActiveTheme(name ThemeName) {
	activeTheme = NewThemedStyles(GetPalette(name))
}

// Active returns the active styles.
func Active() *ThemedStyles {
	return activeTheme
}
