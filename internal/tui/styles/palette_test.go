package styles

import (
	"testing"

	"github.com/pact-ai/resdash/internal/resource"
)

func TestGetPaletteBuiltins(t *testing.T) {
	for _, name := range BuiltinThemes() {
		p := GetPalette(ThemeName(name))
		if p == nil {
			t.Fatalf("GetPalette(%q) = nil", name)
		}
		if p.Primary == "" || p.Text == "" || p.StateOther == "" {
			t.Errorf("palette %q has empty colors: %+v", name, p)
		}
		if !IsValidTheme(name) {
			t.Errorf("IsValidTheme(%q) = false", name)
		}
	}
}

func TestGetPaletteUnknownFallsBack(t *testing.T) {
	if got, want := GetPalette("no-such-theme").Primary, DefaultPalette().Primary; got != want {
		t.Errorf("GetPalette(unknown).Primary = %v, want %v", got, want)
	}
	if IsValidTheme("no-such-theme") {
		t.Error("IsValidTheme(unknown) = true")
	}
}

func TestStateColorIsTotal(t *testing.T) {
	s := NewThemedStyles(DefaultPalette())
	p := s.Palette

	tests := []struct {
		state resource.ProcessingState
		want  string
	}{
		{resource.StateCompleted, string(p.StateCompleted)},
		{resource.StateFailed, string(p.StateFailed)},
		{resource.StateProcessing, string(p.StateProcessing)},
		{resource.StateNotStarted, string(p.StateNotStarted)},
		{resource.StateUnspecified, string(p.StateOther)},
		{"PROCESSING_STATE_ARCHIVED", string(p.StateOther)},
		{"", string(p.StateOther)},
	}
	for _, tt := range tests {
		if got := s.StateColor(tt.state); string(got) != tt.want {
			t.Errorf("StateColor(%q) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestSetActiveTheme(t *testing.T) {
	defer SetActiveTheme(ThemeDefault)

	SetActiveTheme(ThemeNord)
	if Active().Palette.Primary != NordPalette().Primary {
		t.Error("SetActiveTheme(nord) did not switch palettes")
	}
}

func TestStateBadgeBoldsTerminalStates(t *testing.T) {
	s := NewThemedStyles(DefaultPalette())

	tests := []struct {
		state resource.ProcessingState
		bold  bool
	}{
		{resource.StateCompleted, true},
		{resource.StateFailed, true},
		{resource.StateProcessing, false},
		{resource.StateNotStarted, false},
		{resource.StateUnspecified, false},
		{"PROCESSING_STATE_ARCHIVED", false},
	}
	for _, tt := range tests {
		badge := s.StateBadge(tt.state)
		if got := badge.GetBold(); got != tt.bold {
			t.Errorf("StateBadge(%q).GetBold() = %v, want %v", tt.state, got, tt.bold)
		}
		if got := badge.GetForeground(); got != s.StateColor(tt.state) {
			t.Errorf("StateBadge(%q) foreground = %v, want %v", tt.state, got, s.StateColor(tt.state))
		}
	}
}
