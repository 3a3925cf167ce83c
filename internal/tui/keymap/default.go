package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the built-in key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:        "default",
		Description: "Default resdash key bindings",
		Modes: map[Mode]*ModeBindings{
			ModeNormal: defaultNormalBindings(),
			ModeSearch: defaultSearchBindings(),
			ModeFilter: defaultFilterBindings(),
		},
	}
}

func defaultNormalBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeNormal,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdRowDown, Description: "Next row", Category: "Navigation"},
			{KeyType: tea.KeyDown, Command: CmdRowDown, Description: "Next row", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdRowUp, Description: "Previous row", Category: "Navigation"},
			{KeyType: tea.KeyUp, Command: CmdRowUp, Description: "Previous row", Category: "Navigation"},
			{KeyType: tea.KeyPgDown, Command: CmdPageDown, Description: "Page down", Category: "Navigation"},
			{KeyType: tea.KeyCtrlD, Command: CmdPageDown, Description: "Page down", Category: "Navigation"},
			{KeyType: tea.KeyPgUp, Command: CmdPageUp, Description: "Page up", Category: "Navigation"},
			{KeyType: tea.KeyCtrlU, Command: CmdPageUp, Description: "Page up", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'g', Command: CmdTop, Description: "First row", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'G', Command: CmdBottom, Description: "Last row", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'l', Command: CmdColumnNext, Description: "Next column", Category: "Navigation"},
			{KeyType: tea.KeyRight, Command: CmdColumnNext, Description: "Next column", Category: "Navigation"},
			{KeyType: tea.KeyTab, Command: CmdColumnNext, Description: "Next column", Category: "Navigation"},
			{KeyType: tea.KeyRunes, Rune: 'h', Command: CmdColumnPrev, Description: "Previous column", Category: "Navigation"},
			{KeyType: tea.KeyLeft, Command: CmdColumnPrev, Description: "Previous column", Category: "Navigation"},
			{KeyType: tea.KeyShiftTab, Command: CmdColumnPrev, Description: "Previous column", Category: "Navigation"},

			{KeyType: tea.KeyRunes, Rune: 's', Command: CmdCycleSort, Description: "Cycle sort on column", Category: "View"},
			{KeyType: tea.KeyRunes, Rune: '/', Command: CmdEnterSearchMode, Description: "Search patient ID", Category: "View"},
			{KeyType: tea.KeyRunes, Rune: 'f', Command: CmdOpenFilter, Description: "Filter by status and type", Category: "View"},
			{KeyType: tea.KeyEsc, Command: CmdClearSearch, Description: "Clear search", Category: "View"},
			{KeyType: tea.KeyRunes, Rune: 'r', Command: CmdReset, Description: "Reset all criteria", Category: "View"},
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "Toggle help", Category: "View"},

			{KeyType: tea.KeyRunes, Rune: 'y', Command: CmdYankLink, Description: "Quit and print view link", Category: "Application"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "Quit", Category: "Application"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}

// Search mode only binds the keys that leave it; everything else goes to
// the text input.
func defaultSearchBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeSearch,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEnter, Command: CmdConfirmSearch, Description: "Keep search", Category: "Search"},
			{KeyType: tea.KeyTab, Command: CmdConfirmSearch, Description: "Keep search", Category: "Search"},
			{KeyType: tea.KeyEsc, Command: CmdCancelSearch, Description: "Clear search", Category: "Search"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}

func defaultFilterBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeFilter,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdOptionDown, Description: "Next option", Category: "Filter"},
			{KeyType: tea.KeyDown, Command: CmdOptionDown, Description: "Next option", Category: "Filter"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdOptionUp, Description: "Previous option", Category: "Filter"},
			{KeyType: tea.KeyUp, Command: CmdOptionUp, Description: "Previous option", Category: "Filter"},
			{KeyType: tea.KeySpace, Command: CmdToggleOption, Description: "Toggle option", Category: "Filter"},
			{KeyType: tea.KeyRunes, Rune: ' ', Command: CmdToggleOption, Description: "Toggle option", Category: "Filter"},
			{KeyType: tea.KeyRunes, Rune: 'x', Command: CmdToggleOption, Description: "Toggle option", Category: "Filter"},
			{KeyType: tea.KeyRunes, Rune: 'c', Command: CmdClearSelections, Description: "Clear selections", Category: "Filter"},
			{KeyType: tea.KeyEnter, Command: CmdCloseFilter, Description: "Apply and close", Category: "Filter"},
			{KeyType: tea.KeyEsc, Command: CmdCloseFilter, Description: "Apply and close", Category: "Filter"},
			{KeyType: tea.KeyRunes, Rune: 'f', Command: CmdCloseFilter, Description: "Apply and close", Category: "Filter"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}
