// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declared per mode so that Update dispatches on a Command
// rather than on raw key strings, and the help overlay is generated from
// the same table.
package keymap

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
type Mode string

const (
	ModeNormal Mode = "normal" // Browsing the table
	ModeSearch Mode = "search" // Typing in the search box (after /)
	ModeFilter Mode = "filter" // Filter modal open (after f)
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Normal mode commands
const (
	// Table navigation
	CmdRowDown    Command = "row_down"
	CmdRowUp      Command = "row_up"
	CmdPageDown   Command = "page_down"
	CmdPageUp     Command = "page_up"
	CmdTop        Command = "top"
	CmdBottom     Command = "bottom"
	CmdColumnNext Command = "column_next"
	CmdColumnPrev Command = "column_prev"

	// Criteria
	CmdCycleSort   Command = "cycle_sort"
	CmdClearSearch Command = "clear_search"
	CmdReset       Command = "reset"

	// Mode entry
	CmdEnterSearchMode Command = "enter_search_mode"
	CmdOpenFilter      Command = "open_filter"
	CmdToggleHelp      Command = "toggle_help"

	// Exit
	CmdYankLink Command = "yank_link"
	CmdQuit     Command = "quit"
)

// Search mode commands
const (
	CmdConfirmSearch Command = "confirm_search"
	CmdCancelSearch  Command = "cancel_search"
)

// Filter modal commands
const (
	CmdOptionDown      Command = "option_down"
	CmdOptionUp        Command = "option_up"
	CmdToggleOption    Command = "toggle_option"
	CmdClearSelections Command = "clear_selections"
	CmdCloseFilter     Command = "close_filter"
)

// Modifier represents keyboard modifiers.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModAlt  Modifier = 1 << iota
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m&ModAlt != 0 {
		return "alt+"
	}
	return ""
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the key for this binding. For printable keys use
	// tea.KeyRunes and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	Modifiers   Modifier
	Command     Command
	Description string

	// Category groups related bindings together in help display.
	Category string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if msg.Alt != (kb.Modifiers&ModAlt != 0) {
		return false
	}

	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return false
	}
	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()
	if kb.KeyType != tea.KeyRunes {
		return prefix + kb.KeyType.String()
	}
	if kb.Rune == ' ' {
		return prefix + "space"
	}
	return prefix + string(kb.Rune)
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	Name        string
	Description string
	Modes       map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// GetBindingsForCommand returns all bindings that trigger a specific command.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	var result []KeyBinding
	for _, binding := range km.GetModeBindings(mode) {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// GetCategories returns the categories of a mode's bindings in first-seen
// order.
func (km *Keymap) GetCategories(mode Mode) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, binding := range km.GetModeBindings(mode) {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// HelpEntry is one line of the help overlay: all keys for a command.
type HelpEntry struct {
	Keys        []string
	Description string
}

// Help groups a mode's bindings by category, merging bindings that share a
// command into one entry.
func (km *Keymap) Help(mode Mode) map[string][]HelpEntry {
	result := make(map[string][]HelpEntry)
	index := make(map[Command]int)
	for _, binding := range km.GetModeBindings(mode) {
		cat := binding.Category
		if cat == "" {
			cat = "Other"
		}
		if i, ok := index[binding.Command]; ok {
			result[cat][i].Keys = append(result[cat][i].Keys, binding.String())
			continue
		}
		index[binding.Command] = len(result[cat])
		result[cat] = append(result[cat], HelpEntry{
			Keys:        []string{binding.String()},
			Description: binding.Description,
		})
	}
	return result
}
