package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pact-ai/resdash/internal/derive"
	"github.com/pact-ai/resdash/internal/errors"
	"github.com/pact-ai/resdash/internal/tui/keymap"
	"github.com/pact-ai/resdash/internal/tui/msg"
)

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch v := message.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.search.Width = max(10, v.Width-8)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(v)

	case msg.SearchDebounceMsg:
		if term, ok := m.debouncer.Fire(v.Token); ok {
			m.store.SetEffectiveSearchTerm(term)
			m.refresh()
		}
		return m, nil

	case msg.SnapshotMsg:
		if v.Err != nil {
			m.errorMsg = reloadErrorText(v.Err)
			m.logger.LogError("keeping previous snapshot", v.Err)
			return m, nil
		}
		m.snapshot = v.Snapshot
		m.errorMsg = ""
		m.filter.SetRecords(v.Snapshot.Records)
		m.refresh()
		return m, nil

	case msg.ErrMsg:
		m.errorMsg = errorText(v.Err, "something went wrong")
		m.logger.LogError("dashboard error", v.Err)
		return m, nil
	}
	return m, nil
}

// genericReloadError is shown for reload failures whose text is not meant
// for users; the details go to the debug log.
const genericReloadError = "failed to reload data"

func reloadErrorText(err error) string {
	if errors.IsUserFacing(err) {
		return "reload failed: " + err.Error()
	}
	return genericReloadError
}

// errorText returns err's message when it is safe to show, otherwise
// fallback.
func errorText(err error, fallback string) string {
	if errors.IsUserFacing(err) {
		return err.Error()
	}
	return fallback
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keymap.GetBinding(key, m.mode)

	switch m.mode {
	case keymap.ModeSearch:
		if !ok {
			return m.updateSearchInput(key)
		}
		return m.handleSearchCommand(cmd)
	case keymap.ModeFilter:
		if !ok {
			return m, nil
		}
		if cmd == keymap.CmdQuit {
			return m.quit(false)
		}
		if m.filter.HandleCommand(cmd).ExitMode {
			m.mode = keymap.ModeNormal
		}
		m.refresh()
		return m, nil
	default:
		if !ok {
			return m, nil
		}
		return m.handleNormalCommand(cmd)
	}
}

func (m Model) handleNormalCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	page := m.pageSize()
	switch cmd {
	case keymap.CmdRowDown:
		m.rowCursor++
	case keymap.CmdRowUp:
		m.rowCursor--
	case keymap.CmdPageDown:
		m.rowCursor += page
	case keymap.CmdPageUp:
		m.rowCursor -= page
	case keymap.CmdTop:
		m.rowCursor = 0
	case keymap.CmdBottom:
		m.rowCursor = len(m.view.Rows) - 1
	case keymap.CmdColumnNext:
		m.colCursor = (m.colCursor + 1) % len(derive.Columns())
	case keymap.CmdColumnPrev:
		n := len(derive.Columns())
		m.colCursor = (m.colCursor + n - 1) % n

	case keymap.CmdCycleSort:
		m.store.SetSort(m.sortColumnID())
		m.refresh()
	case keymap.CmdClearSearch:
		m.debouncer.Cancel()
		m.search.SetValue("")
		m.store.SetSearchTerm("")
		m.store.SetEffectiveSearchTerm("")
		m.refresh()
	case keymap.CmdReset:
		m.debouncer.Cancel()
		m.search.SetValue("")
		m.store.Reset()
		m.colCursor = 0
		m.refresh()

	case keymap.CmdEnterSearchMode:
		m.mode = keymap.ModeSearch
		m.showHelp = false
		return m, m.search.Focus()
	case keymap.CmdOpenFilter:
		m.mode = keymap.ModeFilter
		m.showHelp = false
	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp

	case keymap.CmdYankLink:
		return m.quit(true)
	case keymap.CmdQuit:
		return m.quit(false)
	}
	m.clampCursor()
	return m, nil
}

func (m Model) handleSearchCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	switch cmd {
	case keymap.CmdConfirmSearch:
		m.mode = keymap.ModeNormal
		m.search.Blur()
	case keymap.CmdCancelSearch:
		m.mode = keymap.ModeNormal
		m.search.Blur()
		m.debouncer.Cancel()
		m.search.SetValue("")
		m.store.SetSearchTerm("")
		m.store.SetEffectiveSearchTerm("")
		m.refresh()
	case keymap.CmdQuit:
		return m.quit(false)
	}
	return m, nil
}

// updateSearchInput forwards a key to the text input and, if the text
// changed, records the raw term and restarts the debounce window.
func (m Model) updateSearchInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.search.Value()
	var inputCmd tea.Cmd
	m.search, inputCmd = m.search.Update(key)

	term := m.search.Value()
	if term == before {
		return m, inputCmd
	}
	m.store.SetSearchTerm(term)
	return m, tea.Batch(inputCmd, m.scheduleSearch(term))
}

// scheduleSearch debounces term into the effective search term. A zero
// delay applies it immediately.
func (m *Model) scheduleSearch(term string) tea.Cmd {
	tok := m.debouncer.Schedule(term)
	if m.debouncer.Delay() == 0 {
		if v, ok := m.debouncer.Fire(tok); ok {
			m.store.SetEffectiveSearchTerm(v)
			m.refresh()
		}
		return nil
	}
	return tea.Tick(m.debouncer.Delay(), func(time.Time) tea.Msg {
		return msg.SearchDebounceMsg{Token: tok}
	})
}

func (m Model) quit(yank bool) (tea.Model, tea.Cmd) {
	m.quitting = true
	m.yanked = yank
	m.debouncer.Cancel()
	if m.stopSync != nil {
		m.stopSync()
	}
	m.logger.Info("dashboard closed", "link", m.address.String(), "visible", len(m.view.Rows))
	return m, tea.Quit
}
