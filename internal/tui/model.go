package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/debounce"
	"github.com/pact-ai/resdash/internal/derive"
	"github.com/pact-ai/resdash/internal/logging"
	"github.com/pact-ai/resdash/internal/resource"
	"github.com/pact-ai/resdash/internal/tui/filter"
	"github.com/pact-ai/resdash/internal/tui/format"
	"github.com/pact-ai/resdash/internal/tui/keymap"
	"github.com/pact-ai/resdash/internal/urlstate"
)

// Options configures the dashboard.
type Options struct {
	Snapshot *resource.Snapshot
	Store    *criteria.Store
	Address  *urlstate.Address

	// SearchDelay is the quiet window before a typed search applies.
	SearchDelay time.Duration
	DateLayout  string

	// WatchPath, when set, reloads the snapshot whenever the file changes.
	WatchPath string

	Logger *logging.Logger
}

// Model holds the TUI application state
type Model struct {
	// Core components
	store     *criteria.Store
	address   *urlstate.Address
	stopSync  func()
	pipeline  *derive.Pipeline
	debouncer *debounce.Debouncer[string]
	snapshot  *resource.Snapshot
	keymap    *keymap.Keymap
	formatter format.Formatter
	logger    *logging.Logger

	// UI state
	mode      keymap.Mode
	search    textinput.Model
	filter    *filter.Panel
	view      derive.View
	rowCursor int
	rowOffset int
	colCursor int
	width     int
	height    int
	showHelp  bool
	quitting  bool
	yanked    bool
	errorMsg  string
}

// NewModel creates the dashboard model and starts keeping the address in
// step with the store.
func NewModel(opts Options) Model {
	store := opts.Store
	if store == nil {
		store = criteria.NewStore(criteria.Default())
	}
	addr := opts.Address
	if addr == nil {
		addr = urlstate.NewAddress(urlstate.DefaultBase, urlstate.Serialize(store.Criteria()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search patient ID"
	ti.CharLimit = 256
	ti.SetValue(store.Criteria().SearchTerm)

	m := Model{
		store:     store,
		address:   addr,
		stopSync:  urlstate.Sync(store, addr),
		pipeline:  derive.NewPipeline(),
		debouncer: debounce.New[string](opts.SearchDelay),
		snapshot:  opts.Snapshot,
		keymap:    keymap.DefaultKeymap(),
		formatter: format.New(opts.DateLayout),
		logger:    logger.WithComponent("tui"),
		mode:      keymap.ModeNormal,
		search:    ti,
	}
	var records []resource.Record
	if opts.Snapshot != nil {
		records = opts.Snapshot.Records
	}
	m.filter = filter.New(store, records)
	m.refresh()
	return m
}

// refresh re-derives the visible rows and keeps the cursor in range.
func (m *Model) refresh() {
	m.view = m.pipeline.Derive(m.snapshot, m.store.Criteria())
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.view.Rows)
	if m.rowCursor >= n {
		m.rowCursor = n - 1
	}
	if m.rowCursor < 0 {
		m.rowCursor = 0
	}

	page := m.pageSize()
	if m.rowCursor < m.rowOffset {
		m.rowOffset = m.rowCursor
	}
	if m.rowCursor >= m.rowOffset+page {
		m.rowOffset = m.rowCursor - page + 1
	}
	if maxOffset := max(0, n-page); m.rowOffset > maxOffset {
		m.rowOffset = maxOffset
	}
}

// Layout constants
const (
	// Lines used by everything except table rows: title, search box (3),
	// table header and borders (3), footer (3).
	chromeHeight = 10
	minPageSize  = 3
	// Cells wider than this are truncated with an ellipsis.
	maxCellWidth = 40
)

// pageSize is the number of table rows that fit on screen.
func (m Model) pageSize() int {
	if m.height == 0 {
		return 20
	}
	return max(minPageSize, m.height-chromeHeight)
}

// sortColumnID returns the column under the column cursor.
func (m Model) sortColumnID() string {
	cols := derive.Columns()
	return cols[m.colCursor%len(cols)].ID
}

// Link returns the current view link.
func (m Model) Link() string {
	return m.address.String()
}

// Yanked reports whether the user quit asking for the link to be printed.
func (m Model) Yanked() bool {
	return m.yanked
}

// Criteria exposes the current criteria, mainly for tests.
func (m Model) Criteria() criteria.Criteria {
	return m.store.Criteria()
}

// Rows returns the currently visible rows.
func (m Model) Rows() []resource.Record {
	return m.view.Rows
}

// Mode returns the current input mode.
func (m Model) Mode() keymap.Mode {
	return m.mode
}
