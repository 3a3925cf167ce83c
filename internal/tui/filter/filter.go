package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/resource"
	"github.com/pact-ai/resdash/internal/tui/format"
	"github.com/pact-ai/resdash/internal/tui/keymap"
	"github.com/pact-ai/resdash/internal/tui/styles"
)

// OptionKind distinguishes the two option groups.
type OptionKind int

const (
	KindStatus OptionKind = iota
	KindType
)

// Option is one checkbox in the modal.
type Option struct {
	Kind  OptionKind
	Value string
}

// Label is the checkbox text.
func (o Option) Label() string {
	if o.Kind == KindStatus {
		return format.StateLabel(resource.ProcessingState(o.Value))
	}
	return o.Value
}

// Panel is the filter modal state.
type Panel struct {
	store   *criteria.Store
	options []Option
	cursor  int
}

// New builds the modal for records. Options are the distinct states and
// types in first-seen order, followed by any selected values the data does
// not contain so that stale link selections can still be cleared.
func New(store *criteria.Store, records []resource.Record) *Panel {
	p := &Panel{store: store}
	p.SetRecords(records)
	return p
}

// SetRecords rebuilds the option list, e.g. after a snapshot reload. The
// cursor is clamped to the new list.
func (p *Panel) SetRecords(records []resource.Record) {
	c := p.store.Criteria()

	states := resource.DistinctStates(records)
	for _, s := range c.Statuses.Values() {
		if !slices.Contains(states, s) {
			states = append(states, s)
		}
	}
	types := resource.DistinctTypes(records)
	for _, t := range c.Types.Values() {
		if !slices.Contains(types, t) {
			types = append(types, t)
		}
	}

	p.options = p.options[:0]
	for _, s := range states {
		p.options = append(p.options, Option{Kind: KindStatus, Value: string(s)})
	}
	for _, t := range types {
		p.options = append(p.options, Option{Kind: KindType, Value: t})
	}
	p.cursor = max(0, min(p.cursor, len(p.options)-1))
}

// Options returns the checkbox list.
func (p *Panel) Options() []Option {
	return p.options
}

// Cursor returns the highlighted option index.
func (p *Panel) Cursor() int {
	return p.cursor
}

// IsSelected reports whether o is checked in the current criteria.
func (p *Panel) IsSelected(o Option) bool {
	c := p.store.Criteria()
	if o.Kind == KindStatus {
		return c.Statuses.Contains(resource.ProcessingState(o.Value))
	}
	return c.Types.Contains(o.Value)
}

// Toggle flips the option under the cursor.
func (p *Panel) Toggle() {
	if len(p.options) == 0 {
		return
	}
	o := p.options[p.cursor]
	if o.Kind == KindStatus {
		p.store.ToggleStatus(resource.ProcessingState(o.Value))
	} else {
		p.store.ToggleType(o.Value)
	}
}

// InputResult captures the result of handling a command in filter mode.
type InputResult struct {
	ExitMode bool // Whether to leave filter mode
}

// HandleCommand applies a filter-mode command.
func (p *Panel) HandleCommand(cmd keymap.Command) InputResult {
	switch cmd {
	case keymap.CmdOptionDown:
		if p.cursor < len(p.options)-1 {
			p.cursor++
		}
	case keymap.CmdOptionUp:
		if p.cursor > 0 {
			p.cursor--
		}
	case keymap.CmdToggleOption:
		p.Toggle()
	case keymap.CmdClearSelections:
		p.store.ClearSelections()
	case keymap.CmdCloseFilter:
		return InputResult{ExitMode: true}
	}
	return InputResult{}
}

// RenderPanel renders the modal at the given outer width.
func RenderPanel(p *Panel, width int) string {
	s := styles.Active()
	var b strings.Builder

	b.WriteString(s.Title.Render("Filter Resources"))
	b.WriteString("\n")

	section := OptionKind(-1)
	for i, o := range p.options {
		if o.Kind != section {
			section = o.Kind
			if i > 0 {
				b.WriteString("\n")
			}
			title := "Status"
			if section == KindType {
				title = "Resource Type"
			}
			b.WriteString(s.SectionTitle.Render(title))
			b.WriteString("\n")
		}

		cursor := "  "
		if i == p.cursor {
			cursor = s.OptionCursor.Render("> ")
		}
		checkbox := s.CheckboxEmpty.Render("[ ]")
		if p.IsSelected(o) {
			checkbox = s.Checkbox.Render("[✓]")
		}
		label := o.Label()
		if o.Kind == KindStatus {
			label = s.StateBadge(resource.ProcessingState(o.Value)).Render(label)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, checkbox, label)
	}
	if len(p.options) == 0 {
		b.WriteString(s.Muted.Render("No records loaded."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Muted.Render("[space] toggle  [c] clear  [enter/esc] apply and close"))

	return s.Modal.Width(max(20, width-4)).Render(b.String())
}
