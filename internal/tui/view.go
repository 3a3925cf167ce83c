package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/derive"
	"github.com/pact-ai/resdash/internal/resource"
	"github.com/pact-ai/resdash/internal/tui/filter"
	"github.com/pact-ai/resdash/internal/tui/format"
	"github.com/pact-ai/resdash/internal/tui/keymap"
	"github.com/pact-ai/resdash/internal/tui/styles"
)

// Sort direction indicators shown in the active sort column header.
const (
	sortAscIndicator  = " ▲"
	sortDescIndicator = " ▼"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := styles.Active()
	var b strings.Builder

	b.WriteString(s.Title.Render("Resources"))
	b.WriteString("\n")
	b.WriteString(m.renderSearch())
	b.WriteString("\n")

	switch {
	case m.mode == keymap.ModeFilter:
		b.WriteString(filter.RenderPanel(m.filter, m.contentWidth()))
	case m.showHelp:
		b.WriteString(m.renderHelp())
	default:
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) contentWidth() int {
	if m.width == 0 {
		return 80
	}
	return m.width
}

func (m Model) renderSearch() string {
	s := styles.Active()
	box := s.SearchBox.Width(max(20, m.contentWidth()-4))
	if m.mode == keymap.ModeSearch {
		return box.Render(m.search.View())
	}
	term := m.store.Criteria().SearchTerm
	if term == "" {
		return box.Render(s.Muted.Render("/ Search patient ID"))
	}
	return box.Render(s.SearchPrompt.Render("/ ") + term)
}

// RenderTable renders rows with the given columns, highlighting the header
// at activeCol and the row at selected. Pass -1 to disable either.
func RenderTable(rows [][]string, sort *criteria.SortSpec, activeCol, selected int) string {
	s := styles.Active()
	cols := derive.Columns()

	headers := make([]string, len(cols))
	for i, col := range cols {
		h := col.Header
		if sort != nil && sort.ColumnID == col.ID {
			if sort.Direction == criteria.Desc {
				h += sortDescIndicator
			} else {
				h += sortAscIndicator
			}
		}
		headers[i] = h
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow && col == activeCol:
				return s.ActiveHeader
			case row == table.HeaderRow:
				return s.Header
			case row == selected:
				return s.SelectedRow
			default:
				return s.Cell
			}
		})
	return t.Render()
}

// RowCells formats r as table cells of at most width cells each. The
// status cell is painted with its state badge.
func RowCells(f format.Formatter, r resource.Record, width int) []string {
	cols := derive.Columns()
	cells := make([]string, len(cols))
	for i, col := range cols {
		cell := format.Truncate(f.Cell(r, col.ID), width)
		if col.ID == derive.ColStatus {
			cell = styles.Active().StateBadge(r.State).Render(cell)
		}
		cells[i] = cell
	}
	return cells
}

func (m Model) renderTable() string {
	s := styles.Active()
	if m.snapshot == nil {
		return s.Muted.Render("No snapshot loaded.")
	}
	if len(m.view.Rows) == 0 {
		return s.Muted.Render("No resources match the current criteria.")
	}

	end := min(len(m.view.Rows), m.rowOffset+m.pageSize())
	rows := make([][]string, 0, end-m.rowOffset)
	for _, r := range m.view.Rows[m.rowOffset:end] {
		rows = append(rows, RowCells(m.formatter, r, maxCellWidth))
	}

	return RenderTable(rows, m.store.Criteria().Sort, m.colCursor, m.rowCursor-m.rowOffset)
}

func (m Model) renderHelp() string {
	s := styles.Active()
	var b strings.Builder
	b.WriteString(s.SectionTitle.Render("Keys"))
	b.WriteString("\n")

	help := m.keymap.Help(keymap.ModeNormal)
	for _, cat := range m.keymap.GetCategories(keymap.ModeNormal) {
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(cat))
		b.WriteString("\n")
		for _, e := range help[cat] {
			keys := s.HelpKey.Render(fmt.Sprintf("%-16s", strings.Join(e.Keys, "/")))
			b.WriteString("  " + keys + " " + s.HelpDesc.Render(e.Description) + "\n")
		}
	}
	return s.Modal.Width(max(20, m.contentWidth()-4)).Render(b.String())
}

func (m Model) renderFooter() string {
	s := styles.Active()
	c := m.store.Criteria()

	parts := []string{fmt.Sprintf("Showing %d of %d", len(m.view.Rows), m.view.Total)}
	if c.Sort != nil {
		if col, ok := derive.ColumnByID(c.Sort.ColumnID); ok {
			dir := "asc"
			if c.Sort.Direction == criteria.Desc {
				dir = "desc"
			}
			parts = append(parts, fmt.Sprintf("sorted by %s %s", col.Header, dir))
		}
	}
	if n := c.Statuses.Len() + c.Types.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d filter(s)", n))
	}
	if c.SearchTerm != c.EffectiveSearchTerm {
		parts = append(parts, "searching…")
	}

	line := strings.Join(parts, " · ")
	if m.errorMsg != "" {
		line += "  " + s.Error.Render(m.errorMsg)
	}
	link := s.Link.Render(m.address.String())
	hint := s.Muted.Render("? help  / search  f filter  s sort  y yank  q quit")
	return s.Footer.Render(line + "\n" + link + "\n" + hint)
}
