package filter

import (
	"strings"
	"testing"

	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/resource"
	"github.com/pact-ai/resdash/internal/tui/keymap"
)

func TestNewListsDistinctOptions(t *testing.T) {
	p := New(criteria.NewStore(criteria.Default()), resource.Sample())

	var statuses, types int
	for _, o := range p.Options() {
		switch o.Kind {
		case KindStatus:
			statuses++
		case KindType:
			types++
		}
	}
	if statuses != 5 || types != 6 {
		t.Errorf("options = %d statuses, %d types, want 5 and 6", statuses, types)
	}
	if first := p.Options()[0]; first.Kind != KindStatus || first.Label() != "COMPLETED" {
		t.Errorf("first option = %+v, want COMPLETED status", first)
	}
}

func TestStaleSelectionsStayListed(t *testing.T) {
	store := criteria.NewStore(criteria.Default().WithToggledType("Procedure"))
	p := New(store, resource.Sample())

	last := p.Options()[len(p.Options())-1]
	if last.Kind != KindType || last.Value != "Procedure" {
		t.Errorf("last option = %+v, want the selected Procedure type", last)
	}
	if !p.IsSelected(last) {
		t.Error("Procedure should show as selected")
	}
}

func TestToggleWritesToStore(t *testing.T) {
	store := criteria.NewStore(criteria.Default())
	p := New(store, resource.Sample())

	p.HandleCommand(keymap.CmdToggleOption)
	if !store.Criteria().Statuses.Contains(resource.StateCompleted) {
		t.Fatal("toggling the first option should select COMPLETED")
	}

	// Move to the first type option (after five states) and toggle it.
	for i := 0; i < 5; i++ {
		p.HandleCommand(keymap.CmdOptionDown)
	}
	p.HandleCommand(keymap.CmdToggleOption)
	if !store.Criteria().Types.Contains("Patient") {
		t.Errorf("Types = %v, want Patient selected", store.Criteria().Types.Values())
	}

	p.HandleCommand(keymap.CmdToggleOption)
	if store.Criteria().Types.Contains("Patient") {
		t.Error("second toggle should deselect Patient")
	}
}

func TestCursorBounds(t *testing.T) {
	p := New(criteria.NewStore(criteria.Default()), resource.Sample())

	p.HandleCommand(keymap.CmdOptionUp)
	if p.Cursor() != 0 {
		t.Errorf("Cursor() = %d after moving up from top, want 0", p.Cursor())
	}
	for i := 0; i < 50; i++ {
		p.HandleCommand(keymap.CmdOptionDown)
	}
	if want := len(p.Options()) - 1; p.Cursor() != want {
		t.Errorf("Cursor() = %d, want %d", p.Cursor(), want)
	}

	p.SetRecords(resource.Sample()[:1])
	if p.Cursor() != len(p.Options())-1 {
		t.Errorf("Cursor() = %d after shrinking, want %d", p.Cursor(), len(p.Options())-1)
	}
}

func TestClearKeepsSearch(t *testing.T) {
	store := criteria.NewStore(criteria.Default().
		WithSearchTerm("patient").
		WithToggledStatus(resource.StateFailed).
		WithToggledType("Observation"))
	p := New(store, resource.Sample())

	if res := p.HandleCommand(keymap.CmdClearSelections); res.ExitMode {
		t.Error("clear should not close the modal")
	}
	c := store.Criteria()
	if !c.Statuses.IsEmpty() || !c.Types.IsEmpty() || c.SearchTerm != "patient" {
		t.Errorf("after clear = %+v", c)
	}
}

func TestCloseExits(t *testing.T) {
	p := New(criteria.NewStore(criteria.Default()), nil)
	if !p.HandleCommand(keymap.CmdCloseFilter).ExitMode {
		t.Error("close should exit filter mode")
	}
	// Toggle on an empty list is a no-op.
	p.HandleCommand(keymap.CmdToggleOption)
}

func TestRenderPanel(t *testing.T) {
	store := criteria.NewStore(criteria.Default().WithToggledStatus(resource.StateFailed))
	out := RenderPanel(New(store, resource.Sample()), 60)

	for _, want := range []string{"Filter Resources", "Status", "Resource Type", "FAILED", "Observation", "[✓]", "[ ]"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderPanel() missing %q", want)
		}
	}

	empty := RenderPanel(New(criteria.NewStore(criteria.Default()), nil), 60)
	if !strings.Contains(empty, "No records loaded.") {
		t.Error("empty panel should say no records are loaded")
	}
}
