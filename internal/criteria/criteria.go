// Package criteria holds the user's view criteria (search term, status and
// type selections, sort) as an immutable value and a small observable store
// around it.
package criteria

import "github.com/pact-ai/resdash/internal/resource"

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec selects one column and a direction.
type SortSpec struct {
	ColumnID  string
	Direction Direction
}

// Criteria is the full set of user choices that shape the view.
//
// SearchTerm follows keystrokes; EffectiveSearchTerm is the debounced copy
// that filtering actually uses. A nil Sort means input order.
type Criteria struct {
	SearchTerm          string
	EffectiveSearchTerm string
	Statuses            Set[resource.ProcessingState]
	Types               Set[string]
	Sort                *SortSpec
}

// Default returns criteria that constrain nothing.
func Default() Criteria {
	return Criteria{}
}

// IsDefault reports whether c constrains nothing.
func (c Criteria) IsDefault() bool {
	return c.Equal(Default())
}

// Equal compares all fields; selection order is ignored.
func (c Criteria) Equal(o Criteria) bool {
	return c.SearchTerm == o.SearchTerm &&
		c.EffectiveSearchTerm == o.EffectiveSearchTerm &&
		c.Statuses.Equal(o.Statuses) &&
		c.Types.Equal(o.Types) &&
		sortEqual(c.Sort, o.Sort)
}

func sortEqual(a, b *SortSpec) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (c Criteria) WithSearchTerm(term string) Criteria {
	c.SearchTerm = term
	return c
}

func (c Criteria) WithEffectiveSearchTerm(term string) Criteria {
	c.EffectiveSearchTerm = term
	return c
}

func (c Criteria) WithToggledStatus(s resource.ProcessingState) Criteria {
	c.Statuses = c.Statuses.Toggle(s)
	return c
}

func (c Criteria) WithToggledType(t string) Criteria {
	c.Types = c.Types.Toggle(t)
	return c
}

// WithClearedSelections empties the status and type selections and leaves
// search and sort alone.
func (c Criteria) WithClearedSelections() Criteria {
	c.Statuses = Set[resource.ProcessingState]{}
	c.Types = Set[string]{}
	return c
}

// WithCycledSort advances the sort for columnID through
// unsorted -> asc -> desc -> unsorted. Choosing a column other than the
// current one starts at asc.
func (c Criteria) WithCycledSort(columnID string) Criteria {
	switch {
	case c.Sort == nil || c.Sort.ColumnID != columnID:
		c.Sort = &SortSpec{ColumnID: columnID, Direction: Asc}
	case c.Sort.Direction == Asc:
		c.Sort = &SortSpec{ColumnID: columnID, Direction: Desc}
	default:
		c.Sort = nil
	}
	return c
}

// WithSort sets an explicit sort, or clears it when spec is nil.
func (c Criteria) WithSort(spec *SortSpec) Criteria {
	if spec == nil {
		c.Sort = nil
		return c
	}
	s := *spec
	c.Sort = &s
	return c
}
