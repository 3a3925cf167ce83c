package derive

import (
	"slices"

	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/resource"
)

// Sort returns a sorted copy of records. A nil spec or an unknown column
// keeps input order. The sort is stable in both directions: descending
// negates the comparator rather than reversing the result, so records with
// equal keys stay in input order.
func Sort(records []resource.Record, spec *criteria.SortSpec) []resource.Record {
	out := slices.Clone(records)
	if spec == nil {
		return out
	}
	col, ok := ColumnByID(spec.ColumnID)
	if !ok {
		return out
	}

	cmp := col.compare
	if spec.Direction == criteria.Desc {
		cmp = func(a, b resource.Record) int { return -col.compare(a, b) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}
