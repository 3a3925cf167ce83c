package derive

import (
	"strings"

	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/resource"
)

// Filter returns the records matching c, in input order. The search uses
// c.EffectiveSearchTerm, never the raw keystroke term.
func Filter(records []resource.Record, c criteria.Criteria) []resource.Record {
	term := strings.ToLower(c.EffectiveSearchTerm)

	out := make([]resource.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, term, c) {
			out = append(out, r)
		}
	}
	return out
}

// Matches applies the three predicates to one record. term must already be
// lower-cased.
func Matches(r resource.Record, term string, c criteria.Criteria) bool {
	if term != "" && !strings.Contains(strings.ToLower(r.PatientID()), term) {
		return false
	}
	if !c.Statuses.IsEmpty() && !c.Statuses.Contains(r.State) {
		return false
	}
	if !c.Types.IsEmpty() && !c.Types.Contains(r.ResourceType) {
		return false
	}
	return true
}
