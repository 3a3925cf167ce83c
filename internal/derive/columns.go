// Package derive turns a snapshot and a set of criteria into the visible
// rows: filter first, then sort. Both steps are pure; Pipeline adds
// memoization on top.
package derive

import (
	"strings"
	"time"

	"github.com/pact-ai/resdash/internal/resource"
)

// Column IDs shown by the table, in display order.
const (
	ColPatientID   = "patientId"
	ColType        = "type"
	ColStatus      = "status"
	ColFHIRVersion = "fhirVersion"
	ColCreated     = "created"
	ColProcessed   = "processed"
	ColSummary     = "summary"
	ColAIInsight   = "aiInsight"
)

// Kind decides how a column's values compare.
type Kind int

const (
	// KindText compares strings by code point.
	KindText Kind = iota
	// KindTime compares chronologically.
	KindTime
	// KindEnum compares by declaration rank.
	KindEnum
)

// Column describes one sortable table column.
type Column struct {
	ID     string
	Header string
	Kind   Kind

	// Exactly one accessor is set, matching Kind. The bool result is false
	// when the record has no value for the column.
	Text func(resource.Record) (string, bool)
	Time func(resource.Record) (time.Time, bool)
	Rank func(resource.Record) (rank int, tie string)
}

var columns = []Column{
	{
		ID: ColPatientID, Header: "Patient ID", Kind: KindText,
		Text: func(r resource.Record) (string, bool) { return r.PatientID(), true },
	},
	{
		ID: ColType, Header: "Type", Kind: KindText,
		Text: func(r resource.Record) (string, bool) { return r.ResourceType, true },
	},
	{
		ID: ColStatus, Header: "Status", Kind: KindEnum,
		Rank: func(r resource.Record) (int, string) { return r.State.Rank(), string(r.State) },
	},
	{
		ID: ColFHIRVersion, Header: "FHIR Version", Kind: KindEnum,
		Rank: func(r resource.Record) (int, string) { return r.Version.Rank(), string(r.Version) },
	},
	{
		ID: ColCreated, Header: "Created", Kind: KindTime,
		Time: func(r resource.Record) (time.Time, bool) { return r.CreatedTime, true },
	},
	{
		ID: ColProcessed, Header: "Processed", Kind: KindTime,
		Time: func(r resource.Record) (time.Time, bool) {
			if r.ProcessedTime == nil {
				return time.Time{}, false
			}
			return *r.ProcessedTime, true
		},
	},
	{
		ID: ColSummary, Header: "Summary", Kind: KindText,
		Text: func(r resource.Record) (string, bool) { return r.HumanReadable, true },
	},
	{
		ID: ColAIInsight, Header: "AI Insight", Kind: KindText,
		Text: func(r resource.Record) (string, bool) {
			if r.AISummary == nil {
				return "", false
			}
			return *r.AISummary, true
		},
	},
}

// Columns returns the table columns in display order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// ColumnByID looks up a column. IDs are matched case-insensitively.
func ColumnByID(id string) (Column, bool) {
	for _, c := range columns {
		if strings.EqualFold(c.ID, id) {
			return c, true
		}
	}
	return Column{}, false
}

// compare orders a and b ascending by this column. Missing values sort
// before present ones.
func (c Column) compare(a, b resource.Record) int {
	switch c.Kind {
	case KindTime:
		ta, okA := c.Time(a)
		tb, okB := c.Time(b)
		if r, done := compareMissing(okA, okB); done {
			return r
		}
		return ta.Compare(tb)
	case KindEnum:
		ra, tieA := c.Rank(a)
		rb, tieB := c.Rank(b)
		if ra != rb {
			if ra < rb {
				return -1
			}
			return 1
		}
		return strings.Compare(tieA, tieB)
	default:
		sa, okA := c.Text(a)
		sb, okB := c.Text(b)
		if r, done := compareMissing(okA, okB); done {
			return r
		}
		return strings.Compare(sa, sb)
	}
}

func compareMissing(okA, okB bool) (int, bool) {
	switch {
	case okA && okB:
		return 0, false
	case !okA && !okB:
		return 0, true
	case !okA:
		return -1, true
	default:
		return 1, true
	}
}
