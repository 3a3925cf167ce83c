// Package format renders record fields as table cell text.
package format

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pact-ai/resdash/internal/derive"
	"github.com/pact-ai/resdash/internal/resource"
)

// NotAvailable is shown for missing optional fields.
const NotAvailable = "N/A"

// DefaultDateLayout renders timestamps like "Jul 10, 2025, 10:00:00 AM".
const DefaultDateLayout = "Jan 2, 2006, 3:04:05 PM"

// Formatter holds presentation settings shared by every cell.
type Formatter struct {
	DateLayout string
	Location   *time.Location
}

// New returns a formatter using layout (DefaultDateLayout when empty) in
// the local time zone.
func New(layout string) Formatter {
	if layout == "" {
		layout = DefaultDateLayout
	}
	return Formatter{DateLayout: layout, Location: time.Local}
}

// StateLabel strips the PROCESSING_STATE_ prefix. Unknown values are shown
// as given.
func StateLabel(s resource.ProcessingState) string {
	if s == "" {
		return NotAvailable
	}
	return strings.TrimPrefix(string(s), resource.StatePrefix)
}

// VersionLabel strips the FHIR_VERSION_ prefix.
func VersionLabel(v resource.FHIRVersion) string {
	if v == "" {
		return NotAvailable
	}
	return strings.TrimPrefix(string(v), resource.VersionPrefix)
}

// Time formats t.
func (f Formatter) Time(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	if f.Location != nil {
		t = t.In(f.Location)
	}
	return t.Format(f.DateLayout)
}

// OptionalTime formats t or returns NotAvailable.
func (f Formatter) OptionalTime(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return f.Time(*t)
}

// OptionalText returns *s or NotAvailable.
func OptionalText(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}

// Cell returns the display text of one column for r.
func (f Formatter) Cell(r resource.Record, columnID string) string {
	switch columnID {
	case derive.ColPatientID:
		return r.PatientID()
	case derive.ColType:
		if r.ResourceType == "" {
			return NotAvailable
		}
		return r.ResourceType
	case derive.ColStatus:
		return StateLabel(r.State)
	case derive.ColFHIRVersion:
		return VersionLabel(r.Version)
	case derive.ColCreated:
		return f.Time(r.CreatedTime)
	case derive.ColProcessed:
		return f.OptionalTime(r.ProcessedTime)
	case derive.ColSummary:
		return r.HumanReadable
	case derive.ColAIInsight:
		return OptionalText(r.AISummary)
	default:
		return ""
	}
}

// Truncate shortens s to at most width terminal cells, ending in an
// ellipsis when anything was cut. Wide runes and escape sequences are
// measured as the terminal draws them.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
