package resource

import "time"

// Identifier locates a record. PatientID is the search key and is unique
// within a snapshot.
type Identifier struct {
	Key       string
	UID       string
	PatientID string
}

// Record is one resource processing record. Records are owned by the
// snapshot they came from and must not be modified.
type Record struct {
	Identifier    Identifier
	ResourceType  string
	State         ProcessingState
	Version       FHIRVersion
	CreatedTime   time.Time
	FetchTime     time.Time
	ProcessedTime *time.Time // nil when not processed (or not reported)
	HumanReadable string
	AISummary     *string // nil when no summary was produced
}

// PatientID is shorthand for r.Identifier.PatientID.
func (r Record) PatientID() string {
	return r.Identifier.PatientID
}

// HasProcessedTime reports whether a processed timestamp is present.
func (r Record) HasProcessedTime() bool {
	return r.ProcessedTime != nil
}

// HasAISummary reports whether an AI summary is present.
func (r Record) HasAISummary() bool {
	return r.AISummary != nil
}

// DistinctStates returns the states observed in records, in first-seen order.
func DistinctStates(records []Record) []ProcessingState {
	seen := make(map[ProcessingState]bool)
	var out []ProcessingState
	for _, r := range records {
		if !seen[r.State] {
			seen[r.State] = true
			out = append(out, r.State)
		}
	}
	return out
}

// DistinctTypes returns the resource types observed in records, in
// first-seen order.
func DistinctTypes(records []Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if !seen[r.ResourceType] {
			seen[r.ResourceType] = true
			out = append(out, r.ResourceType)
		}
	}
	return out
}
