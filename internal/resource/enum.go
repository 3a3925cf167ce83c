package resource

import (
	"slices"
	"strings"
)

// ProcessingState is the lifecycle stage of a resource's ingestion and
// analysis. Values outside the known set are kept verbatim.
type ProcessingState string

// Known processing states, in declaration order.
const (
	StateUnspecified ProcessingState = "PROCESSING_STATE_UNSPECIFIED"
	StateNotStarted  ProcessingState = "PROCESSING_STATE_NOT_STARTED"
	StateProcessing  ProcessingState = "PROCESSING_STATE_PROCESSING"
	StateCompleted   ProcessingState = "PROCESSING_STATE_COMPLETED"
	StateFailed      ProcessingState = "PROCESSING_STATE_FAILED"
)

// StatePrefix is the common prefix of every known state token.
const StatePrefix = "PROCESSING_STATE_"

// UNSPECIFIED leads because it is the wire format's zero value; it still
// sorts before NOT_STARTED in status order.
var knownStates = []ProcessingState{
	StateUnspecified,
	StateNotStarted,
	StateProcessing,
	StateCompleted,
	StateFailed,
}

var knownStateStrings = statesAsStrings()

// KnownStates returns the known processing states in declaration order.
func KnownStates() []ProcessingState {
	return slices.Clone(knownStates)
}

// ParseProcessingState normalizes a state token. Both the full form
// ("PROCESSING_STATE_FAILED") and the short form ("failed") of a known state
// are accepted case-insensitively. Unknown tokens are returned unchanged.
func ParseProcessingState(token string) ProcessingState {
	return ProcessingState(normalizeToken(token, StatePrefix, knownStateStrings))
}

// Rank returns the declaration position of the state. Unknown states rank
// after every known state.
func (s ProcessingState) Rank() int {
	return rankOf(string(s), knownStateStrings)
}

// IsKnown reports whether the state is one of the declared values.
func (s ProcessingState) IsKnown() bool {
	return slices.Contains(knownStates, s)
}

// IsTerminal reports whether no further transition is expected.
func (s ProcessingState) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}

func statesAsStrings() []string {
	out := make([]string, len(knownStates))
	for i, s := range knownStates {
		out[i] = string(s)
	}
	return out
}

// FHIRVersion is the schema version tag attached to a resource.
type FHIRVersion string

// Known FHIR versions, in declaration order.
const (
	VersionUnspecified FHIRVersion = "FHIR_VERSION_UNSPECIFIED"
	VersionR4          FHIRVersion = "FHIR_VERSION_R4"
	VersionR4B         FHIRVersion = "FHIR_VERSION_R4B"
)

// VersionPrefix is the common prefix of every known version token.
const VersionPrefix = "FHIR_VERSION_"

var knownVersions = []string{
	string(VersionUnspecified),
	string(VersionR4),
	string(VersionR4B),
}

// ParseFHIRVersion normalizes a version token the same way
// ParseProcessingState does.
func ParseFHIRVersion(token string) FHIRVersion {
	return FHIRVersion(normalizeToken(token, VersionPrefix, knownVersions))
}

// Rank returns the declaration position of the version. Unknown versions
// rank after every known version.
func (v FHIRVersion) Rank() int {
	return rankOf(string(v), knownVersions)
}

// normalizeToken maps short or differently cased spellings of a known token
// onto the canonical one.
func normalizeToken(token, prefix string, known []string) string {
	trimmed := strings.TrimSpace(token)
	upper := strings.ToUpper(trimmed)
	for _, k := range known {
		if upper == k || prefix+upper == k {
			return k
		}
	}
	return trimmed
}

func rankOf(value string, known []string) int {
	if i := slices.Index(known, value); i >= 0 {
		return i
	}
	return len(known)
}
