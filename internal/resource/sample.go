package resource

import "time"

// Sample returns the built-in demonstration dataset: six patients covering
// every known processing state. It is used when no data file is configured.
func Sample() []Record {
	return []Record{
		{
			Identifier:    Identifier{Key: "res-001", UID: "uid-001", PatientID: "patient-001"},
			ResourceType:  "Patient",
			State:         StateCompleted,
			Version:       VersionR4,
			CreatedTime:   ts("2025-07-10T10:00:00Z"),
			FetchTime:     ts("2025-07-10T10:05:00Z"),
			ProcessedTime: tsPtr("2025-07-10T10:10:00Z"),
			HumanReadable: "Patient is a 65-year-old male with hypertension.",
			AISummary:     strPtr("Elderly patient with chronic hypertension."),
		},
		{
			Identifier:    Identifier{Key: "res-002", UID: "uid-002", PatientID: "patient-002"},
			ResourceType:  "Observation",
			State:         StateFailed,
			Version:       VersionR4B,
			CreatedTime:   ts("2025-07-09T08:20:00Z"),
			FetchTime:     ts("2025-07-09T08:25:00Z"),
			HumanReadable: "Blood pressure reading unavailable.",
		},
		{
			Identifier:    Identifier{Key: "res-003", UID: "uid-003", PatientID: "patient-003"},
			ResourceType:  "Condition",
			State:         StateNotStarted,
			Version:       VersionUnspecified,
			CreatedTime:   ts("2025-07-08T07:00:00Z"),
			FetchTime:     ts("2025-07-08T07:05:00Z"),
			HumanReadable: "No processing has started yet for this patient.",
			AISummary:     strPtr("Processing pending."),
		},
		{
			Identifier:    Identifier{Key: "res-004", UID: "uid-004", PatientID: "patient-004"},
			ResourceType:  "MedicationRequest",
			State:         StateProcessing,
			Version:       VersionR4,
			CreatedTime:   ts("2025-07-07T06:30:00Z"),
			FetchTime:     ts("2025-07-07T06:32:00Z"),
			HumanReadable: "Medication request being analyzed.",
			AISummary:     strPtr("Request for blood pressure medication in review."),
		},
		{
			Identifier:    Identifier{Key: "res-005", UID: "uid-005", PatientID: "patient-005"},
			ResourceType:  "AllergyIntolerance",
			State:         StateUnspecified,
			Version:       VersionR4B,
			CreatedTime:   ts("2025-07-06T06:00:00Z"),
			FetchTime:     ts("2025-07-06T06:02:00Z"),
			HumanReadable: "Allergy information unspecified.",
		},
		{
			Identifier:    Identifier{Key: "res-006", UID: "uid-006", PatientID: "patient-006"},
			ResourceType:  "Encounter",
			State:         StateCompleted,
			Version:       VersionUnspecified,
			CreatedTime:   ts("2025-07-05T05:00:00Z"),
			FetchTime:     ts("2025-07-05T05:05:00Z"),
			ProcessedTime: tsPtr("2025-07-05T05:10:00Z"),
			HumanReadable: "Patient visited emergency room for chest pain.",
			AISummary:     strPtr("Possible cardiac condition flagged."),
		},
	}
}

// SampleSnapshot wraps Sample in a snapshot.
func SampleSnapshot() *Snapshot {
	return NewSnapshot("sample", Sample())
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func tsPtr(s string) *time.Time {
	t := ts(s)
	return &t
}

func strPtr(s string) *string {
	return &s
}
