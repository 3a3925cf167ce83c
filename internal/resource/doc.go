// Package resource defines the clinical-resource processing records shown by
// resdash and the snapshot source that supplies them.
//
// # Main Types
//
//   - [Record]: one immutable processing record
//   - [ProcessingState], [FHIRVersion]: opaque enum tokens with a declaration rank
//   - [Snapshot]: a fully loaded, read-only dataset with a revision number
//   - [Watcher]: reloads a snapshot file when it changes on disk
//
// # Enum Values
//
// Enum fields are opaque strings. The known tokens carry a declaration rank
// used for sorting; anything else is passed through untouched so that data
// from newer producers still filters and displays:
//
//	s := resource.ParseProcessingState("completed") // PROCESSING_STATE_COMPLETED
//	u := resource.ParseProcessingState("ARCHIVED")  // ARCHIVED, unknown
//	s.Rank() < u.Rank()                             // true
//
// # Snapshot Files
//
// [LoadFile] picks a decoder from the file extension (.json, .yaml/.yml,
// .msgpack/.mpk). Every format uses the same wire shape:
//
//	[{"resource": {"metadata": {...}, "humanReadableStr": "...", "aiSummary": "..."}}]
//
// A file that fails validation is rejected as a whole.
package resource
