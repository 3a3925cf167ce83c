package msg

import (
	"github.com/pact-ai/resdash/internal/debounce"
	"github.com/pact-ai/resdash/internal/resource"
)

// SearchDebounceMsg is delivered when a search debounce window closes.
// Only the newest token publishes its term.
type SearchDebounceMsg struct {
	Token debounce.Token
}

// SnapshotMsg carries the result of a snapshot reload. On error Snapshot is
// nil and the current data stays on screen.
type SnapshotMsg struct {
	Snapshot *resource.Snapshot
	Err      error
}

// ErrMsg wraps an error to be displayed in the UI.
type ErrMsg struct {
	Err error
}
