// Package filter provides the status/type selection modal for the resdash
// TUI.
//
// The modal lists every processing state and resource type observed in the
// full dataset as checkboxes. Toggling an option writes straight to the
// criteria store, so the table behind the modal updates immediately. "Clear"
// empties both selections and leaves the search term alone.
//
//	p := filter.New(store, snapshot.Records)
//	result := p.HandleCommand(cmd)
//	if result.ExitMode {
//	    // back to normal mode
//	}
//	view := filter.RenderPanel(p, width)
package filter
