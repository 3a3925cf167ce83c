// Package msg defines the message types used by the TUI's Bubbletea event loop.
//
// Messages that originate outside the program (snapshot reloads from the
// file watcher) and timer messages (search debounce) live here so that the
// producers do not need to import the TUI package itself.
package msg
