package urlstate

import (
	"slices"
	"strings"
	"sync"

	"github.com/pact-ai/resdash/internal/criteria"
)

// DefaultBase is the link prefix used when none is configured.
const DefaultBase = "resdash://resources"

// Address is the current view link plus the navigation history that led to
// it. Filter churn rewrites the current entry in place; only explicitly
// opened links add entries.
type Address struct {
	mu      sync.RWMutex
	base    string
	history []string // queries, oldest first; the last one is current
}

// NewAddress creates an address at base with the given initial query.
// base may carry its own query, which is ignored.
func NewAddress(base, query string) *Address {
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		base = DefaultBase
	}
	return &Address{base: base, history: []string{queryPart(query)}}
}

// Query returns the current query string without the leading '?'.
func (a *Address) Query() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.history[len(a.history)-1]
}

// String returns the full current link.
func (a *Address) String() string {
	q := a.Query()
	if q == "" {
		return a.base
	}
	return a.base + "?" + q
}

// Replace rewrites the current entry without adding history.
func (a *Address) Replace(query string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history[len(a.history)-1] = query
}

// Push navigates to a new entry.
func (a *Address) Push(query string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = append(a.history, query)
}

// History returns every entry, oldest first.
func (a *Address) History() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.history)
}

// Criteria parses the current entry.
func (a *Address) Criteria() criteria.Criteria {
	return Parse(a.Query())
}

// Link builds the full link for c under base.
func Link(base string, c criteria.Criteria) string {
	a := NewAddress(base, Serialize(c))
	return a.String()
}

// Sync keeps addr in step with store: every change rewrites the current
// entry in place, skipping the write when the query is unchanged. The
// returned function stops syncing.
func Sync(store *criteria.Store, addr *Address) (stop func()) {
	return store.Subscribe(func(c criteria.Criteria) {
		if q := Serialize(c); q != addr.Query() {
			addr.Replace(q)
		}
	})
}

// Open pushes link onto addr's history and replaces store's criteria with
// what it encodes, keeping any active sort.
func Open(store *criteria.Store, addr *Address, link string) {
	next := Parse(link).WithSort(store.Criteria().Sort)
	addr.Push(Serialize(next))
	store.Replace(next)
}
