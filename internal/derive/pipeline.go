package derive

import (
	"sync"

	"github.com/pact-ai/resdash/internal/criteria"
	"github.com/pact-ai/resdash/internal/resource"
)

// Stats counts how often each stage actually recomputed.
type Stats struct {
	Filters int
	Sorts   int
}

// View is the derived output for one snapshot and criteria.
type View struct {
	Rows  []resource.Record
	Total int
}

type filterKey struct {
	revision uint64
	term     string
	statuses criteria.Set[resource.ProcessingState]
	types    criteria.Set[string]
}

func (k filterKey) equal(o filterKey) bool {
	return k.revision == o.revision && k.term == o.term &&
		k.statuses.Equal(o.statuses) && k.types.Equal(o.types)
}

// Pipeline memoizes Filter and Sort. Filtering reruns only when the
// snapshot revision, effective term, statuses or types change; sorting
// reruns only when the filtered rows or the sort spec change. Changing
// SearchTerm alone recomputes nothing.
type Pipeline struct {
	mu sync.Mutex

	haveFilter bool
	fKey       filterKey
	filtered   []resource.Record
	// filterGen increments whenever filtered is replaced.
	filterGen uint64

	haveSort bool
	sGen     uint64
	sSpec    *criteria.SortSpec
	sorted   []resource.Record

	stats Stats
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Derive returns the visible rows for snap under c. The returned slice is
// shared with the cache and must not be modified.
func (p *Pipeline) Derive(snap *resource.Snapshot, c criteria.Criteria) View {
	p.mu.Lock()
	defer p.mu.Unlock()

	var records []resource.Record
	key := filterKey{term: c.EffectiveSearchTerm, statuses: c.Statuses, types: c.Types}
	if snap != nil {
		records = snap.Records
		key.revision = snap.Revision
	}

	if !p.haveFilter || !key.equal(p.fKey) {
		p.filtered = Filter(records, c)
		p.fKey = key
		p.haveFilter = true
		p.filterGen++
		p.stats.Filters++
	}

	if !p.haveSort || p.sGen != p.filterGen || !sortEqual(p.sSpec, c.Sort) {
		p.sorted = Sort(p.filtered, c.Sort)
		p.sGen = p.filterGen
		p.sSpec = copySpec(c.Sort)
		p.haveSort = true
		p.stats.Sorts++
	}

	return View{Rows: p.sorted, Total: len(records)}
}

// Stats returns the recompute counters.
func (p *Pipeline) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func sortEqual(a, b *criteria.SortSpec) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copySpec(s *criteria.SortSpec) *criteria.SortSpec {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
