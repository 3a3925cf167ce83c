package criteria

import (
	"sync"

	"github.com/pact-ai/resdash/internal/resource"
)

// Listener is notified with the new criteria after every change.
type Listener func(Criteria)

// Store owns the current Criteria. Mutations never fail; unknown states and
// types are kept as opaque values. Listeners run synchronously on the
// mutating goroutine, after the lock is released.
type Store struct {
	mu        sync.RWMutex
	current   Criteria
	listeners map[int]Listener
	order     []int
	nextID    int
}

// NewStore creates a store holding initial.
func NewStore(initial Criteria) *Store {
	return &Store{
		current:   initial,
		listeners: make(map[int]Listener),
	}
}

// Criteria returns the current value.
func (s *Store) Criteria() Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// update applies fn atomically and notifies listeners in subscription order.
func (s *Store) update(fn func(Criteria) Criteria) Criteria {
	s.mu.Lock()
	next := fn(s.current)
	s.current = next
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}

// SetSearchTerm records the raw search input. The effective term is left to
// the debouncer.
func (s *Store) SetSearchTerm(term string) Criteria {
	return s.update(func(c Criteria) Criteria { return c.WithSearchTerm(term) })
}

// SetEffectiveSearchTerm publishes the debounced search term.
func (s *Store) SetEffectiveSearchTerm(term string) Criteria {
	return s.update(func(c Criteria) Criteria { return c.WithEffectiveSearchTerm(term) })
}

func (s *Store) ToggleStatus(state resource.ProcessingState) Criteria {
	return s.update(func(c Criteria) Criteria { return c.WithToggledStatus(state) })
}

func (s *Store) ToggleType(resourceType string) Criteria {
	return s.update(func(c Criteria) Criteria { return c.WithToggledType(resourceType) })
}

// ClearSelections empties both selection sets, keeping search and sort.
func (s *Store) ClearSelections() Criteria {
	return s.update(Criteria.WithClearedSelections)
}

// SetSort cycles the sort on columnID.
func (s *Store) SetSort(columnID string) Criteria {
	return s.update(func(c Criteria) Criteria { return c.WithCycledSort(columnID) })
}

// Reset restores every field to its default in a single change.
func (s *Store) Reset() Criteria {
	return s.update(func(Criteria) Criteria { return Default() })
}

// Replace swaps in c wholesale, e.g. after opening a new view link.
func (s *Store) Replace(c Criteria) Criteria {
	return s.update(func(Criteria) Criteria { return c })
}
