package criteria

import "slices"

// Set is an immutable, insertion-ordered set of string-like values.
// The zero value is an empty set. Every operation returns a new Set.
type Set[T ~string] struct {
	items []T
}

// NewSet builds a set from values, keeping the first occurrence of each.
func NewSet[T ~string](values ...T) Set[T] {
	var s Set[T]
	for _, v := range values {
		if !s.Contains(v) {
			s.items = append(s.items, v)
		}
	}
	return s
}

// Contains reports whether v is a member.
func (s Set[T]) Contains(v T) bool {
	return slices.Contains(s.items, v)
}

// Toggle returns a set with v removed if present, or appended if absent.
func (s Set[T]) Toggle(v T) Set[T] {
	if i := slices.Index(s.items, v); i >= 0 {
		return Set[T]{items: slices.Delete(slices.Clone(s.items), i, i+1)}
	}
	items := make([]T, len(s.items), len(s.items)+1)
	copy(items, s.items)
	return Set[T]{items: append(items, v)}
}

// Len returns the number of members.
func (s Set[T]) Len() int { return len(s.items) }

// IsEmpty reports whether the set has no members. An empty selection
// constrains nothing.
func (s Set[T]) IsEmpty() bool { return len(s.items) == 0 }

// Values returns the members in insertion order as a fresh slice.
func (s Set[T]) Values() []T { return slices.Clone(s.items) }

// Equal reports whether both sets hold the same members, ignoring order.
func (s Set[T]) Equal(o Set[T]) bool {
	if len(s.items) != len(o.items) {
		return false
	}
	for _, v := range s.items {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}
