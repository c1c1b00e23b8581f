package relation

import (
	"iter"
	"slices"
)

// bucket holds the parallel values of one pair. Both views of the
// underlying relation point at the same bucket.
type bucket[V any] struct {
	values []V
}

// Multi stores an ordered list of values per (origin, destination) pair,
// one per parallel edge.
type Multi[V any] struct {
	rel       *Relation[*bucket[V]]
	numValues int
}

// NewMulti creates an empty multi-valued relation.
func NewMulti[V any]() *Multi[V] {
	return &Multi[V]{rel: New[*bucket[V]]()}
}

// NewMultiWithCapacity creates an empty multi-valued relation with room for
// n items.
func NewMultiWithCapacity[V any](n int) *Multi[V] {
	return &Multi[V]{rel: NewWithCapacity[*bucket[V]](n)}
}

// AddItem registers idx as a valid endpoint.
func (m *Multi[V]) AddItem(idx int) bool {
	return m.rel.AddItem(idx)
}

// ContainsItem reports whether idx is a registered endpoint.
func (m *Multi[V]) ContainsItem(idx int) bool {
	return m.rel.ContainsItem(idx)
}

// NumItems returns the number of registered endpoints.
func (m *Multi[V]) NumItems() int {
	return m.rel.NumItems()
}

// NumPairs returns the number of distinct pairs.
func (m *Multi[V]) NumPairs() int {
	return m.rel.NumPairs()
}

// NumValues returns the total number of values, counting every parallel
// value of every pair.
func (m *Multi[V]) NumValues() int {
	return m.numValues
}

// AddPair appends v to the values of (orig, dest), creating the pair when
// needed. It only fails when an endpoint is unregistered.
func (m *Multi[V]) AddPair(orig, dest int, v V) bool {
	if b, ok := m.rel.Value(orig, dest); ok {
		b.values = append(b.values, v)
		m.numValues++
		return true
	}
	if !m.rel.AddPair(orig, dest, &bucket[V]{values: []V{v}}) {
		return false
	}
	m.numValues++
	return true
}

// UpdateValue overwrites the pos-th parallel value of (orig, dest).
func (m *Multi[V]) UpdateValue(orig, dest, pos int, v V) bool {
	b, ok := m.rel.Value(orig, dest)
	if !ok || pos < 0 || pos >= len(b.values) {
		return false
	}
	b.values[pos] = v
	return true
}

// RemoveValue deletes the pos-th parallel value of (orig, dest). The pair
// is removed with its last value.
func (m *Multi[V]) RemoveValue(orig, dest, pos int) bool {
	b, ok := m.rel.Value(orig, dest)
	if !ok || pos < 0 || pos >= len(b.values) {
		return false
	}
	if len(b.values) == 1 {
		return m.RemovePair(orig, dest)
	}
	b.values = slices.Delete(b.values, pos, pos+1)
	m.numValues--
	return true
}

// RemovePair deletes (orig, dest) with all of its values.
func (m *Multi[V]) RemovePair(orig, dest int) bool {
	b, ok := m.rel.Value(orig, dest)
	if !ok {
		return false
	}
	m.rel.RemovePair(orig, dest)
	m.numValues -= len(b.values)
	return true
}

// ContainsPair reports whether (orig, dest) has at least one value.
func (m *Multi[V]) ContainsPair(orig, dest int) bool {
	return m.rel.ContainsPair(orig, dest)
}

// Multiplicity returns the number of parallel values of (orig, dest).
func (m *Multi[V]) Multiplicity(orig, dest int) int {
	b, ok := m.rel.Value(orig, dest)
	if !ok {
		return 0
	}
	return len(b.values)
}

// Values returns a copy of the values of (orig, dest) in insertion order.
func (m *Multi[V]) Values(orig, dest int) []V {
	b, ok := m.rel.Value(orig, dest)
	if !ok {
		return nil
	}
	return slices.Clone(b.values)
}

// First returns the first value inserted for (orig, dest).
func (m *Multi[V]) First(orig, dest int) (V, bool) {
	b, ok := m.rel.Value(orig, dest)
	if !ok {
		var zero V
		return zero, false
	}
	return b.values[0], true
}

// IdsFirst yields the origins pointing to dest with their value lists. The
// yielded slices are owned by the relation and must not be modified.
func (m *Multi[V]) IdsFirst(dest int) iter.Seq[Entry[[]V]] {
	return unwrap(m.rel.IdsFirst(dest))
}

// IdsSecond yields the destinations orig points to with their value lists.
// The yielded slices are owned by the relation and must not be modified.
func (m *Multi[V]) IdsSecond(orig int) iter.Seq[Entry[[]V]] {
	return unwrap(m.rel.IdsSecond(orig))
}

// NumFirst returns the number of distinct origins pointing to dest.
func (m *Multi[V]) NumFirst(dest int) int {
	return m.rel.NumFirst(dest)
}

// NumSecond returns the number of distinct destinations orig points to.
func (m *Multi[V]) NumSecond(orig int) int {
	return m.rel.NumSecond(orig)
}

func unwrap[V any](seq iter.Seq[Entry[*bucket[V]]]) iter.Seq[Entry[[]V]] {
	return func(yield func(Entry[[]V]) bool) {
		for e := range seq {
			if !yield(Entry[[]V]{Idx: e.Idx, Value: e.Value.values}) {
				return
			}
		}
	}
}
