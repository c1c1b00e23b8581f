// Package relation implements sparse binary relations over a dense index
// space. A relation keeps two views of the same pairs: the adjacency view
// (origin -> destinations) and the incidence view (destination -> origins).
// Every mutating method updates both views before returning, so a pair is
// visible from either endpoint or from neither.
//
// Rows are kept sorted by index. Lookups are binary searches and every
// stream is produced in ascending index order, which keeps traversal
// deterministic for seeded simulations.
package relation

import (
	"cmp"
	"iter"
	"slices"
)

// Entry is one element of a relation row: the index at the other end of
// the pair and the value stored for the pair.
type Entry[V any] struct {
	Idx   int
	Value V
}

func compareEntry[V any](e Entry[V], idx int) int {
	return cmp.Compare(e.Idx, idx)
}

func findEntry[V any](row []Entry[V], idx int) (int, bool) {
	return slices.BinarySearchFunc(row, idx, compareEntry[V])
}

// Relation stores at most one value per (origin, destination) pair.
type Relation[V any] struct {
	adjacency [][]Entry[V] // adjacency[orig] = destinations of orig
	incidence [][]Entry[V] // incidence[dest] = origins of dest
	numPairs  int
}

// New creates an empty relation.
func New[V any]() *Relation[V] {
	return &Relation[V]{}
}

// NewWithCapacity creates an empty relation with room for n items.
func NewWithCapacity[V any](n int) *Relation[V] {
	if n < 0 {
		n = 0
	}
	return &Relation[V]{
		adjacency: make([][]Entry[V], 0, n),
		incidence: make([][]Entry[V], 0, n),
	}
}

// AddItem registers idx as a valid endpoint with empty adjacency and
// incidence rows. Indices below idx that were never registered are
// registered too. It returns false if idx was already registered.
func (r *Relation[V]) AddItem(idx int) bool {
	if idx < 0 || idx < len(r.adjacency) {
		return false
	}
	for len(r.adjacency) <= idx {
		r.adjacency = append(r.adjacency, nil)
		r.incidence = append(r.incidence, nil)
	}
	return true
}

// ContainsItem reports whether idx is a registered endpoint.
func (r *Relation[V]) ContainsItem(idx int) bool {
	return idx >= 0 && idx < len(r.adjacency)
}

// NumItems returns the number of registered endpoints.
func (r *Relation[V]) NumItems() int {
	return len(r.adjacency)
}

// NumPairs returns the number of pairs in the relation.
func (r *Relation[V]) NumPairs() int {
	return r.numPairs
}

// AddPair inserts (orig, dest) with value v. It returns false when either
// endpoint is unregistered or the pair already exists; the existing value
// is never overwritten.
func (r *Relation[V]) AddPair(orig, dest int, v V) bool {
	if !r.ContainsItem(orig) || !r.ContainsItem(dest) {
		return false
	}
	pos, found := findEntry(r.adjacency[orig], dest)
	if found {
		return false
	}
	r.adjacency[orig] = slices.Insert(r.adjacency[orig], pos, Entry[V]{Idx: dest, Value: v})

	pos, _ = findEntry(r.incidence[dest], orig)
	r.incidence[dest] = slices.Insert(r.incidence[dest], pos, Entry[V]{Idx: orig, Value: v})

	r.numPairs++
	return true
}

// UpdatePair overwrites the value of an existing pair. It returns false if
// the pair does not exist.
func (r *Relation[V]) UpdatePair(orig, dest int, v V) bool {
	if !r.ContainsItem(orig) || !r.ContainsItem(dest) {
		return false
	}
	pos, found := findEntry(r.adjacency[orig], dest)
	if !found {
		return false
	}
	r.adjacency[orig][pos].Value = v

	pos, _ = findEntry(r.incidence[dest], orig)
	r.incidence[dest][pos].Value = v
	return true
}

// RemovePair deletes (orig, dest). It returns false if the pair does not
// exist.
func (r *Relation[V]) RemovePair(orig, dest int) bool {
	if !r.ContainsItem(orig) || !r.ContainsItem(dest) {
		return false
	}
	pos, found := findEntry(r.adjacency[orig], dest)
	if !found {
		return false
	}
	r.adjacency[orig] = slices.Delete(r.adjacency[orig], pos, pos+1)

	pos, _ = findEntry(r.incidence[dest], orig)
	r.incidence[dest] = slices.Delete(r.incidence[dest], pos, pos+1)

	r.numPairs--
	return true
}

// ContainsPair reports whether (orig, dest) is in the relation.
func (r *Relation[V]) ContainsPair(orig, dest int) bool {
	if !r.ContainsItem(orig) || !r.ContainsItem(dest) {
		return false
	}
	_, found := findEntry(r.adjacency[orig], dest)
	return found
}

// Value returns the value stored for (orig, dest).
func (r *Relation[V]) Value(orig, dest int) (V, bool) {
	var zero V
	if !r.ContainsItem(orig) || !r.ContainsItem(dest) {
		return zero, false
	}
	pos, found := findEntry(r.adjacency[orig], dest)
	if !found {
		return zero, false
	}
	return r.adjacency[orig][pos].Value, true
}

// IdsFirst yields the origins pointing to dest (incidence).
func (r *Relation[V]) IdsFirst(dest int) iter.Seq[Entry[V]] {
	return r.stream(r.incidence, dest)
}

// IdsSecond yields the destinations orig points to (adjacency).
func (r *Relation[V]) IdsSecond(orig int) iter.Seq[Entry[V]] {
	return r.stream(r.adjacency, orig)
}

// NumFirst returns the number of origins pointing to dest.
func (r *Relation[V]) NumFirst(dest int) int {
	if !r.ContainsItem(dest) {
		return 0
	}
	return len(r.incidence[dest])
}

// NumSecond returns the number of destinations orig points to.
func (r *Relation[V]) NumSecond(orig int) int {
	if !r.ContainsItem(orig) {
		return 0
	}
	return len(r.adjacency[orig])
}

func (r *Relation[V]) stream(rows [][]Entry[V], idx int) iter.Seq[Entry[V]] {
	return func(yield func(Entry[V]) bool) {
		if idx < 0 || idx >= len(rows) {
			return
		}
		for _, e := range rows[idx] {
			if !yield(e) {
				return
			}
		}
	}
}
