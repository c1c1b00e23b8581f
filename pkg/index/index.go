// Package index maps opaque identifiers to dense integer indices.
//
// Every graph in this module stores its vertices through an Index: the edge
// containers only ever see integers in [0, Size), and the Index converts them
// back to the caller's identifiers at the API boundary.
package index

import "iter"

// NotFound is returned by Object2Idx when the identifier is not indexed.
const NotFound = -1

// Index is an append-only bijection between identifiers and the contiguous
// range [0, Size).
type Index[T comparable] struct {
	obj2idx map[T]int
	idx2obj []T
}

// New creates an empty index.
func New[T comparable]() *Index[T] {
	return &Index[T]{
		obj2idx: make(map[T]int),
	}
}

// NewWithCapacity creates an empty index with room for n identifiers.
func NewWithCapacity[T comparable](n int) *Index[T] {
	if n < 0 {
		n = 0
	}
	return &Index[T]{
		obj2idx: make(map[T]int, n),
		idx2obj: make([]T, 0, n),
	}
}

// Add indexes obj and returns its index. Adding an identifier twice is a
// no-op that returns the index assigned the first time.
func (x *Index[T]) Add(obj T) int {
	if idx, ok := x.obj2idx[obj]; ok {
		return idx
	}
	idx := len(x.idx2obj)
	x.obj2idx[obj] = idx
	x.idx2obj = append(x.idx2obj, obj)
	return idx
}

// Object2Idx returns the index of obj, or NotFound.
func (x *Index[T]) Object2Idx(obj T) int {
	if idx, ok := x.obj2idx[obj]; ok {
		return idx
	}
	return NotFound
}

// Idx2Object returns the identifier stored at idx.
func (x *Index[T]) Idx2Object(idx int) (T, bool) {
	if idx < 0 || idx >= len(x.idx2obj) {
		var zero T
		return zero, false
	}
	return x.idx2obj[idx], true
}

// Contains reports whether obj has been indexed.
func (x *Index[T]) Contains(obj T) bool {
	_, ok := x.obj2idx[obj]
	return ok
}

// ContainsIdx reports whether idx is a valid index.
func (x *Index[T]) ContainsIdx(idx int) bool {
	return idx >= 0 && idx < len(x.idx2obj)
}

// Size returns the number of indexed identifiers.
func (x *Index[T]) Size() int {
	return len(x.idx2obj)
}

// Objects yields the identifiers in index order.
func (x *Index[T]) Objects() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, obj := range x.idx2obj {
			if !yield(obj) {
				return
			}
		}
	}
}

// Indices yields (index, identifier) pairs in index order.
func (x *Index[T]) Indices() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for idx, obj := range x.idx2obj {
			if !yield(idx, obj) {
				return
			}
		}
	}
}
