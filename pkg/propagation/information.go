package propagation

import (
	"iter"
	"slices"
)

// Information is one piece of the catalog: its identifier, the user who
// created it and the iteration from which the creator holds it.
type Information[U, I comparable] struct {
	ID        I
	Creator   U
	Timestamp int
}

// PropagatedInformation is a user's record of a piece: the piece index, the
// iteration the record was created or last refreshed, and the sorted set of
// users it was received from.
type PropagatedInformation struct {
	Info      int
	Timestamp int
	Creators  []int
}

// HasCreator reports whether user is among the creators.
func (p PropagatedInformation) HasCreator(user int) bool {
	_, found := slices.BinarySearch(p.Creators, user)
	return found
}

func (p PropagatedInformation) clone() PropagatedInformation {
	p.Creators = slices.Clone(p.Creators)
	return p
}

// mergeCreators returns the sorted union of a and b.
func mergeCreators(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// pieceStore keeps records in insertion order.
type pieceStore struct {
	ids   []int
	items map[int]*PropagatedInformation
}

func newPieceStore() *pieceStore {
	return &pieceStore{items: make(map[int]*PropagatedInformation)}
}

func (s *pieceStore) put(p PropagatedInformation) {
	if old, ok := s.items[p.Info]; ok {
		*old = p
		return
	}
	s.ids = append(s.ids, p.Info)
	s.items[p.Info] = &p
}

func (s *pieceStore) get(info int) (*PropagatedInformation, bool) {
	p, ok := s.items[info]
	return p, ok
}

func (s *pieceStore) contains(info int) bool {
	_, ok := s.items[info]
	return ok
}

func (s *pieceStore) remove(info int) (PropagatedInformation, bool) {
	p, ok := s.items[info]
	if !ok {
		return PropagatedInformation{}, false
	}
	delete(s.items, info)
	if i := slices.Index(s.ids, info); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	}
	return *p, true
}

func (s *pieceStore) len() int { return len(s.ids) }

func (s *pieceStore) all() iter.Seq[PropagatedInformation] {
	return func(yield func(PropagatedInformation) bool) {
		for _, id := range s.ids {
			if !yield(*s.items[id]) {
				return
			}
		}
	}
}
