package propagation

import (
	"iter"
	"slices"
)

// UserState is what one user knows at the current iteration.
//
// Own pieces were created by the user and not yet propagated. Received
// pieces arrived from neighbours and wait for selection. Propagated and
// discarded pieces are kept so a piece arriving again can be merged. Pieces
// accepted by sight are staged and only become visible when the next
// iteration starts.
type UserState struct {
	user       int
	own        *pieceStore
	received   *pieceStore
	propagated *pieceStore
	discarded  *pieceStore
	seen       map[int]struct{}
	staged     []PropagatedInformation
}

func newUserState(user int) *UserState {
	return &UserState{
		user:       user,
		own:        newPieceStore(),
		received:   newPieceStore(),
		propagated: newPieceStore(),
		discarded:  newPieceStore(),
		seen:       make(map[int]struct{}),
	}
}

// User returns the user index.
func (s *UserState) User() int { return s.user }

// Own yields the user's own unpropagated pieces in creation order.
func (s *UserState) Own() iter.Seq[PropagatedInformation] { return s.own.all() }

// Received yields the received pieces waiting for selection.
func (s *UserState) Received() iter.Seq[PropagatedInformation] { return s.received.all() }

// Propagated yields the pieces the user has already propagated.
func (s *UserState) Propagated() iter.Seq[PropagatedInformation] { return s.propagated.all() }

// Discarded yields the pieces dropped by expiration.
func (s *UserState) Discarded() iter.Seq[PropagatedInformation] { return s.discarded.all() }

// OwnIDs returns the piece indices of Own.
func (s *UserState) OwnIDs() []int { return slices.Clone(s.own.ids) }

// ReceivedIDs returns the piece indices of Received.
func (s *UserState) ReceivedIDs() []int { return slices.Clone(s.received.ids) }

// PropagatedIDs returns the piece indices of Propagated.
func (s *UserState) PropagatedIDs() []int { return slices.Clone(s.propagated.ids) }

func (s *UserState) NumOwn() int        { return s.own.len() }
func (s *UserState) NumReceived() int   { return s.received.len() }
func (s *UserState) NumPropagated() int { return s.propagated.len() }
func (s *UserState) NumDiscarded() int  { return s.discarded.len() }

// NumStaged returns the number of pieces accepted this iteration and not yet
// visible.
func (s *UserState) NumStaged() int { return len(s.staged) }

// ReceivedRecord returns the received record for info.
func (s *UserState) ReceivedRecord(info int) (PropagatedInformation, bool) {
	if p, ok := s.received.get(info); ok {
		return *p, true
	}
	return PropagatedInformation{}, false
}

// HasSeen reports whether info has reached the user, either created by them
// or absorbed from a previous iteration's deliveries.
func (s *UserState) HasSeen(info int) bool {
	_, ok := s.seen[info]
	return ok
}

// Owns reports whether info is one of the user's unpropagated own pieces.
func (s *UserState) Owns(info int) bool { return s.own.contains(info) }

// HasPropagated reports whether the user already propagated info.
func (s *UserState) HasPropagated(info int) bool { return s.propagated.contains(info) }

func (s *UserState) addOwn(info, timestamp int) {
	s.seen[info] = struct{}{}
	s.own.put(PropagatedInformation{Info: info, Timestamp: timestamp, Creators: []int{s.user}})
}

// absorb makes a staged piece visible, merging it through upd when the user
// already holds a record of it.
func (s *UserState) absorb(p PropagatedInformation, upd UpdateMechanism) {
	s.seen[p.Info] = struct{}{}
	switch {
	case s.own.contains(p.Info):
	case s.propagated.contains(p.Info):
		old, _ := s.propagated.get(p.Info)
		s.propagated.put(upd.Update(*old, p))
	case s.received.contains(p.Info):
		old, _ := s.received.get(p.Info)
		s.received.put(upd.Update(*old, p))
	case s.discarded.contains(p.Info):
		old, _ := s.discarded.remove(p.Info)
		s.received.put(upd.Update(old, p))
	default:
		s.received.put(p)
	}
}

// markPropagated moves info from the own or received store to propagated.
func (s *UserState) markPropagated(info int) (PropagatedInformation, bool) {
	if p, ok := s.own.remove(info); ok {
		s.propagated.put(p)
		return p, true
	}
	if p, ok := s.received.remove(info); ok {
		s.propagated.put(p)
		return p, true
	}
	if p, ok := s.propagated.get(info); ok {
		return *p, true
	}
	return PropagatedInformation{}, false
}

func (s *UserState) discard(info int) (PropagatedInformation, bool) {
	p, ok := s.received.remove(info)
	if ok {
		s.discarded.put(p)
	}
	return p, ok
}
