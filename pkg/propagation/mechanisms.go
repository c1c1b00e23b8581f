package propagation

import "math/rand/v2"

// All selects every candidate piece in a count parameter.
const All = -1

// Selection is the set of pieces a user propagates in one iteration.
type Selection struct {
	Own         []int
	Received    []int
	Repropagate []int
}

// Len returns the number of selected pieces.
func (s Selection) Len() int { return len(s.Own) + len(s.Received) + len(s.Repropagate) }

// Contains reports whether info was selected.
func (s Selection) Contains(info int) bool {
	for _, list := range [][]int{s.Own, s.Received, s.Repropagate} {
		for _, i := range list {
			if i == info {
				return true
			}
		}
	}
	return false
}

// SelectionMechanism picks the pieces a user tries to propagate.
type SelectionMechanism interface {
	Select(user *UserState, net Network, rng *rand.Rand) Selection
}

// ExpirationMechanism returns the received pieces the user drops after an
// iteration in which they were not selected.
type ExpirationMechanism interface {
	Expire(user *UserState, selected Selection, iteration int) []int
}

// UpdateMechanism merges a piece received again into the existing record.
type UpdateMechanism interface {
	Update(old, incoming PropagatedInformation) PropagatedInformation
}

// PropagationMechanism chooses the users a piece is sent to.
type PropagationMechanism interface {
	// Targets returns the receivers of piece from user. When
	// DependsOnInformationPiece is false it is called once per user and
	// iteration with a nil piece.
	Targets(net Network, user int, piece *PropagatedInformation) []int
	DependsOnInformationPiece() bool
}

// SightMechanism filters the deliveries a user gets in one iteration. The
// returned pieces are staged for the next iteration.
type SightMechanism interface {
	Sight(user *UserState, delivered []PropagatedInformation, rng *rand.Rand) []PropagatedInformation
}

// Resetter is implemented by mechanisms holding iteration-scoped state. The
// simulator calls ResetSelections once per iteration before any user is
// processed.
type Resetter interface {
	ResetSelections(net Network, rng *rand.Rand)
}

// RunResetter is implemented by mechanisms whose state spans iterations.
// The simulator calls ResetRun once before the first iteration so a reused
// protocol starts every run from the same state.
type RunResetter interface {
	ResetRun(net Network)
}

// sample returns k pieces of ids chosen uniformly, or all of them when k is
// All or at least len(ids). ids may be reordered.
func sample(ids []int, k int, rng *rand.Rand) []int {
	if k < 0 || k >= len(ids) {
		return ids
	}
	for i := range k {
		j := i + rng.IntN(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids[:k]
}
