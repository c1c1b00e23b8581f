package propagation

import (
	"math/rand/v2"
	"slices"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
)

// Orientations in propagation mechanisms are seen from the receiver: a user
// t receives from u when u is a neighbour of t under the orientation. The
// targets of u are therefore its neighbours under the inverted orientation.

func targetsOf(net Network, user int, o graph.Orientation) []int {
	return slices.Collect(net.Neighbours(user, o.Invert()))
}

// AllNeighboursPropagation sends every piece to all users that have the
// sender as a neighbour under the orientation.
type AllNeighboursPropagation struct {
	orientation graph.Orientation
}

func NewAllNeighboursPropagation(o graph.Orientation) *AllNeighboursPropagation {
	return &AllNeighboursPropagation{orientation: o}
}

// NewAllFollowersPropagation sends every piece to the sender's followers:
// the users that have the sender among their In neighbours.
func NewAllFollowersPropagation() *AllNeighboursPropagation {
	return NewAllNeighboursPropagation(graph.In)
}

func (m *AllNeighboursPropagation) Targets(net Network, user int, _ *PropagatedInformation) []int {
	return targetsOf(net, user, m.orientation)
}

func (m *AllNeighboursPropagation) DependsOnInformationPiece() bool { return false }

// AvoidCreatorsPropagation sends a piece to all neighbours except the users
// it was received from.
type AvoidCreatorsPropagation struct {
	orientation graph.Orientation
}

func NewAvoidCreatorsPropagation(o graph.Orientation) *AvoidCreatorsPropagation {
	return &AvoidCreatorsPropagation{orientation: o}
}

func (m *AvoidCreatorsPropagation) Targets(net Network, user int, piece *PropagatedInformation) []int {
	targets := targetsOf(net, user, m.orientation)
	if piece == nil {
		return targets
	}
	return slices.DeleteFunc(targets, piece.HasCreator)
}

func (m *AvoidCreatorsPropagation) DependsOnInformationPiece() bool { return true }

// PushPropagation sends pieces to one random neighbour per iteration,
// avoiding the neighbours contacted during the last wait iterations.
type PushPropagation struct {
	orientation graph.Orientation
	memory      *contactMemory
	chosen      []int
}

func NewPushPropagation(wait int, o graph.Orientation) *PushPropagation {
	return &PushPropagation{orientation: o, memory: newContactMemory(wait)}
}

func (m *PushPropagation) ResetSelections(net Network, rng *rand.Rand) {
	n := net.NumUsers()
	m.memory.ensure(n)
	m.chosen = slices.Grow(m.chosen[:0], n)
	for u := range n {
		m.chosen = append(m.chosen, m.memory.pick(u, targetsOf(net, u, m.orientation), rng))
	}
}

// ResetRun forgets the contacts of a previous run.
func (m *PushPropagation) ResetRun(net Network) {
	m.memory.reset(net.NumUsers())
	m.chosen = m.chosen[:0]
}

func (m *PushPropagation) Targets(_ Network, user int, _ *PropagatedInformation) []int {
	if user >= len(m.chosen) || m.chosen[user] == unpaired {
		return nil
	}
	return []int{m.chosen[user]}
}

func (m *PushPropagation) DependsOnInformationPiece() bool { return false }

// PullPropagation lets every user pull from one random neighbour per
// iteration. A user's targets are the users that chose to pull from them.
type PullPropagation struct {
	orientation graph.Orientation
	memory      *contactMemory
	pullers     [][]int
}

func NewPullPropagation(wait int, o graph.Orientation) *PullPropagation {
	return &PullPropagation{orientation: o, memory: newContactMemory(wait)}
}

func (m *PullPropagation) ResetSelections(net Network, rng *rand.Rand) {
	n := net.NumUsers()
	m.memory.ensure(n)
	m.pullers = make([][]int, n)
	for t := range n {
		sources := slices.Collect(net.Neighbours(t, m.orientation))
		if s := m.memory.pick(t, sources, rng); s != unpaired {
			m.pullers[s] = append(m.pullers[s], t)
		}
	}
}

func (m *PullPropagation) ResetRun(net Network) {
	m.memory.reset(net.NumUsers())
	m.pullers = nil
}

func (m *PullPropagation) Targets(_ Network, user int, _ *PropagatedInformation) []int {
	if user >= len(m.pullers) {
		return nil
	}
	return m.pullers[user]
}

func (m *PullPropagation) DependsOnInformationPiece() bool { return false }

// PushPullPropagation pairs users once per iteration and has each pair
// exchange pieces in both directions.
type PushPullPropagation struct {
	orientation graph.Orientation
	memory      *contactMemory
	pairing     Pairing
}

func NewPushPullPropagation(wait int, o graph.Orientation) *PushPullPropagation {
	return &PushPullPropagation{orientation: o, memory: newContactMemory(wait)}
}

func (m *PushPullPropagation) ResetSelections(net Network, rng *rand.Rand) {
	n := net.NumUsers()
	m.memory.ensure(n)
	m.pairing = buildPairing(n, func(u int) []int {
		return targetsOf(net, u, m.orientation)
	}, m.memory, rng)
}

func (m *PushPullPropagation) ResetRun(net Network) {
	m.memory.reset(net.NumUsers())
	m.pairing = Pairing{}
}

// Pairing returns the pairing of the current iteration.
func (m *PushPullPropagation) Pairing() Pairing { return m.pairing }

func (m *PushPullPropagation) Targets(_ Network, user int, _ *PropagatedInformation) []int {
	if v, ok := m.pairing.Partner(user); ok {
		return []int{v}
	}
	return nil
}

func (m *PushPullPropagation) DependsOnInformationPiece() bool { return false }
