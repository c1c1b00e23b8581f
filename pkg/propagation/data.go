// Package propagation simulates the diffusion of information pieces over a
// social graph.
//
// A Protocol bundles five mechanisms. Each iteration, every user selects
// pieces to propagate (SelectionMechanism), the pieces are sent to targets
// chosen by a PropagationMechanism, each target filters what it receives
// (SightMechanism), pieces received again are merged (UpdateMechanism), and
// unselected pieces may be dropped (ExpirationMechanism). Pieces accepted at
// iteration n become visible to their target at iteration n+1.
//
// Mechanisms work on dense user and piece indices through the Network view.
// Randomness comes from the *rand.Rand the Simulator hands them, so a fixed
// seed reproduces a run.
package propagation

import (
	"cmp"
	"fmt"
	"iter"
	"slices"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/index"
)

// Network is the index-level view of simulation data used by mechanisms and
// stop conditions.
type Network interface {
	NumUsers() int
	NumInformation() int
	State(user int) *UserState
	// Neighbours yields the neighbours of user in the underlying graph.
	Neighbours(user int, o graph.Orientation) iter.Seq[int]
	NeighbourCount(user int, o graph.Orientation) int
}

// Data aggregates the graph, the information catalog, optional per-piece
// feature tables and the per-user state of a run.
type Data[U, I comparable] struct {
	graph     *graph.Graph[U]
	infos     *index.Index[I]
	catalog   []Information[U, I]
	creators  []int
	createdBy map[int][]int
	features  map[string]map[int]float64
	states    []*UserState
	// schedule holds piece indices by release iteration; released counts
	// the pieces of schedule already handed to their creators.
	schedule []int
	released int
}

// NewData builds simulation data. Every creator must be a vertex of g.
func NewData[U, I comparable](g *graph.Graph[U], pieces []Information[U, I]) (*Data[U, I], error) {
	d := &Data[U, I]{
		graph:     g,
		infos:     index.NewWithCapacity[I](len(pieces)),
		catalog:   make([]Information[U, I], 0, len(pieces)),
		creators:  make([]int, 0, len(pieces)),
		createdBy: make(map[int][]int),
		features:  make(map[string]map[int]float64),
	}
	for _, p := range pieces {
		if err := d.add(p); err != nil {
			return nil, err
		}
	}
	d.schedule = make([]int, len(d.catalog))
	for i := range d.schedule {
		d.schedule[i] = i
	}
	slices.SortStableFunc(d.schedule, func(a, b int) int {
		return cmp.Compare(d.releaseAt(a), d.releaseAt(b))
	})
	d.resetStates()
	return d, nil
}

// releaseAt is the iteration piece idx is handed to its creator. Negative
// timestamps release at iteration 0.
func (d *Data[U, I]) releaseAt(idx int) int {
	return max(d.catalog[idx].Timestamp, 0)
}

func (d *Data[U, I]) add(p Information[U, I]) error {
	user := d.graph.NodeIdx(p.Creator)
	if user == index.NotFound {
		return fmt.Errorf("%w: creator %v of piece %v", ErrUnknownUser, p.Creator, p.ID)
	}
	if d.infos.Contains(p.ID) {
		return fmt.Errorf("%w: %v", ErrDuplicateInformation, p.ID)
	}
	idx := d.infos.Add(p.ID)
	d.catalog = append(d.catalog, p)
	d.creators = append(d.creators, user)
	d.createdBy[user] = append(d.createdBy[user], idx)
	return nil
}

// resetStates discards every user's state so the data can be simulated again.
func (d *Data[U, I]) resetStates() {
	n := d.graph.VertexCount()
	d.states = make([]*UserState, n)
	for u := range n {
		d.states[u] = newUserState(u)
	}
	d.released = 0
}

// Graph returns the graph the pieces spread over.
func (d *Data[U, I]) Graph() *graph.Graph[U] { return d.graph }

func (d *Data[U, I]) NumUsers() int       { return len(d.states) }
func (d *Data[U, I]) NumInformation() int { return len(d.catalog) }

// State returns the state of the user at idx, or nil when out of range.
func (d *Data[U, I]) State(user int) *UserState {
	if user < 0 || user >= len(d.states) {
		return nil
	}
	return d.states[user]
}

func (d *Data[U, I]) Neighbours(user int, o graph.Orientation) iter.Seq[int] {
	return d.graph.NeighbourhoodIdx(user, o)
}

func (d *Data[U, I]) NeighbourCount(user int, o graph.Orientation) int {
	return d.graph.NeighbourhoodSizeIdx(user, o)
}

// UserIdx returns the index of u, or index.NotFound.
func (d *Data[U, I]) UserIdx(u U) int { return d.graph.NodeIdx(u) }

// User returns the user at idx.
func (d *Data[U, I]) User(idx int) (U, bool) { return d.graph.NodeAt(idx) }

// InfoIdx returns the index of the piece with the given id, or index.NotFound.
func (d *Data[U, I]) InfoIdx(id I) int { return d.infos.Object2Idx(id) }

// Information returns the catalog entry at idx.
func (d *Data[U, I]) Information(idx int) (Information[U, I], bool) {
	if idx < 0 || idx >= len(d.catalog) {
		return Information[U, I]{}, false
	}
	return d.catalog[idx], true
}

// Pieces yields every catalog entry in index order.
func (d *Data[U, I]) Pieces() iter.Seq2[int, Information[U, I]] {
	return func(yield func(int, Information[U, I]) bool) {
		for i, p := range d.catalog {
			if !yield(i, p) {
				return
			}
		}
	}
}

// CreatedBy returns the indices of the pieces created by user.
func (d *Data[U, I]) CreatedBy(user int) []int { return d.createdBy[user] }

// SetFeature stores a numeric feature of a piece. It returns false when the
// piece is unknown.
func (d *Data[U, I]) SetFeature(name string, id I, value float64) bool {
	idx := d.infos.Object2Idx(id)
	if idx == index.NotFound {
		return false
	}
	table, ok := d.features[name]
	if !ok {
		table = make(map[int]float64)
		d.features[name] = table
	}
	table[idx] = value
	return true
}

// Feature returns a feature of the piece at idx.
func (d *Data[U, I]) Feature(name string, info int) (float64, bool) {
	v, ok := d.features[name][info]
	return v, ok
}

// releaseOwn hands creators the pieces scheduled up to iteration.
// Iterations must be released in increasing order.
func (d *Data[U, I]) releaseOwn(iteration int) {
	for d.released < len(d.schedule) {
		idx := d.schedule[d.released]
		if d.releaseAt(idx) > iteration {
			return
		}
		d.states[d.creators[idx]].addOwn(idx, iteration)
		d.released++
	}
}

// upcoming counts the pieces not released yet.
func (d *Data[U, I]) upcoming() int { return len(d.schedule) - d.released }

var _ Network = (*Data[int, int])(nil)
