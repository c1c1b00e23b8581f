package propagation

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
)

func newRNG(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed)) }

// followerData builds the directed graph 1->2, 2->3, 1->3 with one piece
// created by user 1.
func followerData(t *testing.T) *Data[int, string] {
	t.Helper()
	g := graph.NewDirected[int](false)
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)
	g.AddEdge(1, 3)
	data, err := NewData(g, []Information[int, string]{{ID: "a", Creator: 1}})
	require.NoError(t, err)
	return data
}

func usersOf(t *testing.T, data *Data[int, string], idxs []int) []int {
	t.Helper()
	out := make([]int, 0, len(idxs))
	for _, idx := range idxs {
		u, ok := data.User(idx)
		require.True(t, ok)
		out = append(out, u)
	}
	return out
}

func TestAllFollowersPropagation(t *testing.T) {
	data := followerData(t)
	m := NewAllFollowersPropagation()
	assert.False(t, m.DependsOnInformationPiece())

	piece := &PropagatedInformation{Info: data.InfoIdx("a"), Creators: []int{data.UserIdx(1)}}
	targets := m.Targets(data, data.UserIdx(1), piece)
	assert.ElementsMatch(t, []int{2, 3}, usersOf(t, data, targets))

	assert.Empty(t, m.Targets(data, data.UserIdx(3), nil))
}

func TestAllNeighboursPropagationOrientation(t *testing.T) {
	data := followerData(t)

	out := NewAllNeighboursPropagation(graph.Out)
	assert.Equal(t, []int{1, 2}, usersOf(t, data, out.Targets(data, data.UserIdx(3), nil)))
	assert.Empty(t, out.Targets(data, data.UserIdx(1), nil))

	und := NewAllNeighboursPropagation(graph.Und)
	assert.Equal(t, []int{1, 3}, usersOf(t, data, und.Targets(data, data.UserIdx(2), nil)))
}

func TestAvoidCreatorsPropagation(t *testing.T) {
	data := followerData(t)
	m := NewAvoidCreatorsPropagation(graph.Und)
	assert.True(t, m.DependsOnInformationPiece())

	user := data.UserIdx(3)
	piece := &PropagatedInformation{Creators: []int{data.UserIdx(1)}}
	assert.Equal(t, []int{2}, usersOf(t, data, m.Targets(data, user, piece)))
	assert.Equal(t, []int{1, 2}, usersOf(t, data, m.Targets(data, user, nil)))
}

func TestSample(t *testing.T) {
	rng := newRNG(7)
	assert.Equal(t, []int{1, 2, 3}, sample([]int{1, 2, 3}, All, rng))
	assert.Equal(t, []int{1, 2, 3}, sample([]int{1, 2, 3}, 5, rng))
	assert.Empty(t, sample([]int{1, 2, 3}, 0, rng))

	got := sample([]int{1, 2, 3, 4, 5}, 2, rng)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0], got[1])
	assert.Subset(t, []int{1, 2, 3, 4, 5}, got)
}

func stateWith(own []int, received map[int][]int) *UserState {
	st := newUserState(0)
	for _, info := range own {
		st.addOwn(info, 0)
	}
	for info := 0; info < 10; info++ {
		if creators, ok := received[info]; ok {
			st.received.put(PropagatedInformation{Info: info, Creators: creators})
		}
	}
	return st
}

func TestCountSelection(t *testing.T) {
	st := stateWith([]int{0, 1, 2}, map[int][]int{5: {1}, 6: {2}})
	sel := NewCountSelection(2, All).Select(st, nil, newRNG(1))
	assert.Len(t, sel.Own, 2)
	assert.Equal(t, []int{5, 6}, sel.Received)
	assert.Equal(t, 4, sel.Len())

	all := AllSelection{}.Select(st, nil, nil)
	assert.Equal(t, []int{0, 1, 2}, all.Own)
	assert.True(t, all.Contains(6))
	assert.False(t, all.Contains(9))
}

func TestProbabilitySelection(t *testing.T) {
	st := stateWith(nil, map[int][]int{1: {1}, 2: {2}, 3: {3}})
	assert.Len(t, NewProbabilitySelection(All, 1).Select(st, nil, newRNG(1)).Received, 3)
	assert.Empty(t, NewProbabilitySelection(All, 0).Select(st, nil, newRNG(1)).Received)
}

func TestThresholdSelections(t *testing.T) {
	st := stateWith(nil, map[int][]int{1: {4}, 2: {4, 5}, 3: {4, 5, 6}})
	sel := NewCountThresholdSelection(All, 2).Select(st, nil, newRNG(1))
	assert.Equal(t, []int{2, 3}, sel.Received)

	data := followerData(t)
	user := data.State(data.UserIdx(3))
	user.received.put(PropagatedInformation{Info: 0, Creators: []int{data.UserIdx(1)}})
	half := NewProportionThresholdSelection(All, 0.5, graph.In).Select(user, data, newRNG(1))
	assert.Equal(t, []int{0}, half.Received)
	full := NewProportionThresholdSelection(All, 1, graph.In).Select(user, data, newRNG(1))
	assert.Empty(t, full.Received)
}

func TestRepropagateSelection(t *testing.T) {
	st := stateWith([]int{0}, nil)
	st.propagated.put(PropagatedInformation{Info: 7, Creators: []int{3}})
	st.propagated.put(PropagatedInformation{Info: 8, Creators: []int{3}})
	sel := NewRepropagateSelection(All, All, 1).Select(st, nil, newRNG(3))
	assert.Equal(t, []int{0}, sel.Own)
	require.Len(t, sel.Repropagate, 1)
	assert.Contains(t, []int{7, 8}, sel.Repropagate[0])
}

func TestExpiration(t *testing.T) {
	st := stateWith(nil, map[int][]int{1: {1}, 2: {2}, 3: {3}})
	selected := Selection{Received: []int{2}}

	assert.Equal(t, []int{1, 3}, AllNotPropagatedExpiration{}.Expire(st, selected, 0))
	assert.Empty(t, InfiniteExpiration{}.Expire(st, selected, 0))

	st.received.put(PropagatedInformation{Info: 3, Timestamp: 4, Creators: []int{3}})
	window := NewTimeWindowExpiration(2)
	assert.Equal(t, []int{1}, window.Expire(st, selected, 5))
	assert.Equal(t, []int{1, 3}, window.Expire(st, selected, 6))
}

func TestUpdateMechanisms(t *testing.T) {
	old := PropagatedInformation{Info: 1, Timestamp: 2, Creators: []int{1, 4}}
	incoming := PropagatedInformation{Info: 1, Timestamp: 5, Creators: []int{3, 4}}

	older := OlderUpdate{}.Update(old, incoming)
	assert.Equal(t, 2, older.Timestamp)
	assert.Equal(t, []int{1, 3, 4}, older.Creators)

	newest := NewestUpdate{}.Update(old, incoming)
	assert.Equal(t, 5, newest.Timestamp)
	assert.Equal(t, []int{1, 3, 4}, newest.Creators)

	replaced := ReplaceUpdate{}.Update(old, incoming)
	assert.Equal(t, incoming, replaced)
	replaced.Creators[0] = 99
	assert.Equal(t, 3, incoming.Creators[0])
}

func TestSightMechanisms(t *testing.T) {
	st := stateWith([]int{1}, nil)
	st.propagated.put(PropagatedInformation{Info: 2})
	delivered := []PropagatedInformation{{Info: 1}, {Info: 2}, {Info: 3}, {Info: 4}, {Info: 5}}

	assert.Len(t, AllSight{}.Sight(st, delivered, nil), 5)

	notProp := AllNotPropagatedSight{}.Sight(st, delivered, nil)
	assert.Equal(t, []int{3, 4, 5}, infos(notProp))

	assert.Len(t, NewProbabilitySight(1).Sight(st, delivered, newRNG(1)), 5)
	assert.Empty(t, NewProbabilitySight(0).Sight(st, delivered, newRNG(1)))

	shared := []PropagatedInformation{{Info: 7, Creators: []int{1, 2, 3}}}
	all := NewProbabilitySight(1).Sight(st, shared, newRNG(1))
	require.Len(t, all, 1)
	assert.Equal(t, []int{1, 2, 3}, all[0].Creators)
	for seed := range uint64(50) {
		for _, p := range NewProbabilitySight(0.5).Sight(st, shared, newRNG(seed)) {
			assert.NotEmpty(t, p.Creators)
			assert.Subset(t, []int{1, 2, 3}, p.Creators, "only senders whose trial succeeded stay creators")
		}
	}

	counted := NewCountSight(2).Sight(st, delivered, newRNG(9))
	require.Len(t, counted, 2)
	assert.Less(t, counted[0].Info, counted[1].Info)
	assert.Subset(t, []int{3, 4, 5}, infos(counted))
}

func infos(pieces []PropagatedInformation) []int {
	out := make([]int, len(pieces))
	for i, p := range pieces {
		out[i] = p.Info
	}
	return out
}

func completeData(t *testing.T, n int) *Data[int, string] {
	t.Helper()
	g := graph.NewUndirected[int](false)
	for u := range n {
		for v := u + 1; v < n; v++ {
			g.AddEdge(u, v)
		}
	}
	data, err := NewData(g, []Information[int, string]{{ID: "rumour", Creator: 0}})
	require.NoError(t, err)
	return data
}

func TestPairingIsStable(t *testing.T) {
	data := completeData(t, 7)
	for seed := range uint64(20) {
		m := NewPushPullPropagation(2, graph.Und)
		m.ResetRun(data)
		rng := newRNG(seed)
		var history [][]int
		for round := range 4 {
			m.ResetSelections(data, rng)
			p := m.Pairing()
			if round == 0 {
				assert.Equal(t, 3, p.Len())
			}
			partners := make([]int, data.NumUsers())
			for u := range data.NumUsers() {
				partners[u] = unpaired
				v, ok := p.Partner(u)
				if !ok {
					continue
				}
				partners[u] = v
				back, ok := p.Partner(v)
				require.True(t, ok)
				assert.Equal(t, u, back, "seed %d: pairing must be symmetric", seed)
				assert.Equal(t, []int{v}, m.Targets(data, u, nil))
				for _, prev := range history[max(0, len(history)-2):] {
					assert.NotEqual(t, prev[u], v, "seed %d: %d met %d within the wait window", seed, u, v)
				}
			}
			history = append(history, partners)
		}
	}
}

func TestContactMemoryAvoidsRecentContacts(t *testing.T) {
	mem := newContactMemory(1)
	mem.reset(1)
	rng := newRNG(5)
	assert.Equal(t, 1, mem.pick(0, []int{1}, rng))
	assert.Equal(t, unpaired, mem.pick(0, []int{1}, rng), "the only candidate is still inside the wait window")
	assert.Equal(t, 2, mem.pick(0, []int{1, 2}, rng))
	assert.Equal(t, 1, mem.pick(0, []int{1, 2}, rng))
	assert.Equal(t, unpaired, mem.pick(0, nil, rng))

	free := newContactMemory(0)
	free.reset(1)
	assert.Equal(t, 2, free.pick(0, []int{2}, rng))
	assert.Equal(t, 2, free.pick(0, []int{2}, rng), "without a wait time a contact can repeat")
}

func TestPushAndPullTargets(t *testing.T) {
	data := completeData(t, 5)
	rng := newRNG(11)

	push := NewPushPropagation(0, graph.Und)
	push.ResetSelections(data, rng)
	for u := range data.NumUsers() {
		targets := push.Targets(data, u, nil)
		require.Len(t, targets, 1)
		assert.NotEqual(t, u, targets[0])
	}

	pull := NewPullPropagation(0, graph.Und)
	pull.ResetSelections(data, rng)
	total := 0
	for u := range data.NumUsers() {
		total += len(pull.Targets(data, u, nil))
	}
	assert.Equal(t, data.NumUsers(), total, "every user pulls from exactly one neighbour")
}
