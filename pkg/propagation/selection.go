package propagation

import (
	"math"
	"math/rand/v2"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
)

// CountSelection propagates up to numOwn own and numRec received pieces,
// chosen at random. All lifts a limit.
type CountSelection struct {
	numOwn, numRec int
}

func NewCountSelection(numOwn, numRec int) *CountSelection {
	return &CountSelection{numOwn: numOwn, numRec: numRec}
}

func (m *CountSelection) Select(user *UserState, _ Network, rng *rand.Rand) Selection {
	return Selection{
		Own:      sample(user.OwnIDs(), m.numOwn, rng),
		Received: sample(user.ReceivedIDs(), m.numRec, rng),
	}
}

// AllSelection propagates every own and received piece.
type AllSelection struct{}

func (AllSelection) Select(user *UserState, _ Network, _ *rand.Rand) Selection {
	return Selection{Own: user.OwnIDs(), Received: user.ReceivedIDs()}
}

// ProbabilitySelection propagates up to numOwn own pieces and each received
// piece independently with probability prob.
type ProbabilitySelection struct {
	numOwn int
	prob   float64
}

func NewProbabilitySelection(numOwn int, prob float64) *ProbabilitySelection {
	return &ProbabilitySelection{numOwn: numOwn, prob: prob}
}

func (m *ProbabilitySelection) Select(user *UserState, _ Network, rng *rand.Rand) Selection {
	sel := Selection{Own: sample(user.OwnIDs(), m.numOwn, rng)}
	for p := range user.Received() {
		if rng.Float64() < m.prob {
			sel.Received = append(sel.Received, p.Info)
		}
	}
	return sel
}

// CountThresholdSelection propagates a received piece once it has arrived
// from at least threshold distinct users.
type CountThresholdSelection struct {
	numOwn    int
	threshold int
}

func NewCountThresholdSelection(numOwn, threshold int) *CountThresholdSelection {
	return &CountThresholdSelection{numOwn: numOwn, threshold: threshold}
}

func (m *CountThresholdSelection) Select(user *UserState, _ Network, rng *rand.Rand) Selection {
	sel := Selection{Own: sample(user.OwnIDs(), m.numOwn, rng)}
	for p := range user.Received() {
		if len(p.Creators) >= m.threshold {
			sel.Received = append(sel.Received, p.Info)
		}
	}
	return sel
}

// ProportionThresholdSelection propagates a received piece once the users it
// arrived from make up at least proportion of the user's neighbourhood under
// the given orientation.
type ProportionThresholdSelection struct {
	numOwn      int
	proportion  float64
	orientation graph.Orientation
}

func NewProportionThresholdSelection(numOwn int, proportion float64, o graph.Orientation) *ProportionThresholdSelection {
	return &ProportionThresholdSelection{numOwn: numOwn, proportion: proportion, orientation: o}
}

func (m *ProportionThresholdSelection) Select(user *UserState, net Network, rng *rand.Rand) Selection {
	sel := Selection{Own: sample(user.OwnIDs(), m.numOwn, rng)}
	size := net.NeighbourCount(user.User(), m.orientation)
	if size == 0 {
		return sel
	}
	needed := int(math.Ceil(m.proportion * float64(size)))
	for p := range user.Received() {
		if len(p.Creators) >= needed {
			sel.Received = append(sel.Received, p.Info)
		}
	}
	return sel
}

// RepropagateSelection extends CountSelection with up to numRepr pieces the
// user already propagated, as rumour-spreading models do.
type RepropagateSelection struct {
	CountSelection
	numRepr int
}

func NewRepropagateSelection(numOwn, numRec, numRepr int) *RepropagateSelection {
	return &RepropagateSelection{
		CountSelection: CountSelection{numOwn: numOwn, numRec: numRec},
		numRepr:        numRepr,
	}
}

func (m *RepropagateSelection) Select(user *UserState, net Network, rng *rand.Rand) Selection {
	sel := m.CountSelection.Select(user, net, rng)
	sel.Repropagate = sample(user.PropagatedIDs(), m.numRepr, rng)
	return sel
}
