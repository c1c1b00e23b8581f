package propagation

import "math/rand/v2"

// AllSight accepts every delivery.
type AllSight struct{}

func (AllSight) Sight(_ *UserState, delivered []PropagatedInformation, _ *rand.Rand) []PropagatedInformation {
	return delivered
}

// AllNotPropagatedSight accepts deliveries of pieces the user has neither
// created nor propagated.
type AllNotPropagatedSight struct{}

func (AllNotPropagatedSight) Sight(user *UserState, delivered []PropagatedInformation, _ *rand.Rand) []PropagatedInformation {
	out := delivered[:0:0]
	for _, p := range delivered {
		if !user.Owns(p.Info) && !user.HasPropagated(p.Info) {
			out = append(out, p)
		}
	}
	return out
}

// ProbabilitySight gives every sender of a delivery its own trial with
// probability prob. A delivery is accepted when at least one trial succeeds
// and keeps only the successful senders as creators. Deliveries without
// creators get a single trial.
type ProbabilitySight struct {
	prob float64
}

func NewProbabilitySight(prob float64) *ProbabilitySight {
	return &ProbabilitySight{prob: prob}
}

func (m *ProbabilitySight) Sight(_ *UserState, delivered []PropagatedInformation, rng *rand.Rand) []PropagatedInformation {
	out := delivered[:0:0]
	for _, p := range delivered {
		if len(p.Creators) == 0 {
			if rng.Float64() < m.prob {
				out = append(out, p)
			}
			continue
		}
		var accepted []int
		for _, c := range p.Creators {
			if rng.Float64() < m.prob {
				accepted = append(accepted, c)
			}
		}
		if len(accepted) > 0 {
			p.Creators = accepted
			out = append(out, p)
		}
	}
	return out
}

// CountSight accepts at most count deliveries per iteration, chosen at
// random among pieces the user has not propagated. Accepted pieces keep
// their delivery order.
type CountSight struct {
	count int
}

func NewCountSight(count int) *CountSight {
	return &CountSight{count: count}
}

func (m *CountSight) Sight(user *UserState, delivered []PropagatedInformation, rng *rand.Rand) []PropagatedInformation {
	candidates := AllNotPropagatedSight{}.Sight(user, delivered, rng)
	if m.count < 0 || len(candidates) <= m.count {
		return candidates
	}
	positions := make([]int, len(candidates))
	for i := range positions {
		positions[i] = i
	}
	keep := make([]bool, len(candidates))
	for _, i := range sample(positions, m.count, rng) {
		keep[i] = true
	}
	out := make([]PropagatedInformation, 0, m.count)
	for i, p := range candidates {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}
