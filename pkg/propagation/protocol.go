package propagation

import (
	"fmt"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
)

// Protocol names accepted by BuildProtocol.
const (
	IndependentCascadeProtocol  = "independent-cascade"
	PushProtocol                = "push"
	PullProtocol                = "pull"
	RumorSpreadingProtocol      = "rumor-spreading"
	CountThresholdProtocol      = "count-threshold"
	ProportionThresholdProtocol = "proportion-threshold"
	BoundedProtocol             = "bounded"
	ProbabilisticProtocol       = "probabilistic"
)

// Protocol is an immutable bundle of the five mechanisms that define one
// diffusion model.
type Protocol struct {
	name        string
	selection   SelectionMechanism
	expiration  ExpirationMechanism
	update      UpdateMechanism
	propagation PropagationMechanism
	sight       SightMechanism
}

// NewProtocol bundles mechanisms under a name. Every mechanism is required.
func NewProtocol(name string, sel SelectionMechanism, exp ExpirationMechanism, upd UpdateMechanism,
	prop PropagationMechanism, sight SightMechanism) (*Protocol, error) {
	if sel == nil || exp == nil || upd == nil || prop == nil || sight == nil {
		return nil, fmt.Errorf("%w: protocol %q is missing a mechanism", ErrInvalidParameter, name)
	}
	return &Protocol{
		name:        name,
		selection:   sel,
		expiration:  exp,
		update:      upd,
		propagation: prop,
		sight:       sight,
	}, nil
}

func (p *Protocol) Name() string                      { return p.name }
func (p *Protocol) Selection() SelectionMechanism     { return p.selection }
func (p *Protocol) Expiration() ExpirationMechanism   { return p.expiration }
func (p *Protocol) Update() UpdateMechanism           { return p.update }
func (p *Protocol) Propagation() PropagationMechanism { return p.propagation }
func (p *Protocol) Sight() SightMechanism             { return p.sight }

// runResetters returns the mechanisms holding run-scoped state.
func (p *Protocol) runResetters() []RunResetter {
	var out []RunResetter
	for _, m := range []any{p.selection, p.expiration, p.update, p.propagation, p.sight} {
		if r, ok := m.(RunResetter); ok {
			out = append(out, r)
		}
	}
	return out
}

// resetters returns the mechanisms holding iteration-scoped state.
func (p *Protocol) resetters() []Resetter {
	var out []Resetter
	for _, m := range []any{p.selection, p.expiration, p.update, p.propagation, p.sight} {
		if r, ok := m.(Resetter); ok {
			out = append(out, r)
		}
	}
	return out
}

// IndependentCascade propagates every piece once to all neighbours; each
// delivery succeeds with probability prob.
func IndependentCascade(prob float64, o graph.Orientation) (*Protocol, error) {
	if err := checkProbability("prob", prob); err != nil {
		return nil, err
	}
	return NewProtocol(IndependentCascadeProtocol, AllSelection{}, AllNotPropagatedExpiration{}, OlderUpdate{},
		NewAllNeighboursPropagation(o), NewProbabilitySight(prob))
}

// Probabilistic propagates up to numOwn own pieces and each received piece
// with probability prob.
func Probabilistic(numOwn int, prob float64, o graph.Orientation) (*Protocol, error) {
	if err := checkProbability("prob", prob); err != nil {
		return nil, err
	}
	if err := checkCount("num_own", numOwn); err != nil {
		return nil, err
	}
	return NewProtocol(ProbabilisticProtocol, NewProbabilitySelection(numOwn, prob), AllNotPropagatedExpiration{},
		OlderUpdate{}, NewAllNeighboursPropagation(o), AllNotPropagatedSight{})
}

// Push is push rumour spreading: informed users keep pushing everything they
// know to one random neighbour per iteration.
func Push(numOwn, wait int, o graph.Orientation) (*Protocol, error) {
	if err := checkRumour(numOwn, wait); err != nil {
		return nil, err
	}
	return NewProtocol(PushProtocol, NewRepropagateSelection(numOwn, All, All), InfiniteExpiration{},
		NewestUpdate{}, NewPushPropagation(wait, o), AllNotPropagatedSight{})
}

// Pull is pull rumour spreading: every user pulls from one random neighbour
// per iteration.
func Pull(numOwn, wait int, o graph.Orientation) (*Protocol, error) {
	if err := checkRumour(numOwn, wait); err != nil {
		return nil, err
	}
	return NewProtocol(PullProtocol, NewRepropagateSelection(numOwn, All, All), InfiniteExpiration{},
		NewestUpdate{}, NewPullPropagation(wait, o), AllNotPropagatedSight{})
}

// RumorSpreading is push-pull rumour spreading over a per-iteration pairing.
func RumorSpreading(numOwn, wait int, o graph.Orientation) (*Protocol, error) {
	if err := checkRumour(numOwn, wait); err != nil {
		return nil, err
	}
	return NewProtocol(RumorSpreadingProtocol, NewRepropagateSelection(numOwn, All, All), InfiniteExpiration{},
		NewestUpdate{}, NewPushPullPropagation(wait, o), AllNotPropagatedSight{})
}

// CountThreshold propagates a piece once threshold neighbours sent it.
func CountThreshold(threshold int, o graph.Orientation) (*Protocol, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("%w: threshold must be positive, got %d", ErrInvalidParameter, threshold)
	}
	return NewProtocol(CountThresholdProtocol, NewCountThresholdSelection(All, threshold), InfiniteExpiration{},
		OlderUpdate{}, NewAllNeighboursPropagation(o), AllNotPropagatedSight{})
}

// ProportionThreshold propagates a piece once the fraction of neighbours
// that sent it reaches proportion.
func ProportionThreshold(proportion float64, o graph.Orientation) (*Protocol, error) {
	if proportion <= 0 || proportion > 1 {
		return nil, fmt.Errorf("%w: proportion must be in (0, 1], got %g", ErrInvalidParameter, proportion)
	}
	return NewProtocol(ProportionThresholdProtocol, NewProportionThresholdSelection(All, proportion, o),
		InfiniteExpiration{}, OlderUpdate{}, NewAllNeighboursPropagation(o), AllNotPropagatedSight{})
}

// Bounded models limited attention: each iteration a user propagates at most
// numOwn own and numRec received pieces, sees at most numSeen deliveries and
// forgets received pieces after window iterations.
func Bounded(numOwn, numRec, numSeen, window int, o graph.Orientation) (*Protocol, error) {
	if err := checkCount("num_own", numOwn); err != nil {
		return nil, err
	}
	if err := checkCount("num_received", numRec); err != nil {
		return nil, err
	}
	if err := checkCount("num_seen", numSeen); err != nil {
		return nil, err
	}
	if window < 1 {
		return nil, fmt.Errorf("%w: window must be positive, got %d", ErrInvalidParameter, window)
	}
	return NewProtocol(BoundedProtocol, NewCountSelection(numOwn, numRec), NewTimeWindowExpiration(window),
		NewestUpdate{}, NewAllNeighboursPropagation(o), NewCountSight(numSeen))
}

// ProtocolParams carries the scalar parameters of every built-in protocol.
// Each protocol reads only the fields it needs.
type ProtocolParams struct {
	Orientation graph.Orientation
	Probability float64
	NumOwn      int
	NumReceived int
	NumSeen     int
	WaitTime    int
	Threshold   int
	Proportion  float64
	Window      int
}

// BuildProtocol builds a built-in protocol by name.
func BuildProtocol(name string, p ProtocolParams) (*Protocol, error) {
	switch name {
	case IndependentCascadeProtocol:
		return IndependentCascade(p.Probability, p.Orientation)
	case ProbabilisticProtocol:
		return Probabilistic(p.NumOwn, p.Probability, p.Orientation)
	case PushProtocol:
		return Push(p.NumOwn, p.WaitTime, p.Orientation)
	case PullProtocol:
		return Pull(p.NumOwn, p.WaitTime, p.Orientation)
	case RumorSpreadingProtocol:
		return RumorSpreading(p.NumOwn, p.WaitTime, p.Orientation)
	case CountThresholdProtocol:
		return CountThreshold(p.Threshold, p.Orientation)
	case ProportionThresholdProtocol:
		return ProportionThreshold(p.Proportion, p.Orientation)
	case BoundedProtocol:
		return Bounded(p.NumOwn, p.NumReceived, p.NumSeen, p.Window, p.Orientation)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProtocol, name)
	}
}

// ProtocolNames lists the names BuildProtocol accepts.
func ProtocolNames() []string {
	return []string{
		IndependentCascadeProtocol, ProbabilisticProtocol, PushProtocol, PullProtocol,
		RumorSpreadingProtocol, CountThresholdProtocol, ProportionThresholdProtocol, BoundedProtocol,
	}
}

func checkProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: %s must be in [0, 1], got %g", ErrInvalidParameter, name, p)
	}
	return nil
}

// checkCount accepts All or a non-negative count.
func checkCount(name string, n int) error {
	if n < All {
		return fmt.Errorf("%w: %s must be non-negative or All, got %d", ErrInvalidParameter, name, n)
	}
	return nil
}

func checkRumour(numOwn, wait int) error {
	if err := checkCount("num_own", numOwn); err != nil {
		return err
	}
	if wait < 0 {
		return fmt.Errorf("%w: wait time must be non-negative, got %d", ErrInvalidParameter, wait)
	}
	return nil
}
