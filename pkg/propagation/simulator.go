package propagation

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-socialnet/pkg/logging"
	"github.com/dd0wney/cluso-socialnet/pkg/metrics"
)

// State is the lifecycle state of a Simulator.
type State int

const (
	NotStarted State = iota
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

type settings struct {
	seed    uint64
	runID   string
	stop    StopCondition
	logger  logging.Logger
	metrics *metrics.Registry
}

// Option configures a Simulator.
type Option func(*settings)

// WithSeed seeds the simulator's random source.
func WithSeed(seed uint64) Option {
	return func(s *settings) { s.seed = seed }
}

// WithRunID sets the run identifier. A random UUID is used otherwise.
func WithRunID(id string) Option {
	return func(s *settings) { s.runID = id }
}

// WithStop sets the stop condition. The default stops when nothing more can
// propagate or after DefaultMaxIterations iterations.
func WithStop(c StopCondition) Option {
	return func(s *settings) { s.stop = c }
}

func WithLogger(l logging.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithMetrics records iteration and run metrics in r.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *settings) { s.metrics = r }
}

// Simulator runs a protocol over simulation data once.
type Simulator[U, I comparable] struct {
	protocol *Protocol
	settings
	rng   *rand.Rand
	state State
}

// NewSimulator creates a simulator for protocol.
func NewSimulator[U, I comparable](protocol *Protocol, opts ...Option) *Simulator[U, I] {
	s := settings{
		stop:   AnyStop(NoMorePropagation(), MaxIterations(DefaultMaxIterations)),
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.runID == "" {
		s.runID = uuid.NewString()
	}
	return &Simulator[U, I]{
		protocol: protocol,
		settings: s,
		rng:      rand.New(rand.NewPCG(s.seed, s.seed)),
	}
}

// State returns the lifecycle state.
func (s *Simulator[U, I]) State() State { return s.state }

// Run simulates until the stop condition holds or ctx is done. The user
// states of data are reset first. On cancellation the partial simulation is
// returned with ctx's error.
func (s *Simulator[U, I]) Run(ctx context.Context, data *Data[U, I]) (*Simulation[U, I], error) {
	if s.state != NotStarted {
		return nil, ErrAlreadyRun
	}
	s.state = Running
	defer func() { s.state = Terminated }()

	data.resetStates()
	for _, r := range s.protocol.runResetters() {
		r.ResetRun(data)
	}
	sim := &Simulation[U, I]{
		RunID:    s.runID,
		Protocol: s.protocol.Name(),
		Seed:     s.seed,
		data:     data,
	}
	logger := s.logger.With(logging.RunID(s.runID), logging.Protocol(s.protocol.Name()))
	timer := logging.StartTimer(logger, "simulation finished")
	resetters := s.protocol.resetters()

	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			sim.Reason = ReasonCancelled
			s.recordRun(sim.Reason)
			timer.EndError(err)
			return sim, err
		}
		start := time.Now()
		it := s.iterate(data, n, resetters)
		it.Duration = time.Since(start)
		sim.Iterations = append(sim.Iterations, it)

		logger.Debug("iteration",
			logging.Iteration(n),
			logging.Int("propagated", len(it.Propagated)),
			logging.Int("received", len(it.Received)),
			logging.Int("discarded", len(it.Discarded)),
			logging.Int("active", it.Active))
		if s.metrics != nil {
			s.metrics.RecordIteration(s.protocol.Name(), it.Duration, it.Active,
				len(it.Propagated), len(it.Received), len(it.Discarded))
		}

		if reason, stop := s.stop.Stop(data, &sim.Iterations[len(sim.Iterations)-1]); stop {
			sim.Reason = reason
			break
		}
	}

	s.recordRun(sim.Reason)
	timer.End(logging.String("reason", sim.Reason), logging.Int("iterations", len(sim.Iterations)))
	return sim, nil
}

func (s *Simulator[U, I]) recordRun(reason string) {
	if s.metrics != nil {
		s.metrics.RecordRun(s.protocol.Name(), reason)
	}
}

// iterate runs iteration n: reset, release and absorb, then select,
// propagate and expire per user, then sight per receiver.
func (s *Simulator[U, I]) iterate(data *Data[U, I], n int, resetters []Resetter) Iteration {
	for _, r := range resetters {
		r.ResetSelections(data, s.rng)
	}
	data.releaseOwn(n)
	upd := s.protocol.Update()
	for _, st := range data.states {
		for _, p := range st.staged {
			st.absorb(p, upd)
		}
		st.staged = nil
	}

	it := Iteration{Number: n}
	users := len(data.states)
	inbox := make([][]PropagatedInformation, users)
	slots := make([]map[int]int, users)
	deliver := func(from, to, info int) {
		if slots[to] == nil {
			slots[to] = make(map[int]int)
		}
		if i, ok := slots[to][info]; ok {
			inbox[to][i].Creators = mergeCreators(inbox[to][i].Creators, []int{from})
			return
		}
		slots[to][info] = len(inbox[to])
		inbox[to] = append(inbox[to], PropagatedInformation{Info: info, Timestamp: n, Creators: []int{from}})
	}

	prop := s.protocol.Propagation()
	dependent := prop.DependsOnInformationPiece()
	for u, st := range data.states {
		sel := s.protocol.Selection().Select(st, data, s.rng)
		if sel.Len() > 0 {
			var shared []int
			if !dependent {
				shared = prop.Targets(data, u, nil)
			}
			propagated := 0
			for _, info := range slices.Concat(sel.Own, sel.Received, sel.Repropagate) {
				rec, ok := st.markPropagated(info)
				if !ok {
					continue
				}
				propagated++
				it.Propagated = append(it.Propagated, Record{User: u, Info: info, Creators: rec.Creators})
				targets := shared
				if dependent {
					targets = prop.Targets(data, u, &rec)
				}
				for _, t := range targets {
					if t != u {
						deliver(u, t, info)
					}
				}
			}
			if propagated > 0 {
				it.Active++
			}
		}
		for _, info := range s.protocol.Expiration().Expire(st, sel, n) {
			if rec, ok := st.discard(info); ok {
				it.Discarded = append(it.Discarded, Record{User: u, Info: info, Creators: rec.Creators})
			}
		}
	}

	sight := s.protocol.Sight()
	for t, delivered := range inbox {
		if len(delivered) == 0 {
			continue
		}
		st := data.states[t]
		st.staged = sight.Sight(st, delivered, s.rng)
		for _, p := range st.staged {
			it.Received = append(it.Received, Record{User: t, Info: p.Info, Creators: p.Creators})
		}
	}

	it.Upcoming = data.upcoming()
	return it
}
