package propagation

// Reasons a simulation stops.
const (
	ReasonMaxIterations     = "max_iterations"
	ReasonNoMorePropagation = "no_more_propagation"
	ReasonCancelled         = "cancelled"
)

// DefaultMaxIterations bounds simulations run without an explicit stop
// condition.
const DefaultMaxIterations = 1000

// StopCondition decides after each iteration whether the simulation ends.
type StopCondition interface {
	Stop(net Network, last *Iteration) (reason string, stop bool)
}

// StopFunc adapts a function to StopCondition.
type StopFunc func(net Network, last *Iteration) (string, bool)

func (f StopFunc) Stop(net Network, last *Iteration) (string, bool) { return f(net, last) }

// MaxIterations stops after n iterations.
func MaxIterations(n int) StopCondition {
	return StopFunc(func(_ Network, last *Iteration) (string, bool) {
		return ReasonMaxIterations, last.Number+1 >= n
	})
}

// NoMorePropagation stops once an iteration propagated nothing, staged no
// delivery and no piece is waiting to be released. No later iteration can
// change the state then, except through expiration.
func NoMorePropagation() StopCondition {
	return StopFunc(func(_ Network, last *Iteration) (string, bool) {
		done := len(last.Propagated) == 0 && len(last.Received) == 0 && last.Upcoming == 0
		return ReasonNoMorePropagation, done
	})
}

// AnyStop stops as soon as one of conds does, reporting its reason.
func AnyStop(conds ...StopCondition) StopCondition {
	return StopFunc(func(net Network, last *Iteration) (string, bool) {
		for _, c := range conds {
			if reason, stop := c.Stop(net, last); stop {
				return reason, true
			}
		}
		return "", false
	})
}
