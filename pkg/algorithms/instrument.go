package algorithms

import (
	"time"

	"github.com/dd0wney/cluso-socialnet/pkg/logging"
	"github.com/dd0wney/cluso-socialnet/pkg/metrics"
)

// Run executes fn as the named algorithm, logging its duration and recording
// it on reg. A nil reg records nothing; a nil logger uses the default one.
func Run[T any](name string, reg *metrics.Registry, logger logging.Logger, fn func() (T, error)) (T, error) {
	logger = logging.OrDefault(logger)
	start := time.Now()
	out, err := fn()
	elapsed := time.Since(start)
	if reg != nil {
		reg.RecordAlgorithm(name, err, elapsed)
	}
	if err != nil {
		logger.Error("algorithm failed", logging.Operation(name), logging.Latency(elapsed), logging.Error(err))
	} else {
		logger.Debug("algorithm finished", logging.Operation(name), logging.Latency(elapsed))
	}
	return out, err
}
