package propagation

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dd0wney/cluso-socialnet/pkg/index"
)

// Record is one event of an iteration: a user propagating, receiving or
// discarding a piece. Creators are the users the piece came from.
type Record struct {
	User     int
	Info     int
	Creators []int
}

// Iteration is what happened during one simulation step.
type Iteration struct {
	Number     int
	Propagated []Record
	// Received holds the deliveries accepted by sight. They become visible
	// at the next iteration.
	Received  []Record
	Discarded []Record
	Active    int
	// Upcoming counts catalog pieces released at later iterations.
	Upcoming int
	Duration time.Duration
}

// Simulation is the outcome of one run.
type Simulation[U, I comparable] struct {
	RunID      string
	Protocol   string
	Seed       uint64
	Reason     string
	Iterations []Iteration

	data *Data[U, I]
}

// Data returns the simulated data. User states reflect the end of the run
// until the data is simulated again.
func (s *Simulation[U, I]) Data() *Data[U, I] { return s.data }

// NumIterations returns the number of iterations run.
func (s *Simulation[U, I]) NumIterations() int { return len(s.Iterations) }

// Reach returns how many users have seen the piece id by the end of the run.
func (s *Simulation[U, I]) Reach(id I) int {
	info := s.data.InfoIdx(id)
	if info == index.NotFound {
		return 0
	}
	n := 0
	for _, st := range s.data.states {
		if st.HasSeen(info) {
			n++
		}
	}
	return n
}

const (
	eventPropagated = "propagated"
	eventReceived   = "received"
	eventDiscarded  = "discarded"
)

// WriteLog writes one tab-separated line per event:
// iteration, event, user, piece and the comma-separated creators.
func (s *Simulation[U, I]) WriteLog(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, it := range s.Iterations {
		for _, group := range []struct {
			event   string
			records []Record
		}{
			{eventPropagated, it.Propagated},
			{eventReceived, it.Received},
			{eventDiscarded, it.Discarded},
		} {
			for _, r := range group.records {
				fmt.Fprintf(bw, "%d\t%s\t%s\t%s\t%s\n", it.Number, group.event,
					s.userName(r.User), s.infoName(r.Info), strings.Join(s.userNames(r.Creators), ","))
			}
		}
	}
	return bw.Flush()
}

type recordJSON struct {
	User     string   `json:"user"`
	Info     string   `json:"info"`
	Creators []string `json:"creators,omitempty"`
}

type iterationJSON struct {
	Number     int          `json:"number"`
	Propagated []recordJSON `json:"propagated"`
	Received   []recordJSON `json:"received"`
	Discarded  []recordJSON `json:"discarded"`
	DurationMS float64      `json:"duration_ms"`
}

type simulationJSON struct {
	RunID      string          `json:"run_id"`
	Protocol   string          `json:"protocol"`
	Seed       uint64          `json:"seed"`
	Reason     string          `json:"reason"`
	Iterations []iterationJSON `json:"iterations"`
}

// WriteJSON writes the simulation as one JSON document.
func (s *Simulation[U, I]) WriteJSON(w io.Writer) error {
	doc := simulationJSON{
		RunID:      s.RunID,
		Protocol:   s.Protocol,
		Seed:       s.Seed,
		Reason:     s.Reason,
		Iterations: make([]iterationJSON, 0, len(s.Iterations)),
	}
	for _, it := range s.Iterations {
		doc.Iterations = append(doc.Iterations, iterationJSON{
			Number:     it.Number,
			Propagated: s.recordsJSON(it.Propagated),
			Received:   s.recordsJSON(it.Received),
			Discarded:  s.recordsJSON(it.Discarded),
			DurationMS: float64(it.Duration.Microseconds()) / 1000,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (s *Simulation[U, I]) recordsJSON(records []Record) []recordJSON {
	out := make([]recordJSON, 0, len(records))
	for _, r := range records {
		out = append(out, recordJSON{
			User:     s.userName(r.User),
			Info:     s.infoName(r.Info),
			Creators: s.userNames(r.Creators),
		})
	}
	return out
}

func (s *Simulation[U, I]) userName(idx int) string {
	u, _ := s.data.User(idx)
	return fmt.Sprint(u)
}

func (s *Simulation[U, I]) userNames(idxs []int) []string {
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = s.userName(idx)
	}
	return out
}

func (s *Simulation[U, I]) infoName(idx int) string {
	p, _ := s.data.Information(idx)
	return fmt.Sprint(p.ID)
}
