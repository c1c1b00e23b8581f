package graphio

import (
	"bufio"
	"io"
	"strconv"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
	"github.com/dd0wney/cluso-socialnet/pkg/propagation"
)

// Write emits every edge as origin, destination, weight and type, one per
// line, followed by a single-field line for each isolated vertex. Weights
// use the shortest representation that parses back to the same value.
func Write[V comparable](w io.Writer, g *graph.Graph[V], format Formatter[V], sep string) error {
	bw := bufio.NewWriter(w)
	for e := range g.Edges() {
		bw.WriteString(format(e.From))
		bw.WriteString(sep)
		bw.WriteString(format(e.To))
		bw.WriteString(sep)
		bw.WriteString(strconv.FormatFloat(e.Weight, 'g', -1, 64))
		bw.WriteString(sep)
		bw.WriteString(strconv.Itoa(e.Type))
		bw.WriteByte('\n')
	}
	for v := range g.Nodes() {
		if g.Degree(v) == 0 {
			bw.WriteString(format(v))
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// WriteInformation emits piece, creator and timestamp lines.
func WriteInformation[U, I comparable](w io.Writer, pieces []propagation.Information[U, I], formatInfo Formatter[I],
	formatUser Formatter[U], sep string) error {
	bw := bufio.NewWriter(w)
	for _, p := range pieces {
		bw.WriteString(formatInfo(p.ID))
		bw.WriteString(sep)
		bw.WriteString(formatUser(p.Creator))
		bw.WriteString(sep)
		bw.WriteString(strconv.Itoa(p.Timestamp))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
