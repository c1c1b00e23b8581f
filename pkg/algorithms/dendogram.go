package algorithms

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-socialnet/pkg/graph"
)

// ErrBadDendogram reports an unreadable or inconsistent merge file.
var ErrBadDendogram = errors.New("malformed dendogram")

// Merge joins two clusters into Parent. Leaves are vertex indices of the
// graph; parents are fresh ids.
type Merge struct {
	A, B, Parent int
}

// Dendogram is a merge hierarchy over the vertices of a graph.
type Dendogram[V comparable] struct {
	g        *graph.Graph[V]
	merges   []Merge // latest merge first
	children map[int][2]int
}

// ReadDendogram reads "childA\tchildB\tparent" lines, one merge per line in
// the order the merges happened. Blank and '#' lines are skipped.
func ReadDendogram[V comparable](r io.Reader, g *graph.Graph[V]) (*Dendogram[V], error) {
	d := &Dendogram[V]{g: g, children: make(map[int][2]int)}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: want 3 fields, got %d", ErrBadDendogram, line, len(fields))
		}
		var ids [3]int
		for i, f := range fields {
			n, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrBadDendogram, line, err)
			}
			ids[i] = n
		}
		m := Merge{A: ids[0], B: ids[1], Parent: ids[2]}
		if m.Parent < g.VertexCount() {
			return nil, fmt.Errorf("%w: line %d: parent %d collides with a vertex index", ErrBadDendogram, line, m.Parent)
		}
		if _, dup := d.children[m.Parent]; dup {
			return nil, fmt.Errorf("%w: line %d: parent %d merged twice", ErrBadDendogram, line, m.Parent)
		}
		d.children[m.Parent] = [2]int{m.A, m.B}
		d.merges = append(d.merges, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(d.merges)

	used := make(map[int]bool)
	for _, m := range d.merges {
		for _, c := range []int{m.A, m.B} {
			if used[c] {
				return nil, fmt.Errorf("%w: cluster %d merged twice", ErrBadDendogram, c)
			}
			used[c] = true
			if _, inner := d.children[c]; !inner && (c < 0 || c >= g.VertexCount()) {
				return nil, fmt.Errorf("%w: leaf %d is not a vertex index", ErrBadDendogram, c)
			}
		}
	}
	return d, nil
}

// Merges returns the merges, latest first.
func (d *Dendogram[V]) Merges() []Merge { return d.merges }

// roots lists the clusters nothing merges into, plus vertices that never
// take part in a merge.
func (d *Dendogram[V]) roots() []int {
	child := make(map[int]bool)
	for _, m := range d.merges {
		child[m.A] = true
		child[m.B] = true
	}
	var roots []int
	for _, m := range d.merges {
		if !child[m.Parent] {
			roots = append(roots, m.Parent)
		}
	}
	for idx := range d.g.VertexCount() {
		if !child[idx] {
			roots = append(roots, idx)
		}
	}
	return roots
}

// Cut undoes the latest merges until there are at least k clusters, or no
// merges are left, and returns the resulting partition.
func (d *Dendogram[V]) Cut(k int) *CommunityDetectionResult[V] {
	clusters := d.roots()
	pos := make(map[int]int, len(clusters))
	for i, c := range clusters {
		pos[c] = i
	}
	for _, m := range d.merges {
		if len(clusters) >= k {
			break
		}
		i, ok := pos[m.Parent]
		if !ok {
			continue
		}
		delete(pos, m.Parent)
		clusters[i] = m.A
		pos[m.A] = i
		pos[m.B] = len(clusters)
		clusters = append(clusters, m.B)
	}

	labels := make([]int, d.g.VertexCount())
	for label, c := range clusters {
		stack := []int{c}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if kids, ok := d.children[top]; ok {
				stack = append(stack, kids[0], kids[1])
				continue
			}
			labels[top] = label
		}
	}
	return buildResult(d.g, labels)
}
