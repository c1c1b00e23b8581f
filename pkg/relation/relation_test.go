package relation

import (
	"iter"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newTestRelation(t *testing.T, n int) *Relation[float64] {
	t.Helper()
	r := New[float64]()
	for i := 0; i < n; i++ {
		if !r.AddItem(i) {
			t.Fatalf("AddItem(%d) failed", i)
		}
	}
	return r
}

func collectIdx[V any](seq iter.Seq[Entry[V]]) []int {
	var out []int
	for e := range seq {
		out = append(out, e.Idx)
	}
	return out
}

func TestRelation_AddItem(t *testing.T) {
	r := New[int]()
	if !r.AddItem(2) {
		t.Fatal("AddItem(2) on empty relation failed")
	}
	if r.NumItems() != 3 {
		t.Errorf("NumItems() = %d, want 3 (gaps are registered)", r.NumItems())
	}
	if r.AddItem(1) {
		t.Error("AddItem(1) should report the item as already registered")
	}
	if r.AddItem(-1) {
		t.Error("AddItem(-1) should fail")
	}
}

func TestRelation_AddPair(t *testing.T) {
	r := newTestRelation(t, 4)

	if !r.AddPair(0, 1, 0.5) {
		t.Fatal("AddPair(0,1) failed")
	}
	if r.AddPair(0, 1, 0.9) {
		t.Error("duplicate AddPair(0,1) should fail")
	}
	if v, _ := r.Value(0, 1); v != 0.5 {
		t.Errorf("duplicate insert overwrote value: got %v, want 0.5", v)
	}
	if r.AddPair(0, 7, 1) {
		t.Error("AddPair with unregistered endpoint should fail")
	}
	if r.NumPairs() != 1 {
		t.Errorf("NumPairs() = %d, want 1", r.NumPairs())
	}
}

func TestRelation_SortedStreams(t *testing.T) {
	r := newTestRelation(t, 5)
	r.AddPair(0, 3, 1)
	r.AddPair(0, 1, 1)
	r.AddPair(0, 4, 1)
	r.AddPair(2, 1, 1)

	got := collectIdx(r.IdsSecond(0))
	want := []int{1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("IdsSecond(0) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IdsSecond(0)[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	got = collectIdx(r.IdsFirst(1))
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("IdsFirst(1) = %v, want [0 2]", got)
	}
	if r.NumSecond(0) != 3 || r.NumFirst(1) != 2 {
		t.Errorf("counts: NumSecond(0)=%d NumFirst(1)=%d", r.NumSecond(0), r.NumFirst(1))
	}
	if len(collectIdx(r.IdsSecond(99))) != 0 {
		t.Error("IdsSecond on unknown item should be empty")
	}
}

func TestRelation_UpdateAndRemove(t *testing.T) {
	r := newTestRelation(t, 3)
	r.AddPair(1, 2, 1.0)

	if r.UpdatePair(2, 1, 3.0) {
		t.Error("UpdatePair on a missing pair should fail")
	}
	if !r.UpdatePair(1, 2, 3.0) {
		t.Fatal("UpdatePair(1,2) failed")
	}
	for e := range r.IdsFirst(2) {
		if e.Idx == 1 && e.Value != 3.0 {
			t.Errorf("incidence view not updated: got %v", e.Value)
		}
	}

	if !r.RemovePair(1, 2) {
		t.Fatal("RemovePair(1,2) failed")
	}
	if r.ContainsPair(1, 2) || r.NumFirst(2) != 0 || r.NumSecond(1) != 0 {
		t.Error("RemovePair left a one-sided entry behind")
	}
	if r.RemovePair(1, 2) {
		t.Error("second RemovePair should fail")
	}
	if r.NumPairs() != 0 {
		t.Errorf("NumPairs() = %d, want 0", r.NumPairs())
	}
}

func TestMulti_ParallelValues(t *testing.T) {
	m := NewMulti[string]()
	for i := 0; i < 3; i++ {
		m.AddItem(i)
	}

	m.AddPair(0, 1, "a")
	m.AddPair(0, 1, "b")
	m.AddPair(0, 2, "c")

	if m.Multiplicity(0, 1) != 2 {
		t.Errorf("Multiplicity(0,1) = %d, want 2", m.Multiplicity(0, 1))
	}
	if m.NumPairs() != 2 || m.NumValues() != 3 {
		t.Errorf("NumPairs=%d NumValues=%d, want 2 and 3", m.NumPairs(), m.NumValues())
	}
	vals := m.Values(0, 1)
	if len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Errorf("Values(0,1) = %v, want [a b]", vals)
	}

	// Both views share one bucket.
	m.AddPair(0, 1, "d")
	for e := range m.IdsFirst(1) {
		if e.Idx == 0 && len(e.Value) != 3 {
			t.Errorf("incidence view sees %d values, want 3", len(e.Value))
		}
	}

	if !m.RemoveValue(0, 1, 0) {
		t.Fatal("RemoveValue failed")
	}
	if first, _ := m.First(0, 1); first != "b" {
		t.Errorf("First(0,1) = %q after removal, want b", first)
	}
	if !m.RemovePair(0, 1) {
		t.Fatal("RemovePair failed")
	}
	if m.ContainsPair(0, 1) || m.NumValues() != 1 {
		t.Errorf("after RemovePair: contains=%v NumValues=%d", m.ContainsPair(0, 1), m.NumValues())
	}

	if !m.RemoveValue(0, 2, 0) || m.ContainsPair(0, 2) {
		t.Error("removing the last value should remove the pair")
	}
}

// TestRelationSymmetry applies random add/update/remove sequences and checks
// that adjacency and incidence never disagree.
func TestRelationSymmetry(t *testing.T) {
	const n = 8

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("adjacency and incidence agree after any mutation sequence", prop.ForAll(
		func(ops []int, origs []int, dests []int) bool {
			r := New[int]()
			r.AddItem(n - 1)

			steps := min(len(ops), len(origs), len(dests))
			for i := 0; i < steps; i++ {
				o, d := origs[i], dests[i]
				switch ops[i] {
				case 0, 1:
					r.AddPair(o, d, i)
				case 2:
					r.UpdatePair(o, d, -i)
				case 3:
					r.RemovePair(o, d)
				}
			}

			pairs := 0
			for o := 0; o < n; o++ {
				for e := range r.IdsSecond(o) {
					pairs++
					v, ok := r.Value(o, e.Idx)
					if !ok || v != e.Value {
						return false
					}
					back := false
					for f := range r.IdsFirst(e.Idx) {
						if f.Idx == o {
							back = f.Value == e.Value
						}
					}
					if !back {
						return false
					}
				}
				incident := 0
				for range r.IdsFirst(o) {
					incident++
				}
				if incident != r.NumFirst(o) {
					return false
				}
			}
			return pairs == r.NumPairs()
		},
		gen.SliceOf(gen.IntRange(0, 3)),
		gen.SliceOf(gen.IntRange(0, n-1)),
		gen.SliceOf(gen.IntRange(0, n-1)),
	))

	properties.Property("multi relation multiplicity matches values", prop.ForAll(
		func(origs []int, dests []int) bool {
			m := NewMulti[float64]()
			m.AddItem(n - 1)
			steps := min(len(origs), len(dests))
			for i := 0; i < steps; i++ {
				m.AddPair(origs[i], dests[i], float64(i))
			}
			total := 0
			for o := 0; o < n; o++ {
				for e := range m.IdsSecond(o) {
					if len(e.Value) != m.Multiplicity(o, e.Idx) {
						return false
					}
					total += len(e.Value)
				}
			}
			return total == m.NumValues() && total == steps
		},
		gen.SliceOf(gen.IntRange(0, n-1)),
		gen.SliceOf(gen.IntRange(0, n-1)),
	))

	properties.TestingRun(t)
}
