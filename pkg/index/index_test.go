package index

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestIndex_AddIsIdempotent(t *testing.T) {
	x := New[string]()

	a := x.Add("alice")
	b := x.Add("bob")
	again := x.Add("alice")

	if a != 0 || b != 1 {
		t.Fatalf("expected indices 0 and 1, got %d and %d", a, b)
	}
	if again != a {
		t.Errorf("re-adding alice returned %d, want %d", again, a)
	}
	if x.Size() != 2 {
		t.Errorf("Size() = %d, want 2", x.Size())
	}
}

func TestIndex_MissingLookups(t *testing.T) {
	x := New[int64]()
	x.Add(42)

	if got := x.Object2Idx(7); got != NotFound {
		t.Errorf("Object2Idx(7) = %d, want NotFound", got)
	}
	if _, ok := x.Idx2Object(1); ok {
		t.Error("Idx2Object(1) should fail on a one-element index")
	}
	if _, ok := x.Idx2Object(-1); ok {
		t.Error("Idx2Object(-1) should fail")
	}
	if x.Contains(7) {
		t.Error("Contains(7) should be false")
	}
	if !x.ContainsIdx(0) || x.ContainsIdx(1) {
		t.Error("ContainsIdx bounds are wrong")
	}
}

func TestIndex_IterationOrder(t *testing.T) {
	x := NewWithCapacity[string](3)
	for _, s := range []string{"c", "a", "b", "a"} {
		x.Add(s)
	}

	var got []string
	for obj := range x.Objects() {
		got = append(got, obj)
	}
	want := []string{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("Objects() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Objects()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for idx, obj := range x.Indices() {
		if x.Object2Idx(obj) != idx {
			t.Errorf("Indices() yielded (%d, %q) but Object2Idx returns %d", idx, obj, x.Object2Idx(obj))
		}
		if idx == 1 {
			break
		}
	}
}

// TestIndexInvariants checks the bijection and contiguity properties for
// arbitrary insertion sequences.
func TestIndexInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("idx2object(object2idx(id)) == id", prop.ForAll(
		func(ids []string) bool {
			x := New[string]()
			for _, id := range ids {
				x.Add(id)
			}
			for _, id := range ids {
				obj, ok := x.Idx2Object(x.Object2Idx(id))
				if !ok || obj != id {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("indices are contiguous from zero", prop.ForAll(
		func(ids []int64) bool {
			x := New[int64]()
			distinct := make(map[int64]struct{})
			for _, id := range ids {
				x.Add(id)
				distinct[id] = struct{}{}
			}
			if x.Size() != len(distinct) {
				return false
			}
			seen := make([]bool, x.Size())
			for id := range distinct {
				idx := x.Object2Idx(id)
				if idx < 0 || idx >= x.Size() || seen[idx] {
					return false
				}
				seen[idx] = true
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(-50, 50)),
	))

	properties.TestingRun(t)
}
