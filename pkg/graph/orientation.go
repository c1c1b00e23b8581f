package graph

import (
	"fmt"
	"strings"
)

// Orientation selects which neighbour relation a query uses.
type Orientation int

const (
	// In selects predecessors: vertices with an edge pointing to the node.
	In Orientation = iota
	// Out selects successors: vertices the node points to.
	Out
	// Und selects the union of predecessors and successors.
	Und
	// Mutual selects reciprocal neighbours only (edges in both directions).
	Mutual
)

// String returns the canonical upper-case name of the orientation.
func (o Orientation) String() string {
	switch o {
	case In:
		return "IN"
	case Out:
		return "OUT"
	case Und:
		return "UND"
	case Mutual:
		return "MUTUAL"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Invert swaps In and Out. Und and Mutual are symmetric and are returned
// unchanged.
func (o Orientation) Invert() Orientation {
	switch o {
	case In:
		return Out
	case Out:
		return In
	default:
		return o
	}
}

// Valid reports whether o is one of the four defined orientations.
func (o Orientation) Valid() bool {
	return o >= In && o <= Mutual
}

// ParseOrientation converts a case-insensitive name into an Orientation.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "IN":
		return In, nil
	case "OUT":
		return Out, nil
	case "UND", "UNDIRECTED", "BOTH":
		return Und, nil
	case "MUTUAL":
		return Mutual, nil
	default:
		return In, fmt.Errorf("%w: unknown orientation %q", ErrInvalidOrientation, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrientation, int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so orientations can be
// read straight from configuration files.
func (o *Orientation) UnmarshalText(text []byte) error {
	parsed, err := ParseOrientation(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}
