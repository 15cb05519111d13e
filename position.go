package blockgen

import "fmt"

// Location is where an item sits in a sequence being joined.
type Location int

const (
	// First is the first item of a sequence with at least two items.
	First Location = iota
	// Nth is any item between the first and the last.
	Nth
	// Last is the last item of a sequence with at least two items.
	Last
	// Only is the single item of a one item sequence.
	Only
)

func (l Location) String() string {
	switch l {
	case First:
		return "First"
	case Nth:
		return "Nth"
	case Last:
		return "Last"
	case Only:
		return "Only"
	default:
		return fmt.Sprintf("Location(%d)", int(l))
	}
}

// Position is handed to JoinMap mappers.
type Position struct {
	Loc   Location
	Index int
}

func positionOf(i, n int) Position {
	switch {
	case n == 1:
		return Position{Loc: Only, Index: i}
	case i == 0:
		return Position{Loc: First, Index: i}
	case i == n-1:
		return Position{Loc: Last, Index: i}
	default:
		return Position{Loc: Nth, Index: i}
	}
}

// IsFirst is true for First and Only.
func (p Position) IsFirst() bool {
	return p.Loc == First || p.Loc == Only
}

// IsLast is true for Last and Only. Mappers use it to drop trailing separators.
func (p Position) IsLast() bool {
	return p.Loc == Last || p.Loc == Only
}

func (p Position) String() string {
	if p.Loc == Nth {
		return fmt.Sprintf("Nth(%d)", p.Index)
	}
	return p.Loc.String()
}
