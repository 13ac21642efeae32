// Package generator produces expressions that are structurally elaborate
// yet provably equal to 1.
//
// A Generator drives three collaborators per attempt: a Builder that
// produces a core expression for a difficulty level, a Transformer that
// wraps the core in an identity forcing it to equal 1, and an Algebra that
// verifies the result exactly and computes its structural key. Keys are
// claimed in a Registry so no two returned expressions share a shape.
package generator

import "fmt"

// Level selects the builder and the identity strategies used for a
// generation.
type Level int

const (
	Elementary Level = iota + 1
	Polynomial
	Recursive
)

// Levels lists every valid level in ascending difficulty.
var Levels = []Level{Elementary, Polynomial, Recursive}

func (l Level) String() string {
	switch l {
	case Elementary:
		return "elementary"
	case Polynomial:
		return "polynomial"
	case Recursive:
		return "recursive"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

func (l Level) Valid() bool { return l >= Elementary && l <= Recursive }

// ParseLevel validates a caller-supplied level number.
func ParseLevel(n int) (Level, error) {
	l := Level(n)
	if !l.Valid() {
		return 0, fmt.Errorf("%w: %d (want 1, 2 or 3)", ErrInvalidLevel, n)
	}
	return l, nil
}
