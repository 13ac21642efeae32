package symbolic

import (
	"errors"
	"fmt"
)

// ErrAlgebra is matched by every *AlgebraError.
var ErrAlgebra = errors.New("algebra error")

// AlgebraError reports a construct the kernel could not process: a division
// by an exact zero, a logarithm outside its domain, an even root of a
// negative literal, or a node it does not know how to evaluate.
type AlgebraError struct {
	Op     string
	Reason string
}

func (e *AlgebraError) Error() string {
	return fmt.Sprintf("symbolic: %s: %s", e.Op, e.Reason)
}

func (e *AlgebraError) Is(target error) bool { return target == ErrAlgebra }

// fail aborts the current simplification. Exported entry points recover it
// and return it as an error.
func fail(op, reason string) {
	panic(&AlgebraError{Op: op, Reason: reason})
}

// guard converts a kernel failure raised below it into err. Any other panic
// is re-raised.
func guard(err *error) {
	if r := recover(); r != nil {
		if ae, ok := r.(*AlgebraError); ok {
			*err = ae
			return
		}
		panic(r)
	}
}
