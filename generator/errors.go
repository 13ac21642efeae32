package generator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrGenerationExhausted is matched by the error Generate returns when
	// no candidate survived validation.
	ErrGenerationExhausted = errors.New("generation exhausted")
	ErrInvalidLevel        = errors.New("invalid difficulty level")

	ErrInexactResult      = errors.New("candidate does not simplify to exactly 1")
	ErrDuplicateStructure = errors.New("candidate structure already generated")
)

// Reason classifies why a candidate was abandoned.
type Reason string

const (
	ReasonAlgebra   Reason = "algebra"
	ReasonInexact   Reason = "inexact"
	ReasonDuplicate Reason = "duplicate"
)

// RejectionError reports one abandoned attempt. It never leaves the
// pipeline except as the Last field of an ExhaustedError.
type RejectionError struct {
	Reason Reason
	Err    error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("candidate rejected (%s): %v", e.Reason, e.Err)
}

func (e *RejectionError) Unwrap() error { return e.Err }

// ExhaustedError is returned after every attempt for a level was
// rejected.
type ExhaustedError struct {
	Level      Level
	Attempts   int
	Rejections map[Reason]int
	Last       error
}

func (e *ExhaustedError) Error() string {
	reasons := make([]string, 0, len(e.Rejections))
	for r, n := range e.Rejections {
		reasons = append(reasons, fmt.Sprintf("%s=%d", r, n))
	}
	sort.Strings(reasons)
	return fmt.Sprintf("%v: level %s after %d attempts (%s)",
		ErrGenerationExhausted, e.Level, e.Attempts, strings.Join(reasons, ", "))
}

func (e *ExhaustedError) Is(target error) bool { return target == ErrGenerationExhausted }

func (e *ExhaustedError) Unwrap() error { return e.Last }
