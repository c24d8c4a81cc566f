package filterdesign

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration reports malformed input: stage parameters, breakpoint
	// tables, tap counts, unknown presets. It is returned before any solve.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrConvergence reports a nonlinear fit that ended without reaching a
	// stationary point.
	ErrConvergence = errors.New("fit did not converge")

	// ErrDegenerateNormalization reports a zero projection at the
	// normalization frequency.
	ErrDegenerateNormalization = errors.New("degenerate normalization")
)

// ConvergenceError describes a failed compensation fit.
type ConvergenceError struct {
	// Last is the last parameter vector the solver accepted.
	Last []float64

	// Iterations is the number of iterations performed.
	Iterations int

	// Err is the solver's own error.
	Err error
}

// Error implements error.
func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (last p = %v): %v",
		ErrConvergence, e.Iterations, e.Last, e.Err)
}

// Unwrap exposes both ErrConvergence and the solver error to errors.Is.
func (e *ConvergenceError) Unwrap() []error {
	return []error{ErrConvergence, e.Err}
}

func configError(err error) error {
	return fmt.Errorf("%w: %w", ErrConfiguration, err)
}
