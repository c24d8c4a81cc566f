// Package cic builds the ideal inverse response of cascaded CIC decimation
// stages and defines the exponential correction model fitted against it.
package cic

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-filter-design/internal/mathutil"
)

var (
	// ErrInvalidStage is returned for stage parameters that cannot describe a CIC filter.
	ErrInvalidStage = errors.New("invalid CIC stage")

	// ErrInvalidGrid is returned for frequency grids that are too short or unordered.
	ErrInvalidGrid = errors.New("invalid frequency grid")
)

// Stage describes one CIC decimator.
type Stage struct {
	// N is the number of integrator/comb sections. N == 0 disables the stage.
	N int

	// R is the decimation ratio.
	R int

	// M is the differential delay of the combs.
	M int
}

// Active reports whether the stage contributes to the response.
func (s Stage) Active() bool {
	return s.N > 0
}

// Validate checks the stage parameters. A disabled stage only needs N == 0.
func (s Stage) Validate() error {
	if s.N < 0 {
		return fmt.Errorf("%w: negative stage count %d", ErrInvalidStage, s.N)
	}
	if !s.Active() {
		return nil
	}
	if s.R < 1 {
		return fmt.Errorf("%w: decimation ratio %d (must be >= 1)", ErrInvalidStage, s.R)
	}
	if s.M < 1 {
		return fmt.Errorf("%w: differential delay %d (must be >= 1)", ErrInvalidStage, s.M)
	}
	return nil
}

// String formats the stage the way the firmware tables label it.
func (s Stage) String() string {
	return fmt.Sprintf("N=%d, R=%d, M=%d", s.N, s.R, s.M)
}

// Grid returns n normalized frequencies from GridEpsilon to GridNyquist.
func Grid(n int) ([]float64, error) {
	if n < minGridSize {
		return nil, fmt.Errorf("%w: %d points (minimum %d)", ErrInvalidGrid, n, minGridSize)
	}
	return mathutil.Linspace(GridEpsilon, GridNyquist, n), nil
}

// Target evaluates the compensation target Π |sinc(R·M·f)|^(-N) over the
// active stages. Disabled stages contribute a factor of exactly one; with no
// active stage the target is flat. High orders at a floored sinc null would
// overflow, so the running product saturates at math.MaxFloat64.
func Target(grid []float64, stages ...Stage) ([]float64, error) {
	if err := validateGrid(grid); err != nil {
		return nil, err
	}
	for i, s := range stages {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
	}

	target := make([]float64, len(grid))
	for i := range target {
		target[i] = 1.0
	}

	for _, s := range stages {
		if !s.Active() {
			continue
		}
		scale := float64(s.R * s.M)
		power := float64(-s.N)
		for i, f := range grid {
			target[i] = saturate(target[i] * math.Pow(sincMagnitude(scale*f), power))
		}
	}

	return target, nil
}

// sincMagnitude returns |sinc(x)| clamped to sincMagnitudeFloor.
func sincMagnitude(x float64) float64 {
	m := math.Abs(mathutil.Sinc(x))
	if m < sincMagnitudeFloor {
		return sincMagnitudeFloor
	}
	return m
}

// saturate clamps +Inf to the largest finite float64.
func saturate(v float64) float64 {
	if v > math.MaxFloat64 {
		return math.MaxFloat64
	}
	return v
}

func validateGrid(grid []float64) error {
	if len(grid) < minGridSize {
		return fmt.Errorf("%w: %d points (minimum %d)", ErrInvalidGrid, len(grid), minGridSize)
	}
	for i := 1; i < len(grid); i++ {
		if !(grid[i] > grid[i-1]) {
			return fmt.Errorf("%w: not strictly increasing at index %d", ErrInvalidGrid, i)
		}
	}
	return nil
}
