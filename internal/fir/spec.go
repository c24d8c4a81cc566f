// Package fir designs linear-phase FIR filters from piecewise-linear
// magnitude specifications and normalizes their gain at a reference
// frequency.
package fir

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-filter-design/internal/mathutil"
)

var (
	// ErrInvalidSpec is returned for breakpoint tables or tap counts the
	// least-squares design cannot use.
	ErrInvalidSpec = errors.New("invalid filter specification")

	// ErrDegenerate is returned when the reference projection is zero.
	ErrDegenerate = errors.New("degenerate normalization")
)

// Breakpoint is one end of a linear segment of the desired response.
type Breakpoint struct {
	Freq   float64 // Hz
	LossDB float64 // level in dB (0 = unity, negative = attenuation)
}

// MagnitudeSpec is a piecewise-linear (in dB) magnitude response. Points are
// consumed in pairs: points 2k and 2k+1 are the edges of band k. A step is
// written by starting the next band at the frequency the previous one ended.
type MagnitudeSpec struct {
	Points []Breakpoint
}

// Validate checks the table against the Nyquist frequency of sampleRate.
func (s MagnitudeSpec) Validate(sampleRate float64) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%w: sample rate %g", ErrInvalidSpec, sampleRate)
	}
	n := len(s.Points)
	if n < 2 || n%2 != 0 {
		return fmt.Errorf("%w: %d breakpoints (need an even count >= 2)", ErrInvalidSpec, n)
	}

	nyquist := sampleRate / 2
	for i, p := range s.Points {
		if math.IsNaN(p.Freq) || math.IsNaN(p.LossDB) || math.IsInf(p.LossDB, 0) {
			return fmt.Errorf("%w: breakpoint %d is not a number", ErrInvalidSpec, i)
		}
		if p.Freq < 0 || p.Freq > nyquist {
			return fmt.Errorf("%w: breakpoint %d at %g Hz outside [0, %g]", ErrInvalidSpec, i, p.Freq, nyquist)
		}
		if i > 0 && p.Freq < s.Points[i-1].Freq {
			return fmt.Errorf("%w: frequency decreases at breakpoint %d (%g < %g Hz)",
				ErrInvalidSpec, i, p.Freq, s.Points[i-1].Freq)
		}
	}
	for b := 0; b < n; b += 2 {
		if !(s.Points[b+1].Freq > s.Points[b].Freq) {
			return fmt.Errorf("%w: band %d has zero width at %g Hz", ErrInvalidSpec, b/2, s.Points[b].Freq)
		}
	}
	return nil
}

// Bands converts the table to band edges normalized to Nyquist and linear
// magnitudes 10^(dB/20), the form LeastSquares consumes.
func (s MagnitudeSpec) Bands(sampleRate float64) (bands, desired []float64, err error) {
	if err := s.Validate(sampleRate); err != nil {
		return nil, nil, err
	}
	nyquist := sampleRate / 2
	bands = make([]float64, len(s.Points))
	desired = make([]float64, len(s.Points))
	for i, p := range s.Points {
		bands[i] = p.Freq / nyquist
		desired[i] = mathutil.DBToLinear(p.LossDB)
	}
	return bands, desired, nil
}

// LevelAt interpolates the desired level in dB at freq. Frequencies between
// bands take the level of the nearest band edge.
func (s MagnitudeSpec) LevelAt(freq float64) float64 {
	n := len(s.Points)
	if n == 0 {
		return 0
	}
	for b := 0; b+1 < n; b += 2 {
		lo, hi := s.Points[b], s.Points[b+1]
		if freq < lo.Freq {
			return lo.LossDB
		}
		if freq <= hi.Freq {
			if hi.Freq == lo.Freq {
				return hi.LossDB
			}
			t := (freq - lo.Freq) / (hi.Freq - lo.Freq)
			return lo.LossDB + t*(hi.LossDB-lo.LossDB)
		}
	}
	return s.Points[n-1].LossDB
}
