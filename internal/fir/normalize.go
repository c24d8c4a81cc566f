package fir

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
)

// Projection selects how the taps are projected onto the reference sinusoid.
type Projection int

const (
	// ProjectionMagnitude projects onto the quadrature pair cos/sin and uses
	// the magnitude, so the normalized filter has |H(f)| = 1 exactly.
	ProjectionMagnitude Projection = iota

	// ProjectionSine projects onto the sine alone. This reproduces older
	// coefficient tables; for a symmetric filter of length L the resulting
	// gain is 1/|sin(ω·(L-1)/2)| rather than 1.
	ProjectionSine
)

// String implements fmt.Stringer.
func (p Projection) String() string {
	switch p {
	case ProjectionMagnitude:
		return "magnitude"
	case ProjectionSine:
		return "sine"
	default:
		return fmt.Sprintf("Projection(%d)", int(p))
	}
}

// ProjectAt returns the inner product of coeffs with a sinusoid of frequency
// freq sampled at the tap times n/sampleRate.
func ProjectAt(coeffs []float64, freq, sampleRate float64, mode Projection) (float64, error) {
	if len(coeffs) == 0 {
		return 0, fmt.Errorf("%w: no coefficients", ErrInvalidSpec)
	}
	if !(sampleRate > 0) || freq < 0 || freq > sampleRate/2 {
		return 0, fmt.Errorf("%w: reference %g Hz at %g Hz sample rate", ErrInvalidSpec, freq, sampleRate)
	}

	cosRef, sinRef := referenceTones(len(coeffs), freq, sampleRate)
	s := f64.DotProduct(coeffs, sinRef)

	switch mode {
	case ProjectionMagnitude:
		c := f64.DotProduct(coeffs, cosRef)
		return math.Hypot(c, s), nil
	case ProjectionSine:
		return s, nil
	default:
		return 0, fmt.Errorf("%w: unknown projection %v", ErrInvalidSpec, mode)
	}
}

// NormalizeAt scales coeffs in place by 1/projection so the filter gain at
// freq becomes one.
func NormalizeAt(coeffs []float64, freq, sampleRate float64, mode Projection) error {
	p, err := ProjectAt(coeffs, freq, sampleRate, mode)
	if err != nil {
		return err
	}
	if math.Abs(p) < degenerateProjection || math.IsNaN(p) {
		return fmt.Errorf("%w: projection %g at %g Hz", ErrDegenerate, p, freq)
	}
	f64.Scale(coeffs, coeffs, 1/p)
	return nil
}

// referenceTones samples cos and sin of 2π·freq·t at t = n/sampleRate.
func referenceTones(n int, freq, sampleRate float64) (cosRef, sinRef []float64) {
	cosRef = make([]float64, n)
	sinRef = make([]float64, n)
	omega := 2 * math.Pi * freq / sampleRate
	for i := range n {
		cosRef[i] = math.Cos(omega * float64(i))
		sinRef[i] = math.Sin(omega * float64(i))
	}
	return cosRef, sinRef
}
