package fir

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/tphakala/go-filter-design/internal/mathutil"
)

// KaiserWindow returns a symmetric Kaiser window of the given length, peaking
// at 1 in the centre.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}
	w := make([]float64, length)
	if length == 1 {
		w[0] = 1
		return w
	}

	center := float64(length-1) / 2
	norm := mathutil.BesselI0(beta)
	for n := range length {
		x := (float64(n) - center) / center
		w[n] = mathutil.BesselI0(beta*math.Sqrt(math.Max(0, 1-x*x))) / norm
	}
	return w
}

// ApplyKaiser tapers coeffs in place with a Kaiser window. beta <= 0 leaves
// the taps untouched.
func ApplyKaiser(coeffs []float64, beta float64) {
	if beta <= 0 {
		return
	}
	vecmath.MulBlockInPlace(coeffs, KaiserWindow(len(coeffs), beta))
}
