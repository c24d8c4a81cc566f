package fir

import (
	"fmt"
	"math"

	"github.com/tphakala/go-filter-design/internal/mathutil"
	"gonum.org/v1/gonum/mat"
)

// LeastSquares designs a linear-phase FIR filter of numTaps (odd) taps whose
// amplitude response minimizes the integrated squared error against the
// piecewise-linear target. bands holds band edge pairs normalized to Nyquist
// (0..1) and desired the linear magnitude at each edge.
func LeastSquares(numTaps int, bands, desired []float64) ([]float64, error) {
	return LeastSquaresWeighted(numTaps, bands, desired, nil)
}

// LeastSquaresWeighted is LeastSquares with one error weight per band. A nil
// weight slice weights every band equally.
//
// With M = (numTaps-1)/2 the amplitude is A(ω) = Σ a_k·cos(kω), and the
// normal equations Q·a = b have Q = T + H, a Toeplitz plus Hankel matrix built
// from q(n) = Σ_bands W·∫cos(nω)dω. Both q and b have closed forms for linear
// band targets, so no frequency grid is involved.
func LeastSquaresWeighted(numTaps int, bands, desired, weights []float64) ([]float64, error) {
	if err := validateDesign(numTaps, bands, desired, weights); err != nil {
		return nil, err
	}

	half := (numTaps - 1) / 2
	numBands := len(bands) / 2
	if weights == nil {
		weights = make([]float64, numBands)
		for i := range weights {
			weights[i] = 1
		}
	}

	// q(n) for n = 0..numTaps-1; the Hankel part reaches index 2·half.
	q := make([]float64, numTaps)
	for n := range q {
		nf := float64(n)
		for k := range numBands {
			lo, hi := bands[2*k], bands[2*k+1]
			q[n] += weights[k] * (hi*mathutil.Sinc(hi*nf) - lo*mathutil.Sinc(lo*nf))
		}
	}

	normal := mat.NewSymDense(half+1, nil)
	for i := 0; i <= half; i++ {
		for j := i; j <= half; j++ {
			normal.SetSym(i, j, q[j-i]+q[i+j])
		}
	}

	rhs := make([]float64, half+1)
	for k := range numBands {
		lo, hi := bands[2*k], bands[2*k+1]
		slope := (desired[2*k+1] - desired[2*k]) / (hi - lo)
		intercept := desired[2*k] - lo*slope
		for n := range rhs {
			rhs[n] += weights[k] * (bandIntegral(hi, n, slope, intercept) - bandIntegral(lo, n, slope, intercept))
		}
	}

	a, err := solveNormal(normal, rhs)
	if err != nil {
		return nil, err
	}

	// Unfold the cosine series into a symmetric impulse response.
	taps := make([]float64, numTaps)
	taps[half] = 2 * a[0]
	for k := 1; k <= half; k++ {
		taps[half-k] = a[k]
		taps[half+k] = a[k]
	}
	return taps, nil
}

// bandIntegral is the antiderivative of (slope·f + intercept)·cos(nπf),
// scaled like q(n), evaluated at the band edge f.
func bandIntegral(f float64, n int, slope, intercept float64) float64 {
	v := f * (slope*f + intercept) * mathutil.Sinc(f*float64(n))
	if n == 0 {
		return v - slope*f*f/2
	}
	pn := math.Pi * float64(n)
	return v + slope*math.Cos(pn*f)/(pn*pn)
}

// solveNormal solves the positive definite system with Cholesky, falling back
// to an SVD least-squares solution when the matrix is rank deficient.
func solveNormal(normal *mat.SymDense, rhs []float64) ([]float64, error) {
	n := len(rhs)
	b := mat.NewVecDense(n, rhs)

	var chol mat.Cholesky
	if chol.Factorize(normal) {
		var x mat.VecDense
		if err := chol.SolveVecTo(&x, b); err == nil {
			return x.RawVector().Data, nil
		}
	}

	var svd mat.SVD
	if !svd.Factorize(normal, mat.SVDFull) {
		return nil, fmt.Errorf("%w: normal equations could not be factorized", ErrInvalidSpec)
	}
	rank := svd.Rank(rankCondition)
	if rank == 0 {
		return nil, fmt.Errorf("%w: normal equations have rank 0", ErrInvalidSpec)
	}
	var x mat.VecDense
	svd.SolveVecTo(&x, b, rank)
	return x.RawVector().Data, nil
}

func validateDesign(numTaps int, bands, desired, weights []float64) error {
	if numTaps < minTaps || numTaps > maxTaps {
		return fmt.Errorf("%w: %d taps (must be within [%d, %d])", ErrInvalidSpec, numTaps, minTaps, maxTaps)
	}
	if numTaps%2 == 0 {
		return fmt.Errorf("%w: %d taps (must be odd for a type I filter)", ErrInvalidSpec, numTaps)
	}
	if len(bands) < 2 || len(bands)%2 != 0 {
		return fmt.Errorf("%w: %d band edges (need pairs)", ErrInvalidSpec, len(bands))
	}
	if len(desired) != len(bands) {
		return fmt.Errorf("%w: %d desired values for %d band edges", ErrInvalidSpec, len(desired), len(bands))
	}
	if weights != nil && len(weights) != len(bands)/2 {
		return fmt.Errorf("%w: %d weights for %d bands", ErrInvalidSpec, len(weights), len(bands)/2)
	}
	for i, f := range bands {
		if math.IsNaN(f) || f < 0 || f > normalizedNyquist {
			return fmt.Errorf("%w: band edge %d = %g outside [0, 1]", ErrInvalidSpec, i, f)
		}
		if i > 0 && f < bands[i-1] {
			return fmt.Errorf("%w: band edges not monotonic at %d", ErrInvalidSpec, i)
		}
		if math.IsNaN(desired[i]) || math.IsInf(desired[i], 0) {
			return fmt.Errorf("%w: desired value %d is not finite", ErrInvalidSpec, i)
		}
	}
	for k := 0; k < len(bands); k += 2 {
		if !(bands[k+1] > bands[k]) {
			return fmt.Errorf("%w: band %d has no width", ErrInvalidSpec, k/2)
		}
	}
	for i, w := range weights {
		if !(w > 0) {
			return fmt.Errorf("%w: weight %d = %g (must be positive)", ErrInvalidSpec, i, w)
		}
	}
	return nil
}
