package fir

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/go-filter-design/internal/mathutil"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FrequencyResponse holds a sampled frequency response.
type FrequencyResponse struct {
	// Frequencies normalized to the sample rate, in [0, 0.5).
	Frequencies []float64

	// Magnitude is the linear magnitude at each frequency.
	Magnitude []float64

	// Phase in radians.
	Phase []float64
}

// MagnitudeDB returns the magnitude response in dB.
func (r FrequencyResponse) MagnitudeDB() []float64 {
	out := make([]float64, len(r.Magnitude))
	for i, m := range r.Magnitude {
		out[i] = mathutil.LinearToDB(m)
	}
	return out
}

// Response evaluates the filter at numPoints evenly spaced frequencies from DC
// up to (not including) Nyquist, using one FFT of the zero-padded taps.
// numPoints <= 0 selects 512 points.
func Response(coeffs []float64, numPoints int) FrequencyResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	size := fftPaddingFactor * numPoints
	for size < len(coeffs) {
		size *= fftPaddingFactor
	}
	padded := make([]float64, size)
	copy(padded, coeffs)

	fft := fourier.NewFFT(size)
	spectrum := fft.Coefficients(nil, padded)

	// With size grown past 2·numPoints, keep every step-th bin.
	step := size / (fftPaddingFactor * numPoints)
	resp := FrequencyResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}
	for k := range numPoints {
		bin := spectrum[k*step]
		resp.Frequencies[k] = float64(k*step) / float64(size)
		resp.Magnitude[k] = cmplx.Abs(bin)
		resp.Phase[k] = cmplx.Phase(bin)
	}
	return resp
}

// MagnitudeAt evaluates |H(f)| directly from the DTFT at a single frequency in Hz.
func MagnitudeAt(coeffs []float64, freq, sampleRate float64) float64 {
	if len(coeffs) == 0 || !(sampleRate > 0) {
		return 0
	}
	cosRef, sinRef := referenceTones(len(coeffs), freq, sampleRate)
	return math.Hypot(f64.DotProduct(coeffs, cosRef), f64.DotProduct(coeffs, sinRef))
}
