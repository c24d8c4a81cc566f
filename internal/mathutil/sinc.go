// Package mathutil provides the scalar helpers shared by the filter design
// packages: normalized sinc, frequency grids and decibel conversion.
package mathutil

import "math"

// Sinc returns the normalized sinc sin(πx)/(πx), with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if math.Abs(x) < sincOriginThreshold {
		return 1.0
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// Linspace returns n evenly spaced samples over [start, stop], both ends
// included. n < 1 yields an empty slice and n == 1 yields {start}.
func Linspace(start, stop float64, n int) []float64 {
	if n < 1 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	step := (stop - start) / float64(n-1)
	for i := range n {
		out[i] = start + float64(i)*step
	}
	// Pin the last sample so accumulated rounding cannot overshoot stop.
	out[n-1] = stop
	return out
}

// DBToLinear converts an amplitude level in dB to a linear magnitude.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/dbAmplitudeFactor)
}

// LinearToDB converts a linear magnitude to dB, clamping tiny magnitudes.
func LinearToDB(magnitude float64) float64 {
	if magnitude < dbFloorMagnitude {
		magnitude = dbFloorMagnitude
	}
	return dbAmplitudeFactor * math.Log10(magnitude)
}
