package cic

// Grid constants
const (
	// GridEpsilon is the first grid sample; it keeps the grid off f = 0.
	GridEpsilon = 1e-8

	// GridNyquist is the last grid sample (normalized frequency).
	GridNyquist = 0.5

	// DefaultGridSize matches the number of points the firmware tables were fitted on.
	DefaultGridSize = 300

	minGridSize = 2
)

// Sinc magnitudes below this floor are clamped before the negative power is
// taken, so sinc nulls that land on a grid sample stay finite.
const sincMagnitudeFloor = 1e-12

// Correction model constants
const (
	// correctionCenter is the frequency where exp(p2*(f-c)) equals 1.
	correctionCenter = 0.5
)
