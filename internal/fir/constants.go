package fir

// Filter design constants
const (
	minTaps = 3
	maxTaps = 8191

	// Bands arrive normalized to Nyquist, so the valid range is [0, 1].
	normalizedNyquist = 1.0
)

// Normalization constants
const (
	// Projections below this magnitude cannot be divided out.
	degenerateProjection = 1e-12
)

// Frequency response constants
const (
	defaultResponsePoints = 512
	fftPaddingFactor      = 2
)

// Singular values below rankCondition·σ_max are dropped by the SVD fallback.
const rankCondition = 1e-13
