package mathutil

// Sinc evaluation constants
const (
	// Below this |x| the normalized sinc is treated as its limit value 1.
	sincOriginThreshold = 1e-12
)

// Decibel conversion constants
const (
	dbAmplitudeFactor = 20.0  // 20*log10 for amplitude ratios
	dbFloorMagnitude  = 1e-10 // Avoid log(0) when converting to dB
)

// Bessel I₀ power series constants
const (
	besselMaxTerms     = 500   // Series terms before giving up
	besselRelTolerance = 1e-17 // Stop when a term no longer moves the sum
	halfDivisor        = 2.0
)

// Kaiser β formula constants (Kaiser & Schafer)
const (
	kaiserAttHigh   = 50.0 // dB, high attenuation branch
	kaiserAttMedium = 21.0 // dB, medium attenuation branch

	kaiserBetaHighCoeff  = 0.1102
	kaiserBetaHighOffset = 8.7

	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886
)
