package mathutil

import "math"

// BesselI0 computes the modified Bessel function of the first kind, order
// zero, by summing its power series Σ ((x/2)^k / k!)².
//
// The series converges for every finite x; for the β range used by Kaiser
// tapers (0-15) it needs fewer than 60 terms.
func BesselI0(x float64) float64 {
	half := x / halfDivisor
	halfSq := half * half

	sum := 1.0
	term := 1.0
	for k := 1; k <= besselMaxTerms; k++ {
		kf := float64(k)
		term *= halfSq / (kf * kf)
		sum += term
		if term < besselRelTolerance*sum {
			break
		}
	}
	return sum
}

// KaiserBeta returns the Kaiser window β that achieves the given stopband
// attenuation in dB.
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		d := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(d, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*d
	default:
		return 0
	}
}
