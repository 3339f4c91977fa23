package mathutil

import (
	"math"
)

// BesselI0 computes the modified Bessel function of the first kind, order
// zero: I₀(x). It is the kernel of the Kaiser window used by the polyphase
// backend's prototype filter design.
//
// The implementation uses Chebyshev polynomial approximations:
//   - For |x| ≤ 3.75: direct polynomial series expansion
//   - For |x| > 3.75: asymptotic expansion with exponential scaling
//
// Reference: Abramowitz & Stegun, "Handbook of Mathematical Functions".
func BesselI0(x float64) float64 {
	// I₀(x) = I₀(-x)
	ax := math.Abs(x)

	if ax < besselSmallArgThreshold {
		// I₀(x) ≈ 1 + (x/2)² * P(t) where t = (x/3.75)²
		t := x / besselSmallArgThreshold
		t *= t
		return 1.0 + t*(besselI0Coeff1+t*(besselI0Coeff2+t*(besselI0Coeff3+
			t*(besselI0Coeff4+t*(besselI0Coeff5+t*besselI0Coeff6)))))
	}

	// I₀(x) ≈ (eˣ / √(2πx)) * P(t) where t = 3.75/x
	t := besselSmallArgThreshold / ax
	result := besselI0AsympCoeff0 + t*(besselI0AsympCoeff1+t*(besselI0AsympCoeff2+
		t*(besselI0AsympCoeff3+t*(besselI0AsympCoeff4+t*(besselI0AsympCoeff5+
			t*(besselI0AsympCoeff6+t*(besselI0AsympCoeff7+t*besselI0AsympCoeff8)))))))

	return math.Exp(ax) * result / math.Sqrt(ax)
}

// KaiserBeta computes the Kaiser window β parameter from the desired stopband
// attenuation in decibels.
//
// Formula from Kaiser & Schafer:
//   - att > 50 dB: β = 0.1102 * (att - 8.7)
//   - 21 dB < att ≤ 50 dB: β = 0.5842 * (att - 21)^0.4 + 0.07886 * (att - 21)
//   - att ≤ 21 dB: β = 0
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff1 * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	default:
		return 0.0
	}
}

// EstimateFilterLength estimates the FIR filter length required to achieve
// the specified stopband attenuation with the given transition bandwidth,
// using Kaiser's formula:
//
//	N ≈ (att - 8) / (2.285 * 2π * Δf)
//
// The result is rounded up to the nearest odd integer and clamped to sane
// bounds.
func EstimateFilterLength(attenuation, transitionBW float64) int {
	if transitionBW <= 0 {
		transitionBW = defaultTransitionBW
	}

	numTaps := (attenuation - kaiserFilterLengthOffset) /
		(kaiserFilterLengthMultiplier * kaiserFilterLengthPiFactor * math.Pi * transitionBW)

	taps := int(math.Ceil(numTaps))
	if taps%2 == 0 {
		taps++
	}

	if taps < minFilterLength {
		taps = minFilterLength
	}
	if taps > maxFilterLength {
		taps = maxFilterLength
	}

	return taps
}
