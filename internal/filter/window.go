// Package filter provides anti-aliasing filter design for rational I/Q resampling.
package filter

import (
	"math"

	"github.com/tphakala/go-iq-resampler/internal/mathutil"
)

// HammingWindow generates a Hamming window of the specified length:
//
//	w[n] = 0.54 - 0.46·cos(2πn/(N-1))
//
// This is the window applied to the baseline engine's anti-aliasing kernel.
func HammingWindow(length int) []float64 {
	window := make([]float64, length)
	if length == 1 {
		window[0] = 1.0
		return window
	}

	for n := range length {
		window[n] = hammingAlpha - hammingBeta*math.Cos(twoPi*float64(n)/float64(length-1))
	}
	return window
}

// KaiserWindow generates a Kaiser window of the specified length and β parameter.
//
// The Kaiser window controls the trade-off between main lobe width and
// sidelobe level; higher β means more stopband attenuation but a wider
// transition band. It is used by the polyphase backend's prototype filter.
//
// The window is symmetric: w[i] = w[length-1-i].
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1.0
		return window
	}

	// w[n] = I₀(β * sqrt(1 - ((n - α)/α)²)) / I₀(β), α = (N-1)/2
	alpha := float64(length-1) / halfDivisor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		arg := beta * math.Sqrt(1.0-x*x)
		window[n] = mathutil.BesselI0(arg) / i0Beta
	}

	return window
}
