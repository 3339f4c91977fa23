package engine

import (
	"math"

	"github.com/tphakala/go-iq-resampler/internal/simdops"
)

// InterpolateLinear evaluates a signal at a fractional position using a
// two-tap linear blend:
//
//	value = s[⌊pos⌋]·(1−frac) + s[⌊pos⌋+1]·frac
//
// falling back to s[⌊pos⌋] alone when the next index is out of range.
// The caller must guarantee 0 ≤ pos < len(signal).
//
// This is the runtime interpolation of the baseline engine. It is kept
// separate from filter design so a higher-quality interpolator can replace it
// without touching the streaming logic.
func InterpolateLinear[F simdops.Float](signal []F, pos float64) F {
	idx := int(pos)
	if idx+1 >= len(signal) {
		return signal[idx]
	}
	frac := F(pos - float64(idx))
	return signal[idx]*(1-frac) + signal[idx+1]*frac
}

// InterpolateSinc evaluates a signal at a fractional position by convolving
// with a Hamming-windowed sinc shifted by the fractional delay. numTaps
// controls the kernel span around ⌊pos⌋ and cutoff is the normalized lowpass
// cutoff in cycles/sample.
//
// This is the high-quality fractional-delay interpolator. No Process path
// calls it; it exists as a drop-in upgrade candidate for InterpolateLinear
// and is covered by its own tests only.
func InterpolateSinc[F simdops.Float](signal []F, pos float64, numTaps int, cutoff float64) F {
	half := numTaps / 2
	center := int(math.Floor(pos))
	frac := pos - float64(center)

	var result float64
	for i := range numTaps {
		idx := center - half + i
		if idx < 0 || idx >= len(signal) {
			continue
		}

		// Shift the kernel by the fractional delay.
		t := float64(i-half) - frac
		var h float64
		if math.Abs(t) < sincZeroThreshold {
			h = 1.0
		} else {
			h = math.Sin(2*math.Pi*cutoff*t) / (math.Pi * t)
			if numTaps > 1 {
				h *= hammingAlpha - hammingBeta*math.Cos(2*math.Pi*float64(i)/float64(numTaps-1))
			}
		}
		result += float64(signal[idx]) * h
	}

	return F(result)
}
