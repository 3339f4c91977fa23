package testutil

import (
	"math"
	"math/rand"
)

// GenerateTone generates numSamples complex samples of a tone at freq Hz,
// sampled at sampleRate Hz, as an interleaved [I0, Q0, I1, Q1, ...] sequence
// with unit amplitude.
//
// A complex exponential e^(j·2πf·n/fs) occupies a single spectral line, which
// makes power and frequency preservation easy to measure after resampling.
func GenerateTone(freq, sampleRate float64, numSamples int) []float64 {
	iq := make([]float64, 2*numSamples)
	omega := 2 * math.Pi * freq / sampleRate
	for n := range numSamples {
		phase := omega * float64(n)
		iq[2*n] = math.Cos(phase)
		iq[2*n+1] = math.Sin(phase)
	}
	return iq
}

// GenerateToneAt is like GenerateTone but starts at sample offset startSample,
// so consecutive batches of a stream stay phase-continuous.
func GenerateToneAt(freq, sampleRate float64, startSample, numSamples int) []float64 {
	iq := make([]float64, 2*numSamples)
	omega := 2 * math.Pi * freq / sampleRate
	for n := range numSamples {
		phase := omega * float64(startSample+n)
		iq[2*n] = math.Cos(phase)
		iq[2*n+1] = math.Sin(phase)
	}
	return iq
}

// GenerateConstant generates numSamples complex samples all equal to (i, q),
// interleaved. Used for DC preservation tests.
func GenerateConstant(i, q float64, numSamples int) []float64 {
	iq := make([]float64, 2*numSamples)
	for n := range numSamples {
		iq[2*n] = i
		iq[2*n+1] = q
	}
	return iq
}

// GenerateNoise generates numSamples complex samples of uniform noise in
// [-1, 1) per channel, interleaved, using the given seed for repeatability.
func GenerateNoise(seed int64, numSamples int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	iq := make([]float64, 2*numSamples)
	for n := range iq {
		iq[n] = 2*rng.Float64() - 1
	}
	return iq
}

// MeanPower returns the mean I²+Q² of an interleaved I/Q sequence.
// Returns 0 for sequences shorter than one complex sample.
func MeanPower(iq []float64) float64 {
	numSamples := len(iq) / 2
	if numSamples == 0 {
		return 0
	}
	var sum float64
	for n := range numSamples {
		i, q := iq[2*n], iq[2*n+1]
		sum += i*i + q*q
	}
	return sum / float64(numSamples)
}

// MeanIQ returns the per-channel means of an interleaved I/Q sequence.
func MeanIQ(iq []float64) (meanI, meanQ float64) {
	numSamples := len(iq) / 2
	if numSamples == 0 {
		return 0, 0
	}
	for n := range numSamples {
		meanI += iq[2*n]
		meanQ += iq[2*n+1]
	}
	return meanI / float64(numSamples), meanQ / float64(numSamples)
}

// EstimateFrequency estimates the frequency of a complex tone from the mean
// phase increment between consecutive samples:
//
//	f ≈ fs · mean(arg(x[n]·conj(x[n-1]))) / 2π
//
// The conjugate-product form avoids phase unwrapping. Edge samples are skipped
// because resampler edge effects distort them.
func EstimateFrequency(iq []float64, sampleRate float64) float64 {
	numSamples := len(iq) / 2
	if numSamples < 3 {
		return 0
	}

	// Skip a few samples at each end.
	const edgeGuard = 2
	var sum float64
	count := 0
	for n := edgeGuard + 1; n < numSamples-edgeGuard; n++ {
		i0, q0 := iq[2*(n-1)], iq[2*(n-1)+1]
		i1, q1 := iq[2*n], iq[2*n+1]
		// arg(x[n]·conj(x[n-1]))
		re := i1*i0 + q1*q0
		im := q1*i0 - i1*q0
		if re == 0 && im == 0 {
			continue
		}
		sum += math.Atan2(im, re)
		count++
	}
	if count == 0 {
		return 0
	}
	return sampleRate * (sum / float64(count)) / (2 * math.Pi)
}
