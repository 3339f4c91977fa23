// Package spectral provides frequency-domain measurements for interleaved
// I/Q sample streams. It exists for verification and benchmarking: checking
// that a resampled stream kept its spectral content where it should be.
package spectral

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrTooShort reports an analysis buffer with fewer than two complex samples.
var ErrTooShort = errors.New("need at least two complex samples")

// ErrOddLength reports an interleaved buffer that cannot be split into I/Q
// pairs.
var ErrOddLength = errors.New("input length must be even (interleaved I/Q pairs)")

// ToComplex converts an interleaved [I0, Q0, I1, Q1, ...] buffer into
// complex128 samples.
func ToComplex(iq []float64) ([]complex128, error) {
	if len(iq)%2 != 0 {
		return nil, ErrOddLength
	}
	out := make([]complex128, len(iq)/2)
	for i := range out {
		out[i] = complex(iq[2*i], iq[2*i+1])
	}
	return out, nil
}

// PowerSpectrum computes the power spectrum of an interleaved I/Q buffer.
//
// The full complex FFT is used, so the spectrum covers [0, sampleRate) with
// negative frequencies folded into the upper half, which is the natural view
// for complex baseband signals. Power is normalized by the square of the
// transform length so a unit-amplitude complex exponential lands near 1.0 in
// its bin.
func PowerSpectrum(iq []float64) ([]float64, error) {
	samples, err := ToComplex(iq)
	if err != nil {
		return nil, err
	}
	if len(samples) < 2 {
		return nil, ErrTooShort
	}

	fft := fourier.NewCmplxFFT(len(samples))
	coeffs := fft.Coefficients(nil, samples)

	norm := float64(len(samples)) * float64(len(samples))
	power := make([]float64, len(coeffs))
	for i, c := range coeffs {
		re, im := real(c), imag(c)
		power[i] = (re*re + im*im) / norm
	}
	return power, nil
}

// PeakFrequency returns the frequency in Hz with the most power in an
// interleaved I/Q buffer sampled at sampleRate. Bins above n/2 are negative
// frequencies, so the result lies in [-sampleRate/2, sampleRate/2).
//
// Resolution is sampleRate/n; no sub-bin refinement is attempted.
func PeakFrequency(iq []float64, sampleRate float64) (float64, error) {
	power, err := PowerSpectrum(iq)
	if err != nil {
		return 0, err
	}

	peak := 0
	for i, p := range power {
		if p > power[peak] {
			peak = i
		}
	}

	n := len(power)
	bin := peak
	if bin > n/2 {
		bin -= n
	}
	return float64(bin) * sampleRate / float64(n), nil
}

// TotalPower returns the mean power (mean of I²+Q²) of an interleaved I/Q
// buffer. By Parseval this matches the sum of the PowerSpectrum bins scaled
// by the transform length; it is computed in the time domain because that is
// cheaper and exact.
func TotalPower(iq []float64) (float64, error) {
	samples, err := ToComplex(iq)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, nil
	}

	var sum float64
	for _, c := range samples {
		sum += real(c)*real(c) + imag(c)*imag(c)
	}
	return sum / float64(len(samples)), nil
}

// BandPowerRatio returns the fraction of total spectral power inside the band
// [lowHz, highHz] for an interleaved I/Q buffer sampled at sampleRate. The
// band bounds may be negative for the lower sideband of a complex baseband
// stream.
//
// Useful for checking anti-aliasing: after a downconversion the out-of-band
// fraction should be small.
func BandPowerRatio(iq []float64, sampleRate, lowHz, highHz float64) (float64, error) {
	power, err := PowerSpectrum(iq)
	if err != nil {
		return 0, err
	}

	n := len(power)
	var total, inBand float64
	for i, p := range power {
		bin := i
		if bin > n/2 {
			bin -= n
		}
		freq := float64(bin) * sampleRate / float64(n)
		total += p
		if freq >= lowHz && freq <= highHz {
			inBand += p
		}
	}
	if total == 0 {
		return 0, nil
	}
	return inBand / total, nil
}

// SpectralCentroid returns the power-weighted mean frequency in Hz. A pure
// tone's centroid sits at the tone; broadband noise pulls it toward zero.
func SpectralCentroid(iq []float64, sampleRate float64) (float64, error) {
	power, err := PowerSpectrum(iq)
	if err != nil {
		return 0, err
	}

	n := len(power)
	var total, weighted float64
	for i, p := range power {
		bin := i
		if bin > n/2 {
			bin -= n
		}
		freq := float64(bin) * sampleRate / float64(n)
		total += p
		weighted += p * freq
	}
	if total == 0 {
		return 0, nil
	}
	return weighted / total, nil
}

// PhaseAt returns the instantaneous phase in radians of the complex sample at
// index i of an interleaved buffer.
func PhaseAt(iq []float64, i int) float64 {
	return cmplx.Phase(complex(iq[2*i], iq[2*i+1]))
}

// PowerDB converts a linear power ratio to decibels, clamping zero and
// negative inputs to a -300 dB floor.
func PowerDB(power float64) float64 {
	if power <= 0 {
		return -300
	}
	return 10 * math.Log10(power)
}
