package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
)

const (
	minFilterTaps = 1
	maxFilterTaps = 8191

	// Hamming window coefficients
	hammingAlpha = 0.54
	hammingBeta  = 0.46

	twoPi       = 2.0 * math.Pi
	halfDivisor = 2.0

	// Threshold below which a sinc argument is treated as the center tap
	sincZeroThreshold = 1e-10
)

// Params holds parameters for lowpass filter design.
type Params struct {
	// NumTaps is the filter length (number of coefficients).
	// Conventionally odd for a symmetric linear-phase FIR.
	NumTaps int

	// CutoffFreq is the normalized cutoff frequency in cycles/sample (0 to 0.5).
	// A rational resampler uses 0.5/max(L, M).
	CutoffFreq float64

	// Gain is the DC gain the coefficients are normalized to (typically 1.0).
	Gain float64
}

// Validate checks if filter parameters are valid.
//
// NumTaps = 1 or 2 is permitted; the resulting kernel is degenerate but the
// resampler contract defines this as low-quality, not an error.
func (p *Params) Validate() error {
	if p.NumTaps < minFilterTaps {
		return fmt.Errorf("filter too short: %d taps (minimum %d)", p.NumTaps, minFilterTaps)
	}

	if p.NumTaps > maxFilterTaps {
		return fmt.Errorf("filter too long: %d taps (maximum %d)", p.NumTaps, maxFilterTaps)
	}

	if p.CutoffFreq <= 0 || p.CutoffFreq > 0.5 {
		return fmt.Errorf("invalid cutoff frequency: %f (must be in (0, 0.5])", p.CutoffFreq)
	}

	if p.Gain <= 0 {
		return fmt.Errorf("invalid gain: %f (must be positive)", p.Gain)
	}

	return nil
}

// DesignLowPass designs a Hamming-windowed-sinc lowpass FIR kernel.
//
// For tap index i with t = i - NumTaps/2 (integer center):
//
//	h[i] = 2·fc                    t = 0
//	h[i] = sin(2π·fc·t) / (π·t)    otherwise
//
// multiplied by a Hamming window, then normalized so the coefficients sum to
// Gain. Sum-normalization preserves the DC level of a resampled signal.
func DesignLowPass(params Params) ([]float64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	window := HammingWindow(params.NumTaps)
	kernel := make([]float64, params.NumTaps)
	center := params.NumTaps / 2

	for i := range params.NumTaps {
		t := float64(i - center)

		var h float64
		if t == 0 {
			h = 2.0 * params.CutoffFreq
		} else {
			h = math.Sin(twoPi*params.CutoffFreq*t) / (math.Pi * t)
		}

		kernel[i] = h * window[i]
	}

	normalize(kernel, params.Gain)
	return kernel, nil
}

// DesignKaiserLowPass designs a Kaiser-windowed-sinc lowpass FIR filter.
//
// Unlike DesignLowPass this centers the sinc at (NumTaps-1)/2, producing an
// exactly symmetric impulse response, and takes the window β directly. It is
// the prototype design for the polyphase backend.
func DesignKaiserLowPass(numTaps int, cutoff, beta, gain float64) ([]float64, error) {
	params := Params{NumTaps: numTaps, CutoffFreq: cutoff, Gain: gain}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	window := KaiserWindow(numTaps, beta)
	kernel := make([]float64, numTaps)
	center := float64(numTaps-1) / halfDivisor

	for n := range numTaps {
		x := float64(n) - center

		var sincValue float64
		if math.Abs(x) < sincZeroThreshold {
			sincValue = 2.0 * cutoff
		} else {
			sincValue = math.Sin(twoPi*cutoff*x) / (math.Pi * x)
		}

		kernel[n] = sincValue * window[n]
	}

	normalize(kernel, gain)
	return kernel, nil
}

// normalize scales coefficients so they sum to gain.
// Uses SIMD-accelerated sum and scale operations.
func normalize(kernel []float64, gain float64) {
	sum := f64.Sum(kernel)
	if math.Abs(sum) > sincZeroThreshold {
		f64.Scale(kernel, kernel, gain/sum)
	}
}

// Response holds the frequency response of a filter.
type Response struct {
	// Frequencies at which the response was evaluated (normalized, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64

	// Phase response at each frequency (radians)
	Phase []float64
}

// ComputeFrequencyResponse evaluates the DTFT of a FIR filter at numPoints
// frequencies between 0 and Nyquist.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) Response {
	if numPoints <= 0 {
		numPoints = 512
	}

	response := Response{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) / float64(2*numPoints)
		response.Frequencies[k] = freq

		// H(e^jω) = Σ h[n]·e^(-jωn)
		var realPart, imagPart float64
		omega := twoPi * freq

		for n, h := range coeffs {
			angle := omega * float64(n)
			realPart += h * math.Cos(angle)
			imagPart -= h * math.Sin(angle)
		}

		response.Magnitude[k] = math.Sqrt(realPart*realPart + imagPart*imagPart)
		response.Phase[k] = math.Atan2(imagPart, realPart)
	}

	return response
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	const (
		minMagnitude = 1e-10 // avoid log(0)
		dbMultiplier = 20.0
	)

	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
