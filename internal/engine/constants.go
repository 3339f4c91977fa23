package engine

// Filter and interpolation constants.
const (
	// DefaultFilterTaps is the anti-aliasing kernel length used when the
	// caller does not specify one. Odd so the kernel has an integer center.
	DefaultFilterTaps = 127

	// nyquistFraction is half the sample rate in normalized frequency.
	nyquistFraction = 0.5

	// sincZeroThreshold treats a fractional-delay argument this close to an
	// integer as the center tap.
	sincZeroThreshold = 1e-6

	// Hamming window coefficients for the fractional-delay sinc interpolator.
	hammingAlpha = 0.54
	hammingBeta  = 0.46

	// latencyDivisor converts a filter length to its nominal group delay.
	latencyDivisor = 2

	// bytesPerFloat64 is the size of a float64 in bytes, for memory accounting.
	bytesPerFloat64 = 8

	// channelsPerFrame is the number of real values per complex sample (I, Q).
	channelsPerFrame = 2
)

// Polyphase backend defaults.
const (
	// DefaultRolloff scales the polyphase prototype cutoff below the
	// theoretical band edge to leave a transition band.
	DefaultRolloff = 0.9

	// DefaultAttenuation is the polyphase prototype stopband attenuation in
	// dB. 90 dB yields a Kaiser β of about 9.
	DefaultAttenuation = 90.0
)
