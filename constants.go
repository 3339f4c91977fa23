package iqresampler

// Common I/Q sample rates for convenience functions.
const (
	// RateFunCube is the FUNcube Dongle Pro+ native I/Q rate.
	RateFunCube = 192000

	// RateAirspyHF is the Airspy HF+ low sample rate.
	RateAirspyHF = 192000

	// RateSDRCapture is a common wideband SDR capture rate.
	RateSDRCapture = 120000

	// RateDemod is a common demodulator input rate.
	RateDemod = 100000

	// RateRTL1024 is the RTL-SDR 1.024 Msps rate.
	RateRTL1024 = 1024000

	// RateRTL2048 is the RTL-SDR 2.048 Msps rate.
	RateRTL2048 = 2048000

	// RateRTL2400 is the RTL-SDR 2.4 Msps rate (crystal-friendly default).
	RateRTL2400 = 2400000

	// RateAudioDAT is the 48 kHz rate used when I/Q feeds audio-band
	// demodulation.
	RateAudioDAT = 48000

	// RateAudioCD is the 44.1 kHz audio rate.
	RateAudioCD = 44100
)

// Configuration validation limits.
const (
	// maxFilterTaps bounds FilterTaps in Config.Validate. Matches the
	// filter designer's own ceiling.
	maxFilterTaps = 8191

	// minRatioFactor and maxRatioFactor bound OutputRate/InputRate. Ratios
	// beyond 256:1 in either direction need a multi-stage conversion, which
	// a single filter cannot do well.
	minRatioFactor = 1.0 / 256.0
	maxRatioFactor = 256.0
)
