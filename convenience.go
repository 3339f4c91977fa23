package iqresampler

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

const stereoPair = 2

// NewCaptureToDemod creates a resampler for the common 120 kHz capture to
// 100 kHz demodulator conversion.
func NewCaptureToDemod(backend Backend) (Resampler, error) {
	return New(&Config{
		InputRate:  RateSDRCapture,
		OutputRate: RateDemod,
		Backend:    backend,
	})
}

// NewToAudioDAT creates a resampler from an arbitrary I/Q rate down to the
// 48 kHz audio rate.
func NewToAudioDAT(inputRate int, backend Backend) (Resampler, error) {
	return New(&Config{
		InputRate:  inputRate,
		OutputRate: RateAudioDAT,
		Backend:    backend,
	})
}

// NewToAudioCD creates a resampler from an arbitrary I/Q rate down to the
// 44.1 kHz audio rate.
func NewToAudioCD(inputRate int, backend Backend) (Resampler, error) {
	return New(&Config{
		InputRate:  inputRate,
		OutputRate: RateAudioCD,
		Backend:    backend,
	})
}

// NewSimple creates a resampler with default filter parameters and the
// baseline backend.
func NewSimple(inputRate, outputRate int) (Resampler, error) {
	return New(&Config{
		InputRate:  inputRate,
		OutputRate: outputRate,
	})
}

// ResampleIQ is a convenience function for one-shot resampling of a complete
// interleaved I/Q recording. Streaming callers should hold a Resampler
// instead so state carries across batches.
func ResampleIQ(input []float64, inputRate, outputRate int, backend Backend) ([]float64, error) {
	r, err := New(&Config{
		InputRate:  inputRate,
		OutputRate: outputRate,
		Backend:    backend,
	})
	if err != nil {
		return nil, err
	}
	return r.Process(input)
}

// InterleaveIQ converts separate I and Q channels into an interleaved
// [I0, Q0, I1, Q1, ...] buffer. Channels longer than their partner are
// truncated to the shorter length.
func InterleaveIQ(i, q []float64) []float64 {
	n := min(len(i), len(q))
	out := make([]float64, n*stereoPair)
	f64.Interleave2(out, i[:n], q[:n])
	return out
}

// DeinterleaveIQ splits an interleaved [I0, Q0, I1, Q1, ...] buffer into
// separate I and Q channels. A trailing odd sample is dropped.
func DeinterleaveIQ(interleaved []float64) (i, q []float64) {
	n := len(interleaved) / stereoPair
	i = make([]float64, n)
	q = make([]float64, n)
	for k := range n {
		i[k] = interleaved[k*stereoPair]
		q[k] = interleaved[k*stereoPair+1]
	}
	return i, q
}

// InterleaveIQFloat32 is the float32 variant of InterleaveIQ.
func InterleaveIQFloat32(i, q []float32) []float32 {
	n := min(len(i), len(q))
	out := make([]float32, n*stereoPair)
	f32.Interleave2(out, i[:n], q[:n])
	return out
}

// DeinterleaveIQFloat32 is the float32 variant of DeinterleaveIQ.
func DeinterleaveIQFloat32(interleaved []float32) (i, q []float32) {
	n := len(interleaved) / stereoPair
	i = make([]float32, n)
	q = make([]float32, n)
	for k := range n {
		i[k] = interleaved[k*stereoPair]
		q[k] = interleaved[k*stereoPair+1]
	}
	return i, q
}
