// Package engine implements the rational I/Q resampling engines.
//
// Two engines share one contract: Linear, the baseline two-tap interpolation
// engine, and Polyphase, the higher-quality Kaiser polyphase engine. Both
// consume interleaved [I0, Q0, I1, Q1, ...] buffers, carry per-channel state
// across calls so segmented input behaves like one continuous stream, and
// are generic over float32/float64 sample types.
package engine

import (
	"fmt"

	"github.com/tphakala/go-iq-resampler/internal/filter"
	"github.com/tphakala/go-iq-resampler/internal/mathutil"
	"github.com/tphakala/go-iq-resampler/internal/simdops"
)

// Linear is the baseline rational resampler.
//
// Construction reduces the rate pair to up/down factors and designs a
// Hamming-windowed-sinc anti-aliasing kernel sized to the reduced ratio; the
// kernel fixes the engine's parameters (cutoff, history depth) but the
// runtime path interpolates with a two-tap linear blend, trading stopband
// rejection for O(1) work per output sample.
//
// The engine keeps the last taps input samples per channel as history and
// prepends them to each batch, so chained Process calls on a stream produce
// the same samples as one call on the concatenated input (up to the
// edge-guard trimming at each call boundary).
//
// An instance is not safe for concurrent use; give each goroutine its own.
type Linear[F simdops.Float] struct {
	inputRate  int
	outputRate int
	ratio      mathutil.Ratio
	taps       int
	kernel     []float64

	// Per-channel history: the last taps raw input samples seen.
	histI []F
	histQ []F

	// Scratch buffers reused across calls to avoid per-call allocation.
	extI []F
	extQ []F
	outI []F
	outQ []F

	ops *simdops.Ops[F]
}

// NewLinear creates a baseline resampler for the given rate pair.
// filterTaps ≤ 0 selects DefaultFilterTaps. A degenerate tap count (e.g. 1)
// is accepted and produces low-quality output rather than an error.
func NewLinear[F simdops.Float](inputRate, outputRate, filterTaps int) (*Linear[F], error) {
	ratio, err := mathutil.ReduceRatio(inputRate, outputRate)
	if err != nil {
		return nil, err
	}

	if filterTaps <= 0 {
		filterTaps = DefaultFilterTaps
	}

	cutoff := nyquistFraction / float64(ratio.Max())
	kernel, err := filter.DesignLowPass(filter.Params{
		NumTaps:    filterTaps,
		CutoffFreq: cutoff,
		Gain:       1.0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to design anti-aliasing kernel: %w", err)
	}

	return &Linear[F]{
		inputRate:  inputRate,
		outputRate: outputRate,
		ratio:      ratio,
		taps:       filterTaps,
		kernel:     kernel,
		histI:      make([]F, filterTaps),
		histQ:      make([]F, filterTaps),
		ops:        simdops.For[F](),
	}, nil
}

// Process resamples one batch of interleaved I/Q samples.
//
// The input length must be even; an empty batch is a no-op returning an empty
// slice with history untouched. The returned slice is freshly allocated and
// its length is data dependent: near the tail of each batch, outputs whose
// fractional position lacks taps/2 samples of right context are withheld and
// re-emitted on the next call once the context arrives via history.
func (e *Linear[F]) Process(input []F) ([]F, error) {
	if len(input)%channelsPerFrame != 0 {
		return nil, ErrOddLength
	}

	numInput := len(input) / channelsPerFrame
	if numInput == 0 {
		return []F{}, nil
	}

	// Extended per-channel sequences: history followed by the new batch.
	extLen := e.taps + numInput
	e.extI = growSlice(e.extI, extLen)
	e.extQ = growSlice(e.extQ, extLen)
	copy(e.extI, e.histI)
	copy(e.extQ, e.histQ)
	for n := range numInput {
		e.extI[e.taps+n] = input[channelsPerFrame*n]
		e.extQ[e.taps+n] = input[channelsPerFrame*n+1]
	}

	// Nominal output count; the wide intermediate avoids overflow for large
	// batches and rates.
	numOutput := int(int64(numInput) * int64(e.outputRate) / int64(e.inputRate))

	ratio := float64(e.inputRate) / float64(e.outputRate)
	limit := float64(extLen - e.taps/2)

	e.outI = e.outI[:0]
	e.outQ = e.outQ[:0]
	for n := range numOutput {
		pos := float64(e.taps) + float64(n)*ratio
		if pos >= limit {
			// Not enough right context; the tail is carried into the next
			// call through the history buffers.
			break
		}
		e.outI = append(e.outI, InterpolateLinear(e.extI, pos))
		e.outQ = append(e.outQ, InterpolateLinear(e.extQ, pos))
	}

	// Refresh the trailing min(taps, numInput) history slots from the raw
	// input tail. A batch shorter than the history leaves the leading
	// entries stale; that is part of the contract, not a defect.
	k := e.taps
	if numInput < k {
		k = numInput
	}
	for n := range k {
		e.histI[e.taps-k+n] = input[(numInput-k+n)*channelsPerFrame]
		e.histQ[e.taps-k+n] = input[(numInput-k+n)*channelsPerFrame+1]
	}

	output := make([]F, channelsPerFrame*len(e.outI))
	e.ops.Interleave2(output, e.outI, e.outQ)
	return output, nil
}

// Reset zero-fills both history buffers, restoring the engine to its
// post-construction state. Idempotent.
func (e *Linear[F]) Reset() {
	clear(e.histI)
	clear(e.histQ)
}

// GetRatio returns the resampling ratio (outputRate / inputRate).
func (e *Linear[F]) GetRatio() float64 {
	return e.ratio.Float64()
}

// GetLatency returns the nominal engine latency in input samples.
func (e *Linear[F]) GetLatency() int {
	return e.taps / latencyDivisor
}

// GetFilterLength returns the anti-aliasing kernel length.
func (e *Linear[F]) GetFilterLength() int {
	return e.taps
}

// GetKernel returns a copy of the anti-aliasing kernel coefficients.
func (e *Linear[F]) GetKernel() []float64 {
	kernel := make([]float64, len(e.kernel))
	copy(kernel, e.kernel)
	return kernel
}

// GetFactors returns the reduced up (L) and down (M) conversion factors.
func (e *Linear[F]) GetFactors() (up, down int) {
	return e.ratio.Up, e.ratio.Down
}

// GetMemoryUsage returns the approximate state memory usage in bytes.
func (e *Linear[F]) GetMemoryUsage() int64 {
	perSample := int64(bytesPerFloat64)
	return int64(len(e.kernel))*bytesPerFloat64 +
		int64(len(e.histI)+len(e.histQ)+cap(e.extI)+cap(e.extQ))*perSample
}

// growSlice returns s resized to n, reallocating only when capacity is short.
func growSlice[F simdops.Float](s []F, n int) []F {
	if cap(s) < n {
		return make([]F, n)
	}
	return s[:n]
}
