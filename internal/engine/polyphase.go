package engine

import (
	"fmt"

	"github.com/tphakala/go-iq-resampler/internal/filter"
	"github.com/tphakala/go-iq-resampler/internal/mathutil"
	"github.com/tphakala/go-iq-resampler/internal/simdops"
)

// Polyphase is the high-quality rational resampler.
//
// A Kaiser-windowed prototype lowpass is decomposed into L branches, one per
// output phase of the reduced L/M ratio. Each output sample is a single
// branch convolution over the input window ending at its integer input
// position, so the anti-aliasing filter is actually applied at runtime,
// unlike the Linear engine where it only parameterizes the setup.
//
// Fractional phase is tracked across calls with an integer time accumulator
// in the upsampled domain: each output advances time by M, the input index is
// time/L and the branch is time mod L. Input that cannot yet produce output
// is buffered, so chained calls are exactly equivalent to one concatenated
// call with no per-call edge loss.
//
// Output is not bit-compatible with the Linear engine, but the validation and
// streaming contract is identical and the cumulative output length follows
// the same numInput·outputRate/inputRate law.
type Polyphase[F simdops.Float] struct {
	inputRate   int
	outputRate  int
	ratio       mathutil.Ratio
	rolloff     float64
	attenuation float64

	bank   *filter.PolyphaseBank
	phases [][]F // bank branches converted to F
	taps   int   // taps per branch

	// Buffered per-channel input. The first taps-1 entries at stream start
	// are implicit zero history.
	bufI []F
	bufQ []F

	// t is the upsampled-domain time of the next output sample; bufStart is
	// the logical input index of bufI[0]. Both persist across calls.
	t        int64
	bufStart int64

	outI []F
	outQ []F

	ops *simdops.Ops[F]
}

// NewPolyphase creates a polyphase resampler for the given rate pair.
//
// filterTaps ≤ 0 selects DefaultFilterTaps; the prototype is rounded up to a
// whole number of taps per branch. rolloff scales the cutoff below the band
// edge (0 selects DefaultRolloff) and attenuation is the prototype stopband
// attenuation in dB (0 selects DefaultAttenuation).
func NewPolyphase[F simdops.Float](inputRate, outputRate, filterTaps int, rolloff, attenuation float64) (*Polyphase[F], error) {
	ratio, err := mathutil.ReduceRatio(inputRate, outputRate)
	if err != nil {
		return nil, err
	}

	if filterTaps <= 0 {
		filterTaps = DefaultFilterTaps
	}
	if rolloff == 0 {
		rolloff = DefaultRolloff
	}
	if rolloff < 0 || rolloff > 1 {
		return nil, fmt.Errorf("rolloff %f out of range (0, 1]", rolloff)
	}
	if attenuation == 0 {
		attenuation = DefaultAttenuation
	}
	if attenuation < 0 {
		return nil, fmt.Errorf("attenuation %f dB must be positive", attenuation)
	}

	cutoff := rolloff * nyquistFraction / float64(ratio.Max())
	bank, err := filter.DesignPolyphaseBank(filter.PolyphaseParams{
		NumPhases:    ratio.Up,
		MinTotalTaps: filterTaps,
		Cutoff:       cutoff,
		Beta:         mathutil.KaiserBeta(attenuation),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to design polyphase bank: %w", err)
	}

	phases := make([][]F, bank.NumPhases)
	for p, branch := range bank.Phases {
		phases[p] = make([]F, len(branch))
		for k, c := range branch {
			phases[p][k] = F(c)
		}
	}

	e := &Polyphase[F]{
		inputRate:   inputRate,
		outputRate:  outputRate,
		ratio:       ratio,
		rolloff:     rolloff,
		attenuation: attenuation,
		bank:        bank,
		phases:      phases,
		taps:        bank.TapsPerPhase,
		ops:         simdops.For[F](),
	}
	e.Reset()
	return e, nil
}

// Process resamples one batch of interleaved I/Q samples.
// Validation matches the Linear engine: odd-length input fails, an empty
// batch is a no-op returning an empty slice.
func (e *Polyphase[F]) Process(input []F) ([]F, error) {
	if len(input)%channelsPerFrame != 0 {
		return nil, ErrOddLength
	}

	numInput := len(input) / channelsPerFrame
	if numInput == 0 {
		return []F{}, nil
	}

	for n := range numInput {
		e.bufI = append(e.bufI, input[channelsPerFrame*n])
		e.bufQ = append(e.bufQ, input[channelsPerFrame*n+1])
	}

	up := int64(e.ratio.Up)
	down := int64(e.ratio.Down)

	e.outI = e.outI[:0]
	e.outQ = e.outQ[:0]
	for {
		idx := e.t / up
		j := int(idx - e.bufStart)
		if j >= len(e.bufI) {
			break
		}
		phase := e.t % up
		window := e.bufI[j-e.taps+1 : j+1]
		e.outI = append(e.outI, e.ops.DotProductUnsafe(window, e.phases[phase]))
		window = e.bufQ[j-e.taps+1 : j+1]
		e.outQ = append(e.outQ, e.ops.DotProductUnsafe(window, e.phases[phase]))
		e.t += down
	}

	// Drop input that can no longer contribute to any future output window.
	keepFrom := e.t/up - int64(e.taps) + 1
	if drop := int(keepFrom - e.bufStart); drop > 0 {
		e.bufI = append(e.bufI[:0], e.bufI[drop:]...)
		e.bufQ = append(e.bufQ[:0], e.bufQ[drop:]...)
		e.bufStart = keepFrom
	}

	output := make([]F, channelsPerFrame*len(e.outI))
	e.ops.Interleave2(output, e.outI, e.outQ)
	return output, nil
}

// Reset clears buffered input and the fractional-phase accumulator, restoring
// the engine to its post-construction state. Idempotent.
func (e *Polyphase[F]) Reset() {
	e.bufI = e.bufI[:0]
	e.bufQ = e.bufQ[:0]
	for range e.taps - 1 {
		e.bufI = append(e.bufI, 0)
		e.bufQ = append(e.bufQ, 0)
	}
	e.bufStart = -int64(e.taps - 1)
	e.t = 0
}

// GetRatio returns the resampling ratio (outputRate / inputRate).
func (e *Polyphase[F]) GetRatio() float64 {
	return e.ratio.Float64()
}

// GetLatency returns the prototype group delay in input samples.
func (e *Polyphase[F]) GetLatency() int {
	return e.taps / latencyDivisor
}

// GetFilterLength returns the prototype filter length.
func (e *Polyphase[F]) GetFilterLength() int {
	return e.bank.TotalTaps
}

// GetPhases returns the number of polyphase branches (the up-factor L).
func (e *Polyphase[F]) GetPhases() int {
	return e.bank.NumPhases
}

// GetFactors returns the reduced up (L) and down (M) conversion factors.
func (e *Polyphase[F]) GetFactors() (up, down int) {
	return e.ratio.Up, e.ratio.Down
}

// GetMemoryUsage returns the approximate state memory usage in bytes.
func (e *Polyphase[F]) GetMemoryUsage() int64 {
	perSample := int64(bytesPerFloat64)
	return e.bank.GetMemoryUsage() +
		int64(cap(e.bufI)+cap(e.bufQ)+cap(e.outI)+cap(e.outQ))*perSample
}
