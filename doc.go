// Package iqresampler provides streaming sample-rate conversion for complex
// (I/Q) baseband signals in pure Go.
//
// The library targets SDR receive chains: a capture device delivers
// interleaved I/Q samples at one rate (say 120 kHz) and a demodulator wants
// another (say 100 kHz). Rate pairs are reduced to an exact rational ratio,
// an anti-aliasing lowpass is designed for the reduced ratio, and batches of
// any size stream through with per-channel state carried across calls.
//
// # Features
//
//   - Exact rational rate conversion (120k→100k, 48k→44.1k, and any pair)
//   - Streaming API: feed batches of any even length, state carries over
//   - Two backends: a cheap linear-interpolation engine and a high-quality
//     Kaiser polyphase engine with exact cross-call phase tracking
//   - float64 and float32 native paths, both SIMD accelerated
//     (AVX2/SSE) via github.com/tphakala/simd
//   - Pure Go, no CGO
//
// # Quick Start
//
// One-shot conversion of a complete recording:
//
//	output, err := iqresampler.ResampleIQ(iq, 120000, 100000, iqresampler.BackendLinear)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Streaming conversion with a reusable resampler:
//
//	r, err := iqresampler.New(&iqresampler.Config{
//	    InputRate:  120000,
//	    OutputRate: 100000,
//	    Backend:    iqresampler.BackendPolyphase,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for chunk := range iqChunks {
//	    output, err := r.Process(chunk)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    writeOutput(output)
//	}
//
// # Backends
//
//   - [BackendLinear]: a Hamming windowed-sinc design fixes the filter
//     parameters; output samples are produced by two-tap linear
//     interpolation at each fractional position. Lowest CPU cost, adequate
//     when the signal of interest sits well inside the output Nyquist band.
//   - [BackendPolyphase]: a Kaiser-windowed prototype lowpass decomposed
//     into one branch per output phase, applied at runtime. Chained calls
//     are bit-identical to one call on the concatenated input.
//
// Both backends accept input in any even-length batch size and return
// whatever output the batch (plus carried state) can produce.
//
// # Sample Format
//
// All buffers are interleaved [I0, Q0, I1, Q1, ...]. One complex sample is
// one I/Q pair, so a buffer of 2n floats holds n samples. Process returns an
// error for odd-length input. Helpers [InterleaveIQ] and [DeinterleaveIQ]
// convert between interleaved and planar layouts.
//
// # Thread Safety
//
// A [Resampler] instance carries mutable streaming state and is not safe for
// concurrent use. Give each stream its own instance; instances are cheap.
package iqresampler
