// Command iq-bench measures resampler throughput on a synthetic I/Q stream
// and verifies that the converted stream kept its tone where it should be.
//
// Usage:
//
//	iq-bench                                  # 120k→100k, linear backend
//	iq-bench -backend polyphase -seconds 10
//	iq-bench -input-rate 2400000 -output-rate 48000 -tone 10000
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	iqresampler "github.com/tphakala/go-iq-resampler"
	"github.com/tphakala/go-iq-resampler/internal/spectral"
)

const (
	defaultInputRate  = 120000
	defaultOutputRate = 100000
	defaultToneHz     = 12000.0
	defaultSeconds    = 5.0
	defaultBatch      = 8192

	bytesPerKilobyte = 1024.0
	megaScale        = 1e6

	// Complex samples used for the spectral check at the end of the run.
	analysisSamples = 16384
)

func main() {
	var (
		inputRate  = flag.Int("input-rate", defaultInputRate, "Input sample rate in Hz")
		outputRate = flag.Int("output-rate", defaultOutputRate, "Output sample rate in Hz")
		backend    = flag.String("backend", "linear", "Backend: linear, polyphase")
		taps       = flag.Int("taps", 0, "Filter taps (0 = default)")
		tone       = flag.Float64("tone", defaultToneHz, "Test tone frequency in Hz")
		seconds    = flag.Float64("seconds", defaultSeconds, "Simulated signal duration in seconds")
		batch      = flag.Int("batch", defaultBatch, "Complex samples per Process call")
	)
	flag.Parse()

	backendSel := iqresampler.BackendLinear
	if *backend == "polyphase" {
		backendSel = iqresampler.BackendPolyphase
	} else if *backend != "linear" {
		log.Fatalf("unknown backend %q (want linear or polyphase)", *backend)
	}

	r, err := iqresampler.New(&iqresampler.Config{
		InputRate:  *inputRate,
		OutputRate: *outputRate,
		FilterTaps: *taps,
		Backend:    backendSel,
	})
	if err != nil {
		log.Fatalf("Failed to create resampler: %v", err)
	}

	info := iqresampler.GetInfo(r)
	fmt.Printf("Resampler created:\n")
	fmt.Printf("  Algorithm: %s\n", info.Algorithm)
	fmt.Printf("  Ratio: %.6f (%d Hz -> %d Hz, L/M = %d/%d)\n",
		r.GetRatio(), *inputRate, *outputRate, info.UpFactor, info.DownFactor)
	fmt.Printf("  Filter length: %d taps\n", info.FilterLength)
	if info.Phases > 0 {
		fmt.Printf("  Phases: %d\n", info.Phases)
	}
	fmt.Printf("  Latency: %d samples\n", info.Latency)
	fmt.Printf("  Memory usage: %.2f KB\n", float64(info.MemoryUsage)/bytesPerKilobyte)

	fmt.Printf("\nStreaming %.1fs of a %.0f Hz tone in %d-sample batches...\n",
		*seconds, *tone, *batch)

	totalInput := int(*seconds * float64(*inputRate))
	input := make([]float64, 2**batch)

	var (
		inSamples  int64
		outSamples int64
		tail       []float64
		inPower    float64
	)

	start := time.Now()
	for pos := 0; pos < totalInput; pos += *batch {
		n := min(*batch, totalInput-pos)
		fillTone(input[:2*n], *tone, float64(*inputRate), pos)
		for i := range 2 * n {
			v := input[i]
			inPower += v * v
		}

		out, err := r.Process(input[:2*n])
		if err != nil {
			log.Fatalf("Processing failed: %v", err)
		}
		inSamples += int64(n)
		outSamples += int64(len(out) / 2)
		tail = keepTail(tail, out, 2*analysisSamples)
	}
	elapsed := time.Since(start)

	fmt.Printf("\nThroughput:\n")
	fmt.Printf("  Input samples: %d, output samples: %d\n", inSamples, outSamples)
	fmt.Printf("  Elapsed: %.3fs, %.1f Msamples/s, %.1fx realtime\n",
		elapsed.Seconds(),
		float64(inSamples)/elapsed.Seconds()/megaScale,
		float64(inSamples)/float64(*inputRate)/elapsed.Seconds())

	expected := int64(inSamples) * int64(*outputRate) / int64(*inputRate)
	fmt.Printf("  Expected output: %d (edge-trim shortfall: %d)\n",
		expected, expected-outSamples)

	// Spectral check on the stream tail.
	if len(tail) >= 4 {
		peak, err := spectral.PeakFrequency(tail, float64(*outputRate))
		if err != nil {
			log.Fatalf("Spectral analysis failed: %v", err)
		}
		outPower, err := spectral.TotalPower(tail)
		if err != nil {
			log.Fatalf("Spectral analysis failed: %v", err)
		}
		meanInPower := inPower / float64(inSamples)

		fmt.Printf("\nSignal check (last %d output samples):\n", len(tail)/2)
		fmt.Printf("  Tone: %.0f Hz in -> %.1f Hz out (error %.2f%%)\n",
			*tone, peak, 100*math.Abs(peak-*tone)/math.Abs(*tone))
		fmt.Printf("  Power: %.4f in -> %.4f out (%.2f dB)\n",
			meanInPower, outPower, spectral.PowerDB(outPower/meanInPower))
	}
}

// fillTone writes a unit complex exponential into an interleaved buffer,
// phase-continuous with the given stream offset.
func fillTone(dst []float64, freq, sampleRate float64, startSample int) {
	omega := 2 * math.Pi * freq / sampleRate
	for i := range len(dst) / 2 {
		phase := omega * float64(startSample+i)
		dst[2*i] = math.Cos(phase)
		dst[2*i+1] = math.Sin(phase)
	}
}

// keepTail appends out to tail and trims to the last maxLen floats.
func keepTail(tail, out []float64, maxLen int) []float64 {
	tail = append(tail, out...)
	if len(tail) > maxLen {
		tail = append(tail[:0], tail[len(tail)-maxLen:]...)
	}
	return tail
}
