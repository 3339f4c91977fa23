// Command analyze-filter prints design diagnostics for the anti-aliasing
// filters: per-phase DC gain of a polyphase bank and the frequency response
// of the windowed-sinc kernel used by the linear backend.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/tphakala/go-iq-resampler/internal/filter"
	"github.com/tphakala/go-iq-resampler/internal/mathutil"
)

const (
	defaultInputRate  = 120000
	defaultOutputRate = 100000
	defaultTaps       = 127
	defaultRolloff    = 0.9
	defaultAttenDB    = 90.0

	maxPhasesToShow = 8
	responsePoints  = 9
)

func main() {
	var (
		inputRate  = flag.Int("input-rate", defaultInputRate, "Input sample rate in Hz")
		outputRate = flag.Int("output-rate", defaultOutputRate, "Output sample rate in Hz")
		taps       = flag.Int("taps", defaultTaps, "Minimum total filter taps")
		rolloff    = flag.Float64("rolloff", defaultRolloff, "Polyphase cutoff rolloff")
		attenDB    = flag.Float64("attenuation", defaultAttenDB, "Stopband attenuation in dB")
	)
	flag.Parse()

	ratio, err := mathutil.ReduceRatio(*inputRate, *outputRate)
	if err != nil {
		log.Fatalf("Invalid rates: %v", err)
	}

	fmt.Printf("=== Rate pair %d Hz -> %d Hz (L/M = %d/%d) ===\n\n",
		*inputRate, *outputRate, ratio.Up, ratio.Down)

	analyzeLinearKernel(*taps, ratio)
	analyzePolyphaseBank(*taps, ratio, *rolloff, *attenDB)
}

func analyzeLinearKernel(taps int, ratio mathutil.Ratio) {
	cutoff := 0.5 / float64(ratio.Max())
	kernel, err := filter.DesignLowPass(filter.Params{
		NumTaps:    taps,
		CutoffFreq: cutoff,
		Gain:       1.0,
	})
	if err != nil {
		log.Fatalf("Kernel design failed: %v", err)
	}

	var dc float64
	for _, c := range kernel {
		dc += c
	}

	fmt.Printf("Windowed-sinc kernel (linear backend):\n")
	fmt.Printf("  Taps: %d, cutoff: %.4f cycles/sample\n", taps, cutoff)
	fmt.Printf("  DC gain: %.10f\n", dc)

	response := filter.ComputeFrequencyResponse(kernel, responsePoints)
	fmt.Printf("  Response:\n")
	for k, freq := range response.Frequencies {
		fmt.Printf("    f=%.4f: %8.2f dB\n", freq, filter.MagnitudeDB(response.Magnitude[k]))
	}
	fmt.Println()
}

func analyzePolyphaseBank(taps int, ratio mathutil.Ratio, rolloff, attenDB float64) {
	bank, err := filter.DesignPolyphaseBank(filter.PolyphaseParams{
		NumPhases:    ratio.Up,
		MinTotalTaps: taps,
		Cutoff:       rolloff * 0.5 / float64(ratio.Max()),
		Beta:         mathutil.KaiserBeta(attenDB),
	})
	if err != nil {
		log.Fatalf("Bank design failed: %v", err)
	}

	fmt.Printf("Kaiser polyphase bank (polyphase backend):\n")
	fmt.Printf("  Phases: %d, taps/phase: %d, total taps: %d\n",
		bank.NumPhases, bank.TapsPerPhase, bank.TotalTaps)
	fmt.Printf("  Cutoff: %.4f, beta: %.3f (%.0f dB target)\n",
		bank.Cutoff, bank.Beta, attenDB)

	fmt.Printf("  DC gain per phase:\n")
	var totalDC float64
	for p, branch := range bank.Phases {
		var phaseDC float64
		for _, c := range branch {
			phaseDC += c
		}
		totalDC += phaseDC
		if p < maxPhasesToShow {
			fmt.Printf("    Phase %2d: %.10f\n", p, phaseDC)
		}
	}
	if bank.NumPhases > maxPhasesToShow {
		fmt.Printf("    ... (%d more phases)\n", bank.NumPhases-maxPhasesToShow)
	}

	fmt.Printf("  Total DC gain: %.10f (want ~%d)\n", totalDC, bank.NumPhases)
	fmt.Printf("  Average per phase: %.10f (want ~1)\n", totalDC/float64(bank.NumPhases))
}
