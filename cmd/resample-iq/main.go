// Command resample-iq resamples I/Q recordings stored as 2-channel WAV files
// (channel 0 = I, channel 1 = Q, the format used by SDR# and similar tools).
//
// Usage:
//
//	resample-iq -rate 100000 capture_120k.wav capture_100k.wav
//	resample-iq -rate 48000 -backend polyphase capture.wav out.wav
//	resample-iq -rate 100000 -fast capture.wav out.wav   # float32 path
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	iqresampler "github.com/tphakala/go-iq-resampler"
)

const (
	// Complex samples per processing chunk. Larger chunks reduce per-call
	// overhead; the linear backend also loses less to edge trimming.
	chunkSamples = 65536

	minRequiredArgs = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rate := flag.Int("rate", 100000, "Target sample rate in Hz")
	backend := flag.String("backend", "linear", "Resampling backend: linear, polyphase")
	taps := flag.Int("taps", 0, "Anti-aliasing filter taps (0 = default)")
	fast := flag.Bool("fast", false, "Use float32 precision (faster, matches 16-bit captures)")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file (for PGO)")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -rate 100000 capture_120k.wav out.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -rate 48000 -backend polyphase capture.wav out.wav\n", os.Args[0])
		return fmt.Errorf("insufficient arguments")
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	inputPath := args[0]
	outputPath := args[1]

	backendSel, err := parseBackend(*backend)
	if err != nil {
		return err
	}

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		log.Printf("Target rate: %d Hz", *rate)
		log.Printf("Backend: %s", backendSel)
		if *fast {
			log.Printf("Precision: float32")
		} else {
			log.Printf("Precision: float64")
		}
	}

	start := time.Now()
	var stats *convertStats
	if *fast {
		stats, err = convertIQFloat32(inputPath, outputPath, *rate, *taps, backendSel, *verbose)
	} else {
		stats, err = convertIQFloat64(inputPath, outputPath, *rate, *taps, backendSel, *verbose)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Resampled %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz -> %d Hz (%d-bit I/Q)\n", stats.inputRate, stats.outputRate, stats.bitDepth)
	fmt.Printf("  %d samples -> %d samples\n", stats.inputSamples, stats.outputSamples)
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputSamples)/float64(stats.inputRate)/elapsed.Seconds())

	return nil
}

type convertStats struct {
	inputRate     int
	outputRate    int
	bitDepth      int
	inputSamples  int64
	outputSamples int64
}

func parseBackend(s string) (iqresampler.Backend, error) {
	switch strings.ToLower(s) {
	case "linear":
		return iqresampler.BackendLinear, nil
	case "polyphase":
		return iqresampler.BackendPolyphase, nil
	default:
		return 0, fmt.Errorf("unknown backend %q (want linear or polyphase)", s)
	}
}

func convertIQFloat64(inputPath, outputPath string, targetRate, taps int, backend iqresampler.Backend, verbose bool) (*convertStats, error) {
	return convertIQGeneric[float64](inputPath, outputPath, targetRate, taps, backend, verbose)
}

func convertIQFloat32(inputPath, outputPath string, targetRate, taps int, backend iqresampler.Backend, verbose bool) (*convertStats, error) {
	return convertIQGeneric[float32](inputPath, outputPath, targetRate, taps, backend, verbose)
}

// Float constraint for the generic conversion path.
type Float interface {
	float32 | float64
}

// processor is the subset of the resampler API the conversion loop needs,
// satisfied by both Resampler and Float32Resampler.
type processor[F Float] interface {
	Process(input []F) ([]F, error)
}

func convertIQGeneric[F Float](inputPath, outputPath string, targetRate, taps int, backend iqresampler.Backend, verbose bool) (stats *convertStats, err error) {
	input, err := openIQInput(inputPath, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	if input.rate == targetRate {
		return nil, fmt.Errorf("input already at target rate %d Hz", targetRate)
	}

	config := &iqresampler.Config{
		InputRate:  input.rate,
		OutputRate: targetRate,
		FilterTaps: taps,
		Backend:    backend,
	}
	resampler, err := newProcessor[F](config)
	if err != nil {
		return nil, err
	}

	output, err := createIQOutput(outputPath, targetRate, input.bitDepth)
	if err != nil {
		return nil, err
	}
	// Capture close errors: the WAV header sizes are written on Close.
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	buffers := newConvertBuffers[F](input.bitDepth, input.format)

	stats = &convertStats{
		inputRate:  input.rate,
		outputRate: targetRate,
		bitDepth:   input.bitDepth,
	}
	progress := newProgressTracker(input.totalSamples, verbose)

	for {
		n, err := input.decoder.PCMBuffer(buffers.intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read I/Q data: %w", err)
		}
		if n == 0 {
			break
		}

		frames := n / iqChannels
		buffers.intBuffer.Data = buffers.intBuffer.Data[:frames*iqChannels]
		stats.inputSamples += int64(frames)

		// PCM ints to normalized interleaved floats; the layout is already
		// [I, Q, I, Q, ...] so no channel splitting is needed.
		normalizeInto(buffers.intBuffer.Data, buffers.floatBuf, buffers.invMaxVal)

		resampled, err := resampler.Process(buffers.floatBuf[:frames*iqChannels])
		if err != nil {
			return nil, fmt.Errorf("resampling failed: %w", err)
		}
		stats.outputSamples += int64(len(resampled) / iqChannels)

		if len(resampled) > len(buffers.outputIntBuf) {
			buffers.outputIntBuf = make([]int, len(resampled))
		}
		outputLen := denormalizeInto(resampled, buffers.outputIntBuf, buffers.maxVal)
		if err := output.WriteSamples(buffers.outputIntBuf[:outputLen]); err != nil {
			return nil, fmt.Errorf("failed to write I/Q data: %w", err)
		}

		progress.reportIfNeeded(stats.inputSamples)

		buffers.intBuffer.Data = buffers.intBuffer.Data[:cap(buffers.intBuffer.Data)]
	}

	return stats, nil
}

func newProcessor[F Float](config *iqresampler.Config) (processor[F], error) {
	// The type switch is on the zero value; F is either float32 or float64.
	var zero F
	switch any(zero).(type) {
	case float32:
		r, err := iqresampler.NewFloat32(config)
		if err != nil {
			return nil, err
		}
		return any(r).(processor[F]), nil
	default:
		r, err := iqresampler.New(config)
		if err != nil {
			return nil, err
		}
		return any(r).(processor[F]), nil
	}
}

// normalizeInto converts PCM ints to floats in [-1, 1].
func normalizeInto[F Float](data []int, dst []F, invMaxVal float64) {
	for i, s := range data {
		dst[i] = F(float64(s) * invMaxVal)
	}
}

// denormalizeInto converts floats back to clamped PCM ints, returning the
// number of elements written.
func denormalizeInto[F Float](data []F, dst []int, maxVal float64) int {
	for i, s := range data {
		sample := float64(s)
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		dst[i] = int(sample * maxVal)
	}
	return len(data)
}
