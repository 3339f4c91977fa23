package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// An I/Q WAV is always 2 channels: channel 0 carries I, channel 1 Q.
	iqChannels = 2

	outputBufferMargin = 1024

	// Sample format constants.
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32
	maxInt16        = 32767.0
	maxInt24        = 8388607.0
	maxInt32        = 2147483647.0

	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// WAV format constants.
	wavHeaderSize      = 44
	wavRiffHeaderSize  = 36
	wavPCMSubchunkSize = 16
	wavFileSizeOffset  = 4
	wavDataSizeOffset  = 40

	bytesPerSample16 = 2
	bytesPerSample24 = 3
	bytesPerSample32 = 4
	bitsPerByte      = 8

	bitShift8  = 8
	bitShift16 = 16

	wavWriterBufferSize = 256 * 1024
	uint32Size          = 4
)

// iqInputInfo holds validated input file information.
type iqInputInfo struct {
	file         *os.File
	decoder      *wav.Decoder
	rate         int
	bitDepth     int
	totalSamples int64
	format       *audio.Format
}

// openIQInput opens and validates an I/Q WAV file. Files that are not
// exactly 2 channels are rejected; there is no meaningful I/Q interpretation
// for mono or surround layouts.
func openIQInput(path string, verbose bool) (*iqInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	if format.NumChannels != iqChannels {
		_ = inputFile.Close()
		return nil, fmt.Errorf("%s has %d channels, need 2 (I and Q)", path, format.NumChannels)
	}

	inputRate := format.SampleRate
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d-bit I/Q", inputRate, bitDepth)
	}

	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalSamples := int64(duration.Seconds() * float64(inputRate))

	return &iqInputInfo{
		file:         inputFile,
		decoder:      decoder,
		rate:         inputRate,
		bitDepth:     bitDepth,
		totalSamples: totalSamples,
		format:       format,
	}, nil
}

// Close closes the input file.
func (w *iqInputInfo) Close() error {
	return w.file.Close()
}

// iqOutputWriter wraps the output file and fast writer.
type iqOutputWriter struct {
	file   *os.File
	writer *fastWAVWriter
}

// createIQOutput creates the output file and writer.
func createIQOutput(path string, sampleRate, bitDepth int) (*iqOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	fastWriter, err := newFastWAVWriter(outputFile, sampleRate, bitDepth, iqChannels)
	if err != nil {
		_ = outputFile.Close()
		return nil, fmt.Errorf("failed to create WAV writer: %w", err)
	}

	return &iqOutputWriter{file: outputFile, writer: fastWriter}, nil
}

// WriteSamples writes interleaved samples to the output file.
func (w *iqOutputWriter) WriteSamples(samples []int) error {
	return w.writer.WriteSamples(samples)
}

// Close closes the output writer and file.
func (w *iqOutputWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		return err
	}
	return w.file.Close()
}

// convertBuffers holds preallocated buffers for the conversion loop.
type convertBuffers[F Float] struct {
	intBuffer    *audio.IntBuffer
	floatBuf     []F
	outputIntBuf []int
	invMaxVal    float64
	maxVal       float64
}

// newConvertBuffers creates and preallocates all processing buffers.
func newConvertBuffers[F Float](bitDepth int, format *audio.Format) *convertBuffers[F] {
	intBuffer := &audio.IntBuffer{
		Data:   make([]int, chunkSamples*iqChannels),
		Format: format,
	}

	maxVal := getMaxValue(bitDepth)

	return &convertBuffers[F]{
		intBuffer:    intBuffer,
		floatBuf:     make([]F, chunkSamples*iqChannels),
		outputIntBuf: make([]int, (chunkSamples+outputBufferMargin)*iqChannels),
		invMaxVal:    1.0 / maxVal,
		maxVal:       maxVal,
	}
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalSamples int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalSamples int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalSamples: totalSamples,
		verbose:      verbose,
	}
}

// reportIfNeeded reports progress if a threshold was crossed.
func (p *progressTracker) reportIfNeeded(currentSamples int64) {
	if !p.verbose || p.totalSamples == 0 {
		return
	}

	progress := int(float64(currentSamples) / float64(p.totalSamples) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// fastWAVWriter writes PCM data directly without per-sample allocations.
// Much faster than go-audio/wav's encoder for long captures.
type fastWAVWriter struct {
	w          *bufio.Writer
	f          *os.File
	sampleRate int
	bitDepth   int
	channels   int
	dataSize   uint32
	byteBuf    []byte
}

// newFastWAVWriter creates a new fast WAV writer.
func newFastWAVWriter(f *os.File, sampleRate, bitDepth, channels int) (*fastWAVWriter, error) {
	w := &fastWAVWriter{
		w:          bufio.NewWriterSize(f, wavWriterBufferSize),
		f:          f,
		sampleRate: sampleRate,
		bitDepth:   bitDepth,
		channels:   channels,
		byteBuf:    make([]byte, chunkSamples*channels*(bitDepth/bitsPerByte)),
	}

	if err := w.writeHeader(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *fastWAVWriter) writeHeader() error {
	byteRate := w.sampleRate * w.channels * (w.bitDepth / bitsPerByte)
	blockAlign := w.channels * (w.bitDepth / bitsPerByte)

	header := make([]byte, wavHeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 0) // Placeholder for file size - 8
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunkSize)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(w.bitDepth))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], 0) // Placeholder for data size

	_, err := w.w.Write(header)
	return err
}

// WriteSamples16 writes 16-bit PCM samples directly from an int slice.
func (w *fastWAVWriter) WriteSamples16(samples []int) error {
	needed := len(samples) * bytesPerSample16
	if len(w.byteBuf) < needed {
		w.byteBuf = make([]byte, needed)
	}

	buf := w.byteBuf[:needed]
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*bytesPerSample16:], uint16(int16(s)))
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

// WriteSamples24 writes 24-bit PCM samples directly from an int slice.
func (w *fastWAVWriter) WriteSamples24(samples []int) error {
	needed := len(samples) * bytesPerSample24
	if len(w.byteBuf) < needed {
		w.byteBuf = make([]byte, needed)
	}

	buf := w.byteBuf[:needed]
	for i, s := range samples {
		buf[i*bytesPerSample24] = byte(s)
		buf[i*bytesPerSample24+1] = byte(s >> bitShift8)
		buf[i*bytesPerSample24+2] = byte(s >> bitShift16)
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

// WriteSamples32 writes 32-bit PCM samples directly from an int slice.
func (w *fastWAVWriter) WriteSamples32(samples []int) error {
	needed := len(samples) * bytesPerSample32
	if len(w.byteBuf) < needed {
		w.byteBuf = make([]byte, needed)
	}

	buf := w.byteBuf[:needed]
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*bytesPerSample32:], uint32(int32(s)))
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

// WriteSamples writes samples using the appropriate bit depth.
func (w *fastWAVWriter) WriteSamples(samples []int) error {
	switch w.bitDepth {
	case bitsPerSample24:
		return w.WriteSamples24(samples)
	case bitsPerSample32:
		return w.WriteSamples32(samples)
	default:
		return w.WriteSamples16(samples)
	}
}

// Close flushes buffered data and updates the WAV header with final sizes.
func (w *fastWAVWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}

	fileSize := wavRiffHeaderSize + w.dataSize

	if _, err := w.f.Seek(wavFileSizeOffset, io.SeekStart); err != nil {
		return err
	}
	sizeBytes := make([]byte, uint32Size)
	binary.LittleEndian.PutUint32(sizeBytes, fileSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		return err
	}

	if _, err := w.f.Seek(wavDataSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, w.dataSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		return err
	}

	return nil
}
