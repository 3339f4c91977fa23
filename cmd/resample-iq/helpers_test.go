package main

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	iqresampler "github.com/tphakala/go-iq-resampler"
)

func TestOpenIQInput_FileNotFound(t *testing.T) {
	_, err := openIQInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenIQInput_InvalidWAV(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.wav")
	err := os.WriteFile(invalidFile, []byte("not a wav file"), 0o644)
	require.NoError(t, err)

	_, err = openIQInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestParseBackend(t *testing.T) {
	b, err := parseBackend("linear")
	require.NoError(t, err)
	assert.Equal(t, iqresampler.BackendLinear, b)

	b, err = parseBackend("POLYPHASE")
	require.NoError(t, err)
	assert.Equal(t, iqresampler.BackendPolyphase, b)

	_, err = parseBackend("cubic")
	assert.Error(t, err)
}

func TestGetMaxValue(t *testing.T) {
	assert.Equal(t, maxInt16, getMaxValue(16))
	assert.Equal(t, maxInt24, getMaxValue(24))
	assert.Equal(t, maxInt32, getMaxValue(32))
	assert.Equal(t, maxInt16, getMaxValue(8))
}

func TestNormalizeDenormalizeRoundTrip(t *testing.T) {
	data := []int{0, 16384, -16384, 32767, -32767}
	floats := make([]float64, len(data))
	normalizeInto(data, floats, 1.0/maxInt16)

	assert.InDelta(t, 0.0, floats[0], 1e-12)
	assert.InDelta(t, 0.5, floats[1], 1e-3)
	assert.InDelta(t, 1.0, floats[3], 1e-12)

	ints := make([]int, len(floats))
	n := denormalizeInto(floats, ints, maxInt16)
	assert.Equal(t, len(data), n)
	assert.Equal(t, data, ints)
}

func TestDenormalizeInto_Clamps(t *testing.T) {
	ints := make([]int, 2)
	denormalizeInto([]float64{1.7, -2.3}, ints, maxInt16)
	assert.Equal(t, 32767, ints[0])
	assert.Equal(t, -32767, ints[1])
}

func TestCreateIQOutput_InvalidDirectory(t *testing.T) {
	_, err := createIQOutput("/nonexistent/dir/output.wav", 100000, 16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestFastWAVWriter_HeaderAndSizes(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.wav")

	output, err := createIQOutput(path, 100000, 16)
	require.NoError(t, err)

	samples := []int{100, -100, 200, -200}
	require.NoError(t, output.WriteSamples(samples))
	require.NoError(t, output.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), wavHeaderSize)

	assert.Equal(t, "RIFF", string(raw[0:4]))
	assert.Equal(t, "WAVE", string(raw[8:12]))
	assert.Equal(t, uint32(100000), binary.LittleEndian.Uint32(raw[24:28]))
	assert.Equal(t, uint16(iqChannels), binary.LittleEndian.Uint16(raw[22:24]))

	dataSize := binary.LittleEndian.Uint32(raw[wavDataSizeOffset : wavDataSizeOffset+4])
	assert.Equal(t, uint32(len(samples)*bytesPerSample16), dataSize)
	fileSize := binary.LittleEndian.Uint32(raw[wavFileSizeOffset : wavFileSizeOffset+4])
	assert.Equal(t, uint32(wavRiffHeaderSize)+dataSize, fileSize)
}

func TestEndToEnd_ResampleIQWAV(t *testing.T) {
	// Write a small 120 kHz I/Q capture, convert to 100 kHz, and check the
	// output header and sample count.
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "in.wav")
	outPath := filepath.Join(tmpDir, "out.wav")

	writeTestCapture(t, inPath, 120000, 12000)

	stats, err := convertIQFloat64(inPath, outPath, 100000, 0, iqresampler.BackendPolyphase, false)
	require.NoError(t, err)
	assert.Equal(t, 120000, stats.inputRate)
	assert.Equal(t, 100000, stats.outputRate)
	assert.Equal(t, int64(12000), stats.inputSamples)
	assert.InDelta(t, 10000, stats.outputSamples, 2)

	info, err := openIQInput(outPath, false)
	require.NoError(t, err)
	defer func() { _ = info.Close() }()
	assert.Equal(t, 100000, info.rate)
	assert.Equal(t, 16, info.bitDepth)
}

// writeTestCapture writes a 16-bit 2-channel WAV with a half-scale tone.
func writeTestCapture(t *testing.T, path string, rate, numSamples int) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	w, err := newFastWAVWriter(f, rate, 16, iqChannels)
	require.NoError(t, err)

	samples := make([]int, numSamples*iqChannels)
	for i := range numSamples {
		samples[2*i] = 8192
		samples[2*i+1] = -8192
	}
	require.NoError(t, w.WriteSamples(samples))
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}
