package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolateLinear_IntegerPositions(t *testing.T) {
	signal := []float64{1.0, 2.0, 4.0, 8.0}
	for i, want := range signal {
		assert.Equal(t, want, InterpolateLinear(signal, float64(i)))
	}
}

func TestInterpolateLinear_Midpoints(t *testing.T) {
	signal := []float64{0.0, 1.0, 3.0}
	assert.InDelta(t, 0.5, InterpolateLinear(signal, 0.5), 1e-15)
	assert.InDelta(t, 2.0, InterpolateLinear(signal, 1.5), 1e-15)
	assert.InDelta(t, 0.25, InterpolateLinear(signal, 0.25), 1e-15)
}

func TestInterpolateLinear_LastIndexFallback(t *testing.T) {
	signal := []float64{1.0, 2.0, 7.0}
	// No right neighbor: the floor sample alone is returned.
	assert.Equal(t, 7.0, InterpolateLinear(signal, 2.0))
	assert.Equal(t, 7.0, InterpolateLinear(signal, 2.9))
}

func TestInterpolateLinear_Float32(t *testing.T) {
	signal := []float32{0.0, 2.0}
	assert.InDelta(t, 1.0, float64(InterpolateLinear(signal, 0.5)), 1e-6)
}

func TestInterpolateLinear_ExactOnRamp(t *testing.T) {
	// Linear interpolation reproduces an affine signal exactly at every
	// fractional position.
	signal := make([]float64, 64)
	for i := range signal {
		signal[i] = 0.5 + 0.25*float64(i)
	}
	for _, pos := range []float64{3.1, 10.75, 40.5, 62.999} {
		want := 0.5 + 0.25*pos
		assert.InDelta(t, want, InterpolateLinear(signal, pos), 1e-12)
	}
}

func TestInterpolateSinc_RecoversBandlimitedTone(t *testing.T) {
	// A low-frequency sinusoid is well inside the interpolator passband, so
	// windowed-sinc evaluation at fractional positions should track the
	// continuous waveform closely.
	const (
		n       = 512
		freq    = 0.03 // cycles per sample
		numTaps = 63
	)
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i))
	}

	for _, pos := range []float64{100.5, 200.25, 300.125, 400.7} {
		want := math.Sin(2 * math.Pi * freq * pos)
		got := InterpolateSinc(signal, pos, numTaps, 0.5)
		assert.InDelta(t, want, got, 0.01, "pos=%f", pos)
	}
}

func TestInterpolateSinc_IntegerPositionNearIdentity(t *testing.T) {
	signal := make([]float64, 256)
	for i := range signal {
		signal[i] = math.Cos(2 * math.Pi * 0.02 * float64(i))
	}

	got := InterpolateSinc(signal, 128.0, 63, 0.5)
	assert.InDelta(t, signal[128], got, 0.01)
}

func TestInterpolateSinc_BeatsLinearOnCurvature(t *testing.T) {
	// On a curved signal the two-tap blend undershoots between samples; the
	// sinc kernel should land meaningfully closer to ground truth.
	const freq = 0.1
	signal := make([]float64, 256)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i))
	}

	var errLinear, errSinc float64
	for _, pos := range []float64{100.5, 120.5, 140.5, 160.5} {
		want := math.Sin(2 * math.Pi * freq * pos)
		errLinear += math.Abs(float64(InterpolateLinear(signal, pos)) - want)
		errSinc += math.Abs(float64(InterpolateSinc(signal, pos, 63, 0.5)) - want)
	}

	require.Less(t, errSinc, errLinear)
}
