package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Reference values for I₀(x) from Abramowitz & Stegun tables.
func TestBesselI0_KnownValues(t *testing.T) {
	testCases := []struct {
		name     string
		x        float64
		expected float64
		tol      float64
	}{
		{"zero", 0.0, 1.0, 1e-10},
		{"one", 1.0, 1.2660658, 1e-6},
		{"two", 2.0, 2.2795853, 1e-6},
		{"small_arg_boundary", 3.75, 9.1189, 1e-3},
		{"asymptotic", 5.0, 27.239872, 1e-4},
		{"large", 10.0, 2815.7166, 1e-1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, BesselI0(tc.x), tc.tol)
		})
	}
}

func TestBesselI0_Symmetric(t *testing.T) {
	for _, x := range []float64{0.5, 1.0, 3.0, 7.5} {
		assert.InEpsilon(t, BesselI0(x), BesselI0(-x), 1e-12, "I₀ should be even, x=%f", x)
	}
}

func TestKaiserBeta(t *testing.T) {
	// High attenuation formula: β = 0.1102 * (att - 8.7)
	assert.InDelta(t, 0.1102*(90.0-8.7), KaiserBeta(90.0), 1e-12)

	// The default 90 dB attenuation gives β ≈ 9, the conventional value for
	// polyphase resampler prototypes.
	assert.InDelta(t, 9.0, KaiserBeta(90.0), 0.05)

	// Below 21 dB the window degenerates to rectangular.
	assert.Zero(t, KaiserBeta(20.0))

	// β increases monotonically with attenuation.
	prev := 0.0
	for att := 25.0; att <= 150; att += 5 {
		beta := KaiserBeta(att)
		assert.Greater(t, beta, prev, "β should increase with attenuation at %f dB", att)
		prev = beta
	}
}

func TestEstimateFilterLength(t *testing.T) {
	// Result is always odd and within bounds.
	for _, att := range []float64{40, 60, 90, 120} {
		for _, bw := range []float64{0.005, 0.01, 0.05} {
			taps := EstimateFilterLength(att, bw)
			assert.Equal(t, 1, taps%2, "taps should be odd (att=%f, bw=%f)", att, bw)
			assert.GreaterOrEqual(t, taps, 3)
			assert.LessOrEqual(t, taps, 8191)
		}
	}

	// Tighter transition band needs a longer filter.
	assert.Greater(t, EstimateFilterLength(90, 0.005), EstimateFilterLength(90, 0.05))

	// Zero bandwidth falls back to the default instead of dividing by zero.
	assert.Positive(t, EstimateFilterLength(90, 0))
}
