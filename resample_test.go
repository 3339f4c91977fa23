package iqresampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-iq-resampler/internal/spectral"
	"github.com/tphakala/go-iq-resampler/internal/testutil"
)

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid_defaults", Config{InputRate: 120000, OutputRate: 100000}, false},
		{"valid_polyphase", Config{InputRate: 48000, OutputRate: 44100, Backend: BackendPolyphase, Rolloff: 0.85, Attenuation: 80}, false},
		{"zero_input_rate", Config{InputRate: 0, OutputRate: 100000}, true},
		{"negative_output_rate", Config{InputRate: 120000, OutputRate: -1}, true},
		{"taps_too_large", Config{InputRate: 120000, OutputRate: 100000, FilterTaps: 100000}, true},
		{"negative_taps", Config{InputRate: 120000, OutputRate: 100000, FilterTaps: -1}, true},
		{"unknown_backend", Config{InputRate: 120000, OutputRate: 100000, Backend: Backend(9)}, true},
		{"ratio_too_large", Config{InputRate: 1, OutputRate: 1000}, true},
		{"rolloff_above_one", Config{InputRate: 120000, OutputRate: 100000, Rolloff: 1.5}, true},
		{"negative_attenuation", Config{InputRate: 120000, OutputRate: 100000, Attenuation: -3}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewFloat32(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_BothBackends(t *testing.T) {
	for _, backend := range []Backend{BackendLinear, BackendPolyphase} {
		t.Run(backend.String(), func(t *testing.T) {
			r, err := New(&Config{InputRate: 120000, OutputRate: 100000, Backend: backend})
			require.NoError(t, err)

			assert.InEpsilon(t, 100000.0/120000.0, r.GetRatio(), 1e-15)
			assert.Positive(t, r.GetLatency())

			out, err := r.Process(testutil.GenerateTone(12000, 120000, 2000))
			require.NoError(t, err)
			assert.Equal(t, 0, len(out)%2)
			assert.NotEmpty(t, out)
		})
	}
}

func TestProcess_OddLength(t *testing.T) {
	for _, backend := range []Backend{BackendLinear, BackendPolyphase} {
		t.Run(backend.String(), func(t *testing.T) {
			r, err := New(&Config{InputRate: 120000, OutputRate: 100000, Backend: backend})
			require.NoError(t, err)

			_, err = r.Process([]float64{0.1, 0.2, 0.3})
			assert.ErrorIs(t, err, ErrOddLength)
		})
	}
}

func TestProcess_EmptyInput(t *testing.T) {
	for _, backend := range []Backend{BackendLinear, BackendPolyphase} {
		t.Run(backend.String(), func(t *testing.T) {
			r, err := New(&Config{InputRate: 120000, OutputRate: 100000, Backend: backend})
			require.NoError(t, err)

			out, err := r.Process(nil)
			require.NoError(t, err)
			assert.Empty(t, out)
		})
	}
}

func TestProcess_OutputLengthLaw(t *testing.T) {
	// Cumulative output over a long stream tracks numInput·outputRate/inputRate.
	for _, backend := range []Backend{BackendLinear, BackendPolyphase} {
		t.Run(backend.String(), func(t *testing.T) {
			r, err := New(&Config{InputRate: 120000, OutputRate: 100000, Backend: backend})
			require.NoError(t, err)

			const batch, batches = 2000, 20
			var total int
			for b := range batches {
				out, err := r.Process(testutil.GenerateToneAt(10000, 120000, b*batch, batch))
				require.NoError(t, err)
				total += len(out) / 2
			}

			nominal := batches * batch * 100000 / 120000
			// The linear backend withholds a filter-length tail per call.
			assert.InDelta(t, nominal, total, float64(batches*70))
			assert.LessOrEqual(t, total, nominal+1)
		})
	}
}

func TestProcess_ResetEquivalence(t *testing.T) {
	input := testutil.GenerateTone(12000, 120000, 2000)

	for _, backend := range []Backend{BackendLinear, BackendPolyphase} {
		t.Run(backend.String(), func(t *testing.T) {
			r, err := New(&Config{InputRate: 120000, OutputRate: 100000, Backend: backend})
			require.NoError(t, err)

			want, err := r.Process(input)
			require.NoError(t, err)

			_, err = r.Process(testutil.GenerateNoise(5, 700))
			require.NoError(t, err)

			r.Reset()
			got, err := r.Process(input)
			require.NoError(t, err)

			require.Len(t, got, len(want))
			for i := range want {
				assert.InDelta(t, want[i], got[i], 1e-3)
			}
		})
	}
}

func TestProcess_DCPreservation(t *testing.T) {
	for _, backend := range []Backend{BackendLinear, BackendPolyphase} {
		t.Run(backend.String(), func(t *testing.T) {
			r, err := New(&Config{InputRate: 120000, OutputRate: 100000, Backend: backend})
			require.NoError(t, err)

			out, err := r.Process(testutil.GenerateConstant(0.8, -0.3, 6000))
			require.NoError(t, err)
			require.NotEmpty(t, out)

			settled := out[2*100:]
			meanI, meanQ := testutil.MeanIQ(settled)
			testutil.AssertRelativeError(t, 0.8, meanI, 0.05)
			testutil.AssertRelativeError(t, -0.3, meanQ, 0.05)
		})
	}
}

func TestProcess_TonePowerAndFrequency(t *testing.T) {
	// A 12 kHz tone at 120 kHz stays a 12 kHz tone at 100 kHz with its power
	// intact. Frequency is cross-checked with an FFT peak.
	for _, backend := range []Backend{BackendLinear, BackendPolyphase} {
		t.Run(backend.String(), func(t *testing.T) {
			r, err := New(&Config{InputRate: 120000, OutputRate: 100000, Backend: backend})
			require.NoError(t, err)

			const freq = 12000.0
			out, err := r.Process(testutil.GenerateTone(freq, 120000, 8192))
			require.NoError(t, err)
			require.NotEmpty(t, out)

			settled := out[2*100:]
			testutil.AssertRelativeError(t, 1.0, testutil.MeanPower(settled), 0.10)
			testutil.AssertRelativeError(t, freq, testutil.EstimateFrequency(settled, 100000), 0.05)

			peak, err := spectral.PeakFrequency(settled[:2*4096], 100000)
			require.NoError(t, err)
			testutil.AssertRelativeError(t, freq, peak, 0.05)
		})
	}
}

func TestProcess_48kTo44100(t *testing.T) {
	for _, backend := range []Backend{BackendLinear, BackendPolyphase} {
		t.Run(backend.String(), func(t *testing.T) {
			r, err := New(&Config{InputRate: 48000, OutputRate: 44100, Backend: backend})
			require.NoError(t, err)

			const freq = 5000.0
			out, err := r.Process(testutil.GenerateTone(freq, 48000, 9600))
			require.NoError(t, err)
			require.NotEmpty(t, out)

			settled := out[2*200:]
			testutil.AssertRelativeError(t, freq, testutil.EstimateFrequency(settled, 44100), 0.05)
		})
	}
}

func TestGetInfo(t *testing.T) {
	linear, err := New(&Config{InputRate: 120000, OutputRate: 100000})
	require.NoError(t, err)

	info := GetInfo(linear)
	assert.Equal(t, "linear", info.Algorithm)
	assert.Equal(t, 127, info.FilterLength)
	assert.Equal(t, 0, info.Phases)
	assert.Equal(t, 5, info.UpFactor)
	assert.Equal(t, 6, info.DownFactor)
	assert.Equal(t, 63, info.Latency)
	assert.Positive(t, info.MemoryUsage)

	poly, err := New(&Config{InputRate: 120000, OutputRate: 100000, Backend: BackendPolyphase})
	require.NoError(t, err)

	info = GetInfo(poly)
	assert.Equal(t, "polyphase", info.Algorithm)
	assert.Equal(t, 5, info.Phases)
	assert.Positive(t, info.FilterLength)
	assert.Positive(t, info.MemoryUsage)
}

func TestBackendString(t *testing.T) {
	assert.Equal(t, "linear", BackendLinear.String())
	assert.Equal(t, "polyphase", BackendPolyphase.String())
	assert.Equal(t, "Backend(7)", Backend(7).String())
}

func TestNewFloat32_Process(t *testing.T) {
	for _, backend := range []Backend{BackendLinear, BackendPolyphase} {
		t.Run(backend.String(), func(t *testing.T) {
			r, err := NewFloat32(&Config{InputRate: 120000, OutputRate: 100000, Backend: backend})
			require.NoError(t, err)

			input := make([]float32, 8000)
			for i := range 4000 {
				input[2*i] = 0.5
				input[2*i+1] = -0.5
			}

			out, err := r.Process(input)
			require.NoError(t, err)
			require.NotEmpty(t, out)
			assert.Equal(t, 0, len(out)%2)
			testutil.AssertNoNaNOrInf32(t, out)
		})
	}
}
