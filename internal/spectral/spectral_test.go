package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-iq-resampler/internal/testutil"
)

func TestToComplex(t *testing.T) {
	samples, err := ToComplex([]float64{1, 2, 3, -4})
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Equal(t, complex(1.0, 2.0), samples[0])
	assert.Equal(t, complex(3.0, -4.0), samples[1])

	_, err = ToComplex([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrOddLength)
}

func TestPowerSpectrum_ToneConcentratesInOneBin(t *testing.T) {
	// 1024 samples of a 12.5 kHz tone at 100 kHz puts the tone exactly on
	// bin 128, so all power lands there.
	iq := testutil.GenerateTone(12500, 100000, 1024)

	power, err := PowerSpectrum(iq)
	require.NoError(t, err)
	require.Len(t, power, 1024)

	assert.InDelta(t, 1.0, power[128], 1e-9)
	for i, p := range power {
		if i == 128 {
			continue
		}
		assert.Less(t, p, 1e-12, "leakage in bin %d", i)
	}
}

func TestPowerSpectrum_TooShort(t *testing.T) {
	_, err := PowerSpectrum([]float64{1, 2})
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestPeakFrequency(t *testing.T) {
	testCases := []struct {
		name       string
		freq       float64
		sampleRate float64
		numSamples int
	}{
		{"positive_on_bin", 12500, 100000, 1024},
		{"positive_off_bin", 12000, 100000, 2048},
		{"negative_frequency", -25000, 100000, 1024},
		{"near_dc", 100, 48000, 4096},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			iq := testutil.GenerateTone(tc.freq, tc.sampleRate, tc.numSamples)
			got, err := PeakFrequency(iq, tc.sampleRate)
			require.NoError(t, err)

			resolution := tc.sampleRate / float64(tc.numSamples)
			assert.InDelta(t, tc.freq, got, resolution)
		})
	}
}

func TestTotalPower(t *testing.T) {
	iq := testutil.GenerateTone(12500, 100000, 1000)
	power, err := TotalPower(iq)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, power, 1e-12)

	power, err = TotalPower([]float64{})
	require.NoError(t, err)
	assert.Zero(t, power)
}

func TestBandPowerRatio(t *testing.T) {
	iq := testutil.GenerateTone(12500, 100000, 1024)

	inBand, err := BandPowerRatio(iq, 100000, 10000, 15000)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, inBand, 1e-9)

	outOfBand, err := BandPowerRatio(iq, 100000, -40000, -20000)
	require.NoError(t, err)
	assert.Less(t, outOfBand, 1e-9)
}

func TestSpectralCentroid_Tone(t *testing.T) {
	iq := testutil.GenerateTone(12500, 100000, 1024)
	centroid, err := SpectralCentroid(iq, 100000)
	require.NoError(t, err)
	assert.InDelta(t, 12500, centroid, 100)
}

func TestPowerDB(t *testing.T) {
	assert.InDelta(t, 0.0, PowerDB(1.0), 1e-12)
	assert.InDelta(t, -30.0, PowerDB(0.001), 1e-9)
	assert.Equal(t, -300.0, PowerDB(0))
	assert.Equal(t, -300.0, PowerDB(-1))
}
