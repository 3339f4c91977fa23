package filter

import (
	"fmt"
)

const (
	minNumPhases = 1
	maxNumPhases = 8192

	// Minimum taps per phase for effective filtering. With too few taps the
	// per-phase DC gain varies significantly between phases.
	minTapsPerPhase = 8
)

// PolyphaseBank is a polyphase decomposition of a lowpass prototype filter.
//
// The prototype is split into NumPhases branches, one per output phase of a
// rational L/M resampler. Branch p holds every NumPhases-th prototype
// coefficient starting at offset p, stored in reversed order so that the
// branch output is a plain dot product with a chronological input window:
//
//	y = Σ_k x[idx-k]·h_p[k] = dot(x[idx-T+1 : idx+1], Phases[p])
type PolyphaseBank struct {
	// Phases holds the per-phase coefficients, reversed for dot-product use.
	Phases [][]float64

	// NumPhases is the number of branches (the up-factor L).
	NumPhases int

	// TapsPerPhase is the number of taps in each branch.
	TapsPerPhase int

	// TotalTaps is the prototype filter length before decomposition.
	TotalTaps int

	// Cutoff is the normalized cutoff frequency used in the design.
	Cutoff float64

	// Beta is the Kaiser β parameter used in the design.
	Beta float64
}

// PolyphaseParams holds parameters for polyphase bank design.
type PolyphaseParams struct {
	// NumPhases is the number of branches; for rational resampling this is
	// the reduced up-factor L.
	NumPhases int

	// MinTotalTaps is the caller's requested prototype length. The actual
	// prototype may be longer: it is rounded up to a whole number of taps
	// per phase and to the minimum effective per-phase length.
	MinTotalTaps int

	// Cutoff is the normalized cutoff frequency (0 to 0.5).
	Cutoff float64

	// Beta is the Kaiser window β parameter.
	Beta float64
}

// Validate checks if polyphase parameters are valid.
func (pp *PolyphaseParams) Validate() error {
	if pp.NumPhases < minNumPhases || pp.NumPhases > maxNumPhases {
		return fmt.Errorf("number of phases %d out of range [%d, %d]",
			pp.NumPhases, minNumPhases, maxNumPhases)
	}

	if pp.MinTotalTaps < 1 {
		return fmt.Errorf("prototype length %d must be positive", pp.MinTotalTaps)
	}

	if pp.Cutoff <= 0 || pp.Cutoff > 0.5 {
		return fmt.Errorf("cutoff frequency %f out of range (0, 0.5]", pp.Cutoff)
	}

	if pp.Beta < 0 {
		return fmt.Errorf("kaiser beta %f must be non-negative", pp.Beta)
	}

	return nil
}

// DesignPolyphaseBank designs a Kaiser prototype and decomposes it into a
// polyphase bank.
//
// The prototype is normalized to a total DC gain of NumPhases so that each
// branch has an average DC gain of 1: an interpolate-by-L structure discards
// L-1 of every L input zeros, and the surviving branch must carry full signal
// level on its own.
func DesignPolyphaseBank(params PolyphaseParams) (*PolyphaseBank, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid polyphase parameters: %w", err)
	}

	tapsPerPhase := (params.MinTotalTaps + params.NumPhases - 1) / params.NumPhases
	if tapsPerPhase < minTapsPerPhase {
		tapsPerPhase = minTapsPerPhase
	}
	totalTaps := tapsPerPhase * params.NumPhases

	prototype, err := DesignKaiserLowPass(totalTaps, params.Cutoff, params.Beta, float64(params.NumPhases))
	if err != nil {
		return nil, fmt.Errorf("failed to design prototype filter: %w", err)
	}

	bank := &PolyphaseBank{
		Phases:       make([][]float64, params.NumPhases),
		NumPhases:    params.NumPhases,
		TapsPerPhase: tapsPerPhase,
		TotalTaps:    totalTaps,
		Cutoff:       params.Cutoff,
		Beta:         params.Beta,
	}

	for p := range params.NumPhases {
		branch := make([]float64, tapsPerPhase)
		for k := range tapsPerPhase {
			// Reversed storage: branch[tapsPerPhase-1-k] multiplies the
			// newest sample in the window.
			branch[tapsPerPhase-1-k] = prototype[k*params.NumPhases+p]
		}
		bank.Phases[p] = branch
	}

	return bank, nil
}

// GetMemoryUsage returns the approximate coefficient memory usage in bytes.
func (pb *PolyphaseBank) GetMemoryUsage() int64 {
	const bytesPerFloat64 = 8
	return int64(pb.NumPhases*pb.TapsPerPhase) * bytesPerFloat64
}
