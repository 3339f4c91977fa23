// Package mathutil provides mathematical functions for rational I/Q resampling.
package mathutil

import "fmt"

// GCD returns the greatest common divisor of a and b using the Euclidean
// algorithm. Inputs are expected to be positive.
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Ratio is a reduced rational resampling ratio. Up is the interpolation
// factor L and Down the decimation factor M, so that
// outputRate/inputRate == Up/Down in lowest terms.
type Ratio struct {
	Up   int
	Down int
}

// ReduceRatio computes the reduced up/down factors for a rate conversion.
// Both rates must be positive.
func ReduceRatio(inputRate, outputRate int) (Ratio, error) {
	if inputRate <= 0 || outputRate <= 0 {
		return Ratio{}, fmt.Errorf("sample rates must be positive: input=%d, output=%d", inputRate, outputRate)
	}
	g := GCD(inputRate, outputRate)
	return Ratio{Up: outputRate / g, Down: inputRate / g}, nil
}

// Float64 returns the ratio Up/Down as a float64.
func (r Ratio) Float64() float64 {
	if r.Down == 0 {
		return 0
	}
	return float64(r.Up) / float64(r.Down)
}

// Invert returns the reciprocal ratio (Down/Up).
func (r Ratio) Invert() Ratio {
	return Ratio{Up: r.Down, Down: r.Up}
}

// Max returns the larger of the two factors. The anti-aliasing cutoff of a
// rational resampler is 0.5/Max().
func (r Ratio) Max() int {
	if r.Up > r.Down {
		return r.Up
	}
	return r.Down
}
