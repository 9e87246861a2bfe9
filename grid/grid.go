// Package grid builds the time and parameter grids used by simulations and scans.
//
// Linspace mirrors the closed-interval sampling used for time courses
// (e.g. 200 points over 10 days), Arange the half-open stepping used for
// fixed-resolution integration grids.
package grid

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrBadCount indicates a non-positive number of grid points.
	ErrBadCount = errors.New("grid: point count must be > 0")

	// ErrBadStep indicates a non-positive or non-finite step.
	ErrBadStep = errors.New("grid: step must be finite and > 0")

	// ErrBadBounds indicates NaN or infinite interval bounds.
	ErrBadBounds = errors.New("grid: bounds must be finite")
)

// Linspace returns num evenly spaced values over [start, stop], both ends included.
// num == 1 yields []float64{start}.
func Linspace(start, stop float64, num int) ([]float64, error) {
	if num <= 0 {
		return nil, ErrBadCount
	}
	if !finite(start) || !finite(stop) {
		return nil, ErrBadBounds
	}
	if num == 1 {
		return []float64{start}, nil
	}

	return floats.Span(make([]float64, num), start, stop), nil
}

// Arange returns start, start+step, ... strictly below stop.
// Values are computed as start+i*step so long grids do not accumulate drift.
func Arange(start, stop, step float64) ([]float64, error) {
	if !finite(step) || step <= 0 {
		return nil, ErrBadStep
	}
	if !finite(start) || !finite(stop) {
		return nil, ErrBadBounds
	}
	if stop <= start {
		return []float64{}, nil
	}

	n := int(math.Ceil((stop - start) / step))
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := start + float64(i)*step
		if v >= stop {
			break
		}
		out = append(out, v)
	}

	return out, nil
}

// Shift returns a copy of xs with by added to every element.
func Shift(xs []float64, by float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	floats.AddConst(by, out)

	return out
}

// MustLinspace is Linspace for literal arguments; it panics on error.
func MustLinspace(start, stop float64, num int) []float64 {
	xs, err := Linspace(start, stop, num)
	if err != nil {
		panic(err)
	}

	return xs
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
