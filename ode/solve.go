// SPDX-License-Identifier: MIT

package ode

import (
	"math"
)

const opSolve = "Solve"

// Solve integrates f from times[0] with initial state y0 and samples the
// solution at every entry of times.
//
// Implementation:
//   - Stage 1: validate f, y0, times and options (nil opts means DefaultOptions).
//   - Stage 2: copy y0 into row 0; then advance interval by interval,
//     repeated times copy the previous row without stepping.
//   - Stage 3: after every interval, reject NaN/±Inf states.
//
// Behavior highlights:
//   - y0 is never mutated.
//   - Adaptive steps carry their size across output intervals.
//
// Errors:
//   - ErrNilFunc, ErrEmptyState, ErrEmptyTimes, ErrNotMonotonic, ErrBadOptions.
//   - ErrStepUnderflow, ErrMaxSteps, ErrNonFinite during integration.
func Solve(f Func, y0 []float64, times []float64, opts *Options) (*Solution, error) {
	if f == nil {
		return nil, odeErrorf(opSolve, ErrNilFunc)
	}
	if len(y0) == 0 {
		return nil, odeErrorf(opSolve, ErrEmptyState)
	}
	if len(times) == 0 {
		return nil, odeErrorf(opSolve, ErrEmptyTimes)
	}
	if err := validateTimes(times); err != nil {
		return nil, odeErrorf(opSolve, err)
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := validateOptions(&o); err != nil {
		return nil, odeErrorf(opSolve, err)
	}

	n := len(y0)
	sol := &Solution{
		Times:  append([]float64(nil), times...),
		States: make([][]float64, len(times)),
	}
	y := append([]float64(nil), y0...)
	sol.States[0] = append([]float64(nil), y...)

	var stepper stepFunc
	switch o.Method {
	case DormandPrince:
		stepper = newDopri(f, n, times[len(times)-1], &o).advance
	case RK4:
		stepper = newFixed(f, n, &o, rk4Step).advance
	case Euler:
		stepper = newFixed(f, n, &o, eulerStep).advance
	}

	for i := 1; i < len(times); i++ {
		t0, t1 := times[i-1], times[i]
		if t1 > t0 {
			steps, err := stepper(t0, t1, y)
			sol.Steps += steps
			if err != nil {
				return nil, odeErrorf(opSolve, err)
			}
			if !allFinite(y) {
				return nil, odeErrorf(opSolve, ErrNonFinite)
			}
		}
		sol.States[i] = append([]float64(nil), y...)
	}

	return sol, nil
}

// stepFunc advances y in place from t0 to t1 and reports the steps taken.
type stepFunc func(t0, t1 float64, y []float64) (int, error)

func validateTimes(times []float64) error {
	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ErrNotMonotonic
		}
		if i > 0 && t < times[i-1] {
			return ErrNotMonotonic
		}
	}

	return nil
}

func validateOptions(o *Options) error {
	switch o.Method {
	case DormandPrince, RK4, Euler:
	default:
		return ErrBadOptions
	}
	if o.RelTol < 0 || o.AbsTol < 0 || o.Step < 0 || o.MaxStep < 0 || o.MaxSteps < 0 {
		return ErrBadOptions
	}
	if o.RelTol == 0 && o.AbsTol == 0 {
		o.RelTol, o.AbsTol = DefaultRelTol, DefaultAbsTol
	}
	if o.MaxSteps == 0 {
		o.MaxSteps = DefaultMaxSteps
	}

	return nil
}

func allFinite(y []float64) bool {
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
