// SPDX-License-Identifier: MIT

package ode

import (
	"errors"
	"fmt"
)

// Func evaluates the right-hand side dy/dt at time t into dydt.
// Implementations must not retain y or dydt; both are reused between calls.
type Func func(t float64, y, dydt []float64)

// Method selects the integration scheme.
type Method int

const (
	// DormandPrince is the adaptive embedded Runge–Kutta 5(4) pair.
	DormandPrince Method = iota

	// RK4 is the classic fourth-order fixed-step scheme.
	RK4

	// Euler is the explicit first-order scheme.
	Euler
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case DormandPrince:
		return "dopri5"
	case RK4:
		return "rk4"
	case Euler:
		return "euler"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod maps a method name back to a Method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "dopri5", "dopri", "":
		return DormandPrince, nil
	case "rk4":
		return RK4, nil
	case "euler":
		return Euler, nil
	}

	return 0, fmt.Errorf("%w: unknown method %q", ErrBadOptions, name)
}

// Defaults.
const (
	DefaultRelTol   = 1e-6
	DefaultAbsTol   = 1e-9
	DefaultMaxSteps = 100000
)

// Options configures Solve.
//
// Fields:
//   - Method   — integration scheme (DormandPrince by default).
//   - RelTol   — relative tolerance of the adaptive error control.
//   - AbsTol   — absolute tolerance of the adaptive error control.
//   - Step     — fixed-step size for RK4/Euler; 0 means one step per output
//     interval. Ignored by DormandPrince.
//   - MaxStep  — upper bound on the adaptive step; 0 means unbounded.
//   - MaxSteps — cap on accepted+rejected adaptive steps over the whole run.
type Options struct {
	Method   Method
	RelTol   float64
	AbsTol   float64
	Step     float64
	MaxStep  float64
	MaxSteps int
}

// DefaultOptions returns the adaptive solver with its default tolerances.
func DefaultOptions() Options {
	return Options{
		Method:   DormandPrince,
		RelTol:   DefaultRelTol,
		AbsTol:   DefaultAbsTol,
		MaxSteps: DefaultMaxSteps,
	}
}

var (
	// ErrNilFunc indicates a nil right-hand side.
	ErrNilFunc = errors.New("ode: right-hand side is nil")

	// ErrEmptyState indicates an empty initial state.
	ErrEmptyState = errors.New("ode: initial state is empty")

	// ErrEmptyTimes indicates no output times were requested.
	ErrEmptyTimes = errors.New("ode: output times are empty")

	// ErrNotMonotonic indicates output times that decrease or are not finite.
	ErrNotMonotonic = errors.New("ode: output times must be finite and non-decreasing")

	// ErrBadOptions indicates negative tolerances, step sizes or an unknown method.
	ErrBadOptions = errors.New("ode: invalid options")

	// ErrStepUnderflow indicates the adaptive step shrank below floating-point resolution.
	ErrStepUnderflow = errors.New("ode: step size underflow")

	// ErrMaxSteps indicates the adaptive step budget was exhausted.
	ErrMaxSteps = errors.New("ode: maximum number of steps exceeded")

	// ErrNonFinite indicates the state became NaN or ±Inf.
	ErrNonFinite = errors.New("ode: state became NaN or Inf")
)

func odeErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
