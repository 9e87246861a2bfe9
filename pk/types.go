// SPDX-License-Identifier: MIT

package pk

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch indicates t and c of different lengths.
	ErrLengthMismatch = errors.New("pk: time and concentration lengths differ")

	// ErrTooFewPoints indicates fewer than two usable samples.
	ErrTooFewPoints = errors.New("pk: need at least two finite samples")

	// ErrAllNaN indicates a concentration series without a single finite value.
	ErrAllNaN = errors.New("pk: all concentrations are NaN")

	// ErrNotSorted indicates decreasing or non-finite sample times.
	ErrNotSorted = errors.New("pk: sample times must be finite and non-decreasing")

	// ErrNoTerminalPhase indicates too few positive samples after tmax for the fit.
	ErrNoTerminalPhase = errors.New("pk: not enough positive samples after tmax")

	// ErrNoElimination indicates a terminal slope that is not negative.
	ErrNoElimination = errors.New("pk: terminal phase does not decline")

	// ErrBadDose indicates a negative or non-finite dose.
	ErrBadDose = errors.New("pk: dose must be finite and >= 0")

	// ErrNoHalfCrossing indicates a profile that never drops to half its initial value.
	ErrNoHalfCrossing = errors.New("pk: profile never falls to half of its initial value")
)

// Units labels every metric in Format output.
type Units struct {
	Dose          string
	Time          string
	Concentration string
	Clearance     string
	Volume        string
}

// DefaultUnits returns mg, hr, mg/l, l/hr and l.
func DefaultUnits() Units {
	return Units{Dose: "mg", Time: "hr", Concentration: "mg/l", Clearance: "l/hr", Volume: "l"}
}

// AUC returns the area unit, concentration·time.
func (u Units) AUC() string { return u.Concentration + "*" + u.Time }

// Rate returns the first-order rate unit, 1/time.
func (u Units) Rate() string { return "1/" + u.Time }

// Metrics is the outcome of Compute.
type Metrics struct {
	Dose   float64
	AUC    float64
	AUCInf float64
	Tmax   float64
	Cmax   float64
	Thalf  float64
	Kel    float64
	Vd     float64
	CL     float64

	// Terminal-phase regression of ln c on t.
	Intercept     float64
	RSquared      float64
	TerminalCount int

	Units Units
}

// DefaultMinTerminalPoints is the smallest terminal phase Compute will fit.
const DefaultMinTerminalPoints = 2

const panicMinTerminal = "pk: WithMinTerminalPoints: n must be >= 2"

// Option tunes Compute.
type Option func(*options)

type options struct {
	minTerminal int
	units       Units
}

func defaultOptions() options {
	return options{minTerminal: DefaultMinTerminalPoints, units: DefaultUnits()}
}

// WithMinTerminalPoints requires at least n samples in the terminal fit.
// Panics when n < 2: a line through one point has no slope.
func WithMinTerminalPoints(n int) Option {
	if n < 2 {
		panic(panicMinTerminal)
	}

	return func(o *options) { o.minTerminal = n }
}

// WithUnits overrides the unit labels used by Metrics.Format.
func WithUnits(u Units) Option {
	return func(o *options) { o.units = u }
}

func pkErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
