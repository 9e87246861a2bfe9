// Package dosing simulates repeated administration of a compartment model
// and scores the resulting profile against a therapeutic window.
//
// A regimen is integrated interval by interval: the state reached at the end
// of one interval, plus the next dose, starts the following one. Boundary
// times therefore appear twice in the output, once before and once after
// the dose, which keeps the jump visible in plots.
package dosing

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/pkmodel/compartment"
	"github.com/katalvlaran/pkmodel/grid"
	"github.com/katalvlaran/pkmodel/ode"
)

var (
	// ErrInvalidRegimen indicates a non-positive interval, count or point density,
	// or a negative dose.
	ErrInvalidRegimen = errors.New("dosing: invalid regimen")

	// ErrInvalidWindow indicates MEC > MTC or negative/non-finite bounds.
	ErrInvalidWindow = errors.New("dosing: invalid therapeutic window")

	// ErrLengthMismatch indicates times and values of different lengths.
	ErrLengthMismatch = errors.New("dosing: times and values lengths differ")
)

// Regimen describes Count equal doses given every Interval hours.
type Regimen struct {
	Dose      float64 // maintenance dose [mg]
	FirstDose float64 // loading dose [mg]; 0 means Dose
	Interval  float64 // [hr]
	Count     int     // number of doses
	Points    int     // output samples per interval, ends included
}

// DefaultRegimen is ten daily doses sampled at 100 points per day.
func DefaultRegimen(dose float64) Regimen {
	return Regimen{Dose: dose, Interval: 24, Count: 10, Points: 100}
}

// Validate checks the regimen fields.
func (r Regimen) Validate() error {
	switch {
	case math.IsNaN(r.Dose) || r.Dose < 0 || math.IsNaN(r.FirstDose) || r.FirstDose < 0:
		return fmt.Errorf("%w: doses must be >= 0", ErrInvalidRegimen)
	case !(r.Interval > 0) || math.IsInf(r.Interval, 0):
		return fmt.Errorf("%w: interval must be > 0", ErrInvalidRegimen)
	case r.Count <= 0:
		return fmt.Errorf("%w: count must be > 0", ErrInvalidRegimen)
	case r.Points < 2:
		return fmt.Errorf("%w: need at least 2 points per interval", ErrInvalidRegimen)
	}

	return nil
}

// Simulate integrates m over every dosing interval of r.
func Simulate(m compartment.Model, r Regimen, opts *ode.Options) (*ode.Solution, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	base, err := grid.Linspace(0, r.Interval, r.Points)
	if err != nil {
		return nil, err
	}

	first := r.FirstDose
	if first == 0 {
		first = r.Dose
	}
	x := compartment.Initial(m, first)

	parts := make([]*ode.Solution, 0, r.Count)
	for k := 0; k < r.Count; k++ {
		if k > 0 {
			m.Dose(x, r.Dose)
		}
		times := grid.Shift(base, float64(k)*r.Interval)
		seg, err := compartment.SimulateFrom(m, x, times, opts)
		if err != nil {
			return nil, fmt.Errorf("dose %d: %w", k+1, err)
		}
		parts = append(parts, seg)
		x = seg.Final()
	}

	return ode.Concat(parts...), nil
}

// Window is the therapeutic range between the minimum effective
// concentration (MEC) and the minimum toxic concentration (MTC).
type Window struct {
	MEC float64
	MTC float64
}

// Validate checks 0 <= MEC <= MTC with finite bounds.
func (w Window) Validate() error {
	if math.IsNaN(w.MEC) || math.IsNaN(w.MTC) || math.IsInf(w.MTC, 0) || w.MEC < 0 || w.MEC > w.MTC {
		return fmt.Errorf("%w: MEC=%g MTC=%g", ErrInvalidWindow, w.MEC, w.MTC)
	}

	return nil
}

// Exposure summarizes time spent below, within and above a Window.
type Exposure struct {
	Below  float64 // time with value < MEC [hr]
	Within float64 // time with MEC <= value <= MTC [hr]
	Above  float64 // time with value > MTC [hr]

	// FirstWithin is the first sample time inside the window, -1 if never.
	FirstWithin float64
}

// Total returns the analysed duration.
func (e Exposure) Total() float64 { return e.Below + e.Within + e.Above }

// FractionWithin returns Within/Total, 0 for an empty profile.
func (e Exposure) FractionWithin() float64 {
	if tot := e.Total(); tot > 0 {
		return e.Within / tot
	}

	return 0
}

// Analyze attributes every sampling interval [t_i, t_i+1) to the band of
// the mean of its two end values. Zero-length intervals (dose boundaries)
// contribute nothing.
func (w Window) Analyze(times, values []float64) (Exposure, error) {
	if err := w.Validate(); err != nil {
		return Exposure{}, err
	}
	if len(times) != len(values) {
		return Exposure{}, ErrLengthMismatch
	}

	e := Exposure{FirstWithin: -1}
	for i, v := range values {
		if e.FirstWithin < 0 && v >= w.MEC && v <= w.MTC {
			e.FirstWithin = times[i]
		}
		if i == 0 {
			continue
		}
		dt := times[i] - times[i-1]
		if dt <= 0 {
			continue
		}
		mid := (values[i-1] + v) / 2
		switch {
		case mid < w.MEC:
			e.Below += dt
		case mid > w.MTC:
			e.Above += dt
		default:
			e.Within += dt
		}
	}

	return e, nil
}
