package structural

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams indicates a non-finite, negative or zero-volume parameter set.
var ErrInvalidParams = errors.New("structural: invalid parameters")

// Params describes a one-compartment drug with linear elimination.
type Params struct {
	Dose float64 // [mg]
	V    float64 // [l]
	CL   float64 // [l/hr]
}

// Warfarin returns the warfarin preset: V=10 l, CL=0.1 l/hr, Dose=100 mg.
func Warfarin() Params { return Params{Dose: 100, V: 10, CL: 0.1} }

// Aspirin returns the aspirin preset: V=10 l, CL=80 l/hr, Dose=100 mg.
func Aspirin() Params { return Params{Dose: 100, V: 10, CL: 80} }

// Validate checks V > 0, CL >= 0, Dose >= 0 and that all values are finite.
func (p Params) Validate() error {
	for _, v := range []float64{p.Dose, p.V, p.CL} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidParams, p)
		}
	}
	if p.V <= 0 {
		return fmt.Errorf("%w: V must be > 0, got %g", ErrInvalidParams, p.V)
	}
	if p.CL < 0 || p.Dose < 0 {
		return fmt.Errorf("%w: dose and CL must be >= 0", ErrInvalidParams)
	}

	return nil
}

// Kel returns the elimination rate constant CL/V [1/hr].
func (p Params) Kel() float64 { return p.CL / p.V }

// C0 returns the initial concentration Dose/V [mg/l].
func (p Params) C0() float64 { return p.Dose / p.V }

// HalfLife returns ln2/Kel [hr]; +Inf when CL == 0.
func (p Params) HalfLife() float64 { return math.Ln2 / p.Kel() }

// AUC returns the analytic area under the curve to infinity, Dose/CL [mg/l*hr].
func (p Params) AUC() float64 { return p.Dose / p.CL }

// Concentration evaluates C(t) = Dose/V·exp(-CL/V·t) [mg/l].
func (p Params) Concentration(t float64) float64 {
	return p.C0() * math.Exp(-p.Kel()*t)
}

// Profile evaluates Concentration at every time point.
func (p Params) Profile(times []float64) []float64 {
	out := make([]float64, len(times))
	c0, k := p.C0(), p.Kel()
	for i, t := range times {
		out[i] = c0 * math.Exp(-k*t)
	}

	return out
}

// WithDose returns a copy of p with the dose replaced.
func (p Params) WithDose(dose float64) Params { p.Dose = dose; return p }

// WithVolume returns a copy of p with V replaced.
func (p Params) WithVolume(v float64) Params { p.V = v; return p }

// WithClearance returns a copy of p with CL replaced.
func (p Params) WithClearance(cl float64) Params { p.CL = cl; return p }
