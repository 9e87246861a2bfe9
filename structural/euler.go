package structural

import (
	"errors"
	"math"

	"github.com/katalvlaran/pkmodel/grid"
)

// ErrTooFewSteps indicates an Euler grid with fewer than two points.
var ErrTooFewSteps = errors.New("structural: euler needs at least 2 grid points")

// EulerResult is the outcome of one explicit Euler run against the analytic curve.
type EulerResult struct {
	N        int       // grid points
	Times    []float64 // [hr]
	Euler    []float64 // numerical concentration [mg/l]
	Exact    []float64 // analytic concentration [mg/l]
	AbsError []float64 // |Euler - Exact| per point
	SumError float64   // Σ AbsError
}

// EulerError integrates dC/dt = -CL/V·C with explicit Euler over n points
// spanning [0, tend] and compares it with the analytic profile.
//
// The step is the grid spacing tend/(n-1), so each Euler value sits on the
// time it is compared at.
func EulerError(p Params, tend float64, n int) (EulerResult, error) {
	if err := p.Validate(); err != nil {
		return EulerResult{}, err
	}
	if n < 2 {
		return EulerResult{}, ErrTooFewSteps
	}
	times, err := grid.Linspace(0, tend, n)
	if err != nil {
		return EulerResult{}, err
	}

	dt := tend / float64(n-1)
	k := p.Kel()
	res := EulerResult{
		N:        n,
		Times:    times,
		Euler:    make([]float64, n),
		Exact:    p.Profile(times),
		AbsError: make([]float64, n),
	}
	res.Euler[0] = p.C0()
	for i := 1; i < n; i++ {
		res.Euler[i] = res.Euler[i-1] + dt*(-k*res.Euler[i-1])
	}
	for i := range times {
		res.AbsError[i] = math.Abs(res.Euler[i] - res.Exact[i])
		res.SumError += res.AbsError[i]
	}

	return res, nil
}

// EulerStudy runs EulerError for every grid size in ns.
func EulerStudy(p Params, tend float64, ns []int) ([]EulerResult, error) {
	out := make([]EulerResult, 0, len(ns))
	for _, n := range ns {
		r, err := EulerError(p, tend, n)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, nil
}
