package scan

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pkmodel/compartment"
	"github.com/katalvlaran/pkmodel/ode"
)

// Builder constructs the model for one scan value.
type Builder func(v float64) (compartment.Model, error)

// Trajectory is the full solution for one scan value.
type Trajectory struct {
	Value    float64
	Model    compartment.Model
	Solution *ode.Solution
}

// Curve extracts the named state as a labelled curve.
func (tr Trajectory) Curve(state, label string) (Curve, error) {
	y, err := tr.Solution.ColumnByName(state)
	if err != nil {
		return Curve{}, err
	}

	return Curve{Label: fmt.Sprintf(label, tr.Value), Value: tr.Value, Times: tr.Solution.Times, Y: y}, nil
}

// Models integrates build(v) from a single dose for every value.
func Models(ctx context.Context, build Builder, values []float64, dose float64, times []float64, opts ...Option) ([]Trajectory, error) {
	if build == nil {
		return nil, ErrNilFunc
	}
	o := collect(opts)

	return Run(ctx, values, func(_ context.Context, v float64) (Trajectory, error) {
		m, err := build(v)
		if err != nil {
			return Trajectory{}, err
		}
		sol, err := compartment.Simulate(m, dose, times, o.solver)
		if err != nil {
			return Trajectory{}, err
		}

		return Trajectory{Value: v, Model: m, Solution: sol}, nil
	}, o.limit)
}

// Curves extracts the same state from every trajectory.
func Curves(trs []Trajectory, state, label string) ([]Curve, error) {
	out := make([]Curve, len(trs))
	for i, tr := range trs {
		c, err := tr.Curve(state, label)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}

	return out, nil
}

// RecoveryPoint is the urinary recovery at the end of the horizon,
// as fractions of the dose.
type RecoveryPoint struct {
	Ka     float64
	Parent float64
	Metab  float64
}

// Total returns Parent + Metab.
func (r RecoveryPoint) Total() float64 { return r.Parent + r.Metab }

// Recovery scans ka of a ParentMetabolite model with fixed km and ke.
func Recovery(ctx context.Context, kas []float64, km, ke, dose float64, times []float64, opts ...Option) ([]RecoveryPoint, error) {
	if !(dose > 0) {
		return nil, fmt.Errorf("scan: recovery needs a positive dose, got %g", dose)
	}
	trs, err := Models(ctx, func(ka float64) (compartment.Model, error) {
		return compartment.NewParentMetabolite(ka, km, ke)
	}, kas, dose, times, opts...)
	if err != nil {
		return nil, err
	}

	out := make([]RecoveryPoint, len(trs))
	for i, tr := range trs {
		ia, err := compartment.Index(tr.Model, compartment.Urine)
		if err != nil {
			return nil, err
		}
		ib, err := compartment.Index(tr.Model, compartment.BUrine)
		if err != nil {
			return nil, err
		}
		x := tr.Solution.Final()
		out[i] = RecoveryPoint{Ka: tr.Value, Parent: x[ia] / dose, Metab: x[ib] / dose}
	}

	return out, nil
}
