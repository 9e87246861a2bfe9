package scan

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pkmodel/pk"
	"github.com/katalvlaran/pkmodel/structural"
)

// Curve is one trajectory of a scan.
type Curve struct {
	Label string
	Value float64
	Times []float64
	Y     []float64
}

// Dose scans the administered dose of p. Labels read "%g [mg]".
func Dose(ctx context.Context, p structural.Params, doses, times []float64, opts ...Option) ([]Curve, error) {
	return profiles(ctx, p, doses, times, structural.Params.WithDose, "%g [mg]", opts)
}

// Volume scans the volume of distribution of p. Labels read "%.2f [l]".
func Volume(ctx context.Context, p structural.Params, volumes, times []float64, opts ...Option) ([]Curve, error) {
	return profiles(ctx, p, volumes, times, structural.Params.WithVolume, "%.2f [l]", opts)
}

// Clearance scans the clearance of p. Labels read "%.2f [l/hr]".
func Clearance(ctx context.Context, p structural.Params, cls, times []float64, opts ...Option) ([]Curve, error) {
	return profiles(ctx, p, cls, times, structural.Params.WithClearance, "%.2f [l/hr]", opts)
}

func profiles(
	ctx context.Context,
	p structural.Params,
	values, times []float64,
	with func(structural.Params, float64) structural.Params,
	label string,
	opts []Option,
) ([]Curve, error) {
	o := collect(opts)

	return Run(ctx, values, func(_ context.Context, v float64) (Curve, error) {
		q := with(p, v)
		if err := q.Validate(); err != nil {
			return Curve{}, err
		}

		return Curve{Label: fmt.Sprintf(label, v), Value: v, Times: times, Y: q.Profile(times)}, nil
	}, o.limit)
}

// Rule selects the quadrature used by AUC.
type Rule int

const (
	// Trapezoid integrates with the trapezoid rule.
	Trapezoid Rule = iota
	// Rectangle sums dt·c over all samples.
	Rectangle
)

// AUCPoint is the area under one dose's profile.
type AUCPoint struct {
	Curve
	AUC float64
}

// AUC computes the profile and its area for every dose.
func AUC(ctx context.Context, p structural.Params, doses, times []float64, rule Rule, opts ...Option) ([]AUCPoint, error) {
	curves, err := Dose(ctx, p, doses, times, opts...)
	if err != nil {
		return nil, err
	}

	area := pk.AUC
	if rule == Rectangle {
		area = pk.AUCRectangle
	}
	out := make([]AUCPoint, len(curves))
	for i, c := range curves {
		a, err := area(c.Times, c.Y)
		if err != nil {
			return nil, fmt.Errorf("dose %g: %w", c.Value, err)
		}
		out[i] = AUCPoint{Curve: c, AUC: a}
	}

	return out, nil
}
