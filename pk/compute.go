// SPDX-License-Identifier: MIT

package pk

import (
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Operation tags for error wrapping.
const (
	opCompute   = "Compute"
	opAUC       = "AUC"
	opRectangle = "AUCRectangle"
	opTerminal  = "TerminalSlope"
	opHalfLife  = "HalfLifeInterpolated"
)

// Compute derives the PK metrics of a single-dose profile.
//
// Implementation:
//   - Stage 1: validate lengths, time ordering, dose; locate the NaN-ignoring maximum.
//   - Stage 2: trapezoidal AUC over finite samples.
//   - Stage 3: log-linear regression over positive samples strictly after tmax.
//   - Stage 4: kel, t½, AUCinf, Vd and CL from the fitted slope.
//
// Errors:
//   - ErrLengthMismatch, ErrNotSorted, ErrBadDose, ErrAllNaN, ErrTooFewPoints.
//   - ErrNoTerminalPhase when fewer than the minimum terminal samples remain.
//   - ErrNoElimination when the fitted slope is >= 0.
//
// Complexity:
//   - Time O(n), Space O(n).
func Compute(t, c []float64, dose float64, opts ...Option) (Metrics, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if math.IsNaN(dose) || math.IsInf(dose, 0) || dose < 0 {
		return Metrics{}, pkErrorf(opCompute, ErrBadDose)
	}
	if err := validate(t, c); err != nil {
		return Metrics{}, pkErrorf(opCompute, err)
	}

	imax := nanArgmax(c)
	if imax < 0 {
		return Metrics{}, pkErrorf(opCompute, ErrAllNaN)
	}

	auc, err := trapezoid(t, c)
	if err != nil {
		return Metrics{}, pkErrorf(opCompute, err)
	}

	fit, err := terminalFit(t, c, imax, o.minTerminal)
	if err != nil {
		return Metrics{}, pkErrorf(opCompute, err)
	}

	kel := -fit.slope
	clast := lastFinite(c)
	aucInf := auc + clast/kel
	vd := dose / (aucInf * kel)

	return Metrics{
		Dose:          dose,
		AUC:           auc,
		AUCInf:        aucInf,
		Tmax:          t[imax],
		Cmax:          c[imax],
		Thalf:         math.Ln2 / kel,
		Kel:           kel,
		Vd:            vd,
		CL:            kel * vd,
		Intercept:     fit.intercept,
		RSquared:      fit.r2,
		TerminalCount: fit.n,
		Units:         o.units,
	}, nil
}

// AUC returns the trapezoidal area under c over the sampled interval.
// NaN concentrations are skipped, joining their neighbours with one trapezoid.
func AUC(t, c []float64) (float64, error) {
	if err := validate(t, c); err != nil {
		return 0, pkErrorf(opAUC, err)
	}
	auc, err := trapezoid(t, c)
	if err != nil {
		return 0, pkErrorf(opAUC, err)
	}

	return auc, nil
}

// AUCRectangle returns dt·Σc for a uniformly sampled profile, with
// dt = (t_last - t_0)/(n-1). It overestimates a decaying profile by about
// dt·(c_0 + c_last)/2 relative to the trapezoid rule.
func AUCRectangle(t, c []float64) (float64, error) {
	if err := validate(t, c); err != nil {
		return 0, pkErrorf(opRectangle, err)
	}
	if len(t) < 2 {
		return 0, pkErrorf(opRectangle, ErrTooFewPoints)
	}
	dt := (t[len(t)-1] - t[0]) / float64(len(t)-1)
	sum := 0.0
	for _, v := range c {
		if !math.IsNaN(v) {
			sum += v
		}
	}

	return dt * sum, nil
}

// TerminalSlope fits ln c against t over positive samples strictly after
// the maximum and returns the slope, the intercept and R².
func TerminalSlope(t, c []float64) (slope, intercept, r2 float64, err error) {
	if err = validate(t, c); err != nil {
		return 0, 0, 0, pkErrorf(opTerminal, err)
	}
	imax := nanArgmax(c)
	if imax < 0 {
		return 0, 0, 0, pkErrorf(opTerminal, ErrAllNaN)
	}
	fit, err := terminalFit(t, c, imax, DefaultMinTerminalPoints)
	if err != nil {
		return 0, 0, 0, pkErrorf(opTerminal, err)
	}

	return fit.slope, fit.intercept, fit.r2, nil
}

// HalfLifeInterpolated returns the time the profile needs to fall from its
// maximum to half of it, locating the crossing by linear interpolation
// between samples. For an IV bolus the maximum is the first sample.
func HalfLifeInterpolated(t, c []float64) (float64, error) {
	if err := validate(t, c); err != nil {
		return 0, pkErrorf(opHalfLife, err)
	}
	imax := nanArgmax(c)
	if imax < 0 {
		return 0, pkErrorf(opHalfLife, ErrAllNaN)
	}
	target := c[imax] / 2
	prev := imax
	for i := imax + 1; i < len(c); i++ {
		if math.IsNaN(c[i]) {
			continue
		}
		if c[i] <= target {
			t0, t1 := t[prev], t[i]
			c0, c1 := c[prev], c[i]
			tc := t1
			if c0 != c1 {
				tc = t0 + (target-c0)*(t1-t0)/(c1-c0)
			}
			return tc - t[imax], nil
		}
		prev = i
	}

	return 0, pkErrorf(opHalfLife, ErrNoHalfCrossing)
}

type fitResult struct {
	slope, intercept, r2 float64
	n                    int
}

// terminalFit regresses ln c on t for positive finite samples after imax.
func terminalFit(t, c []float64, imax, minPoints int) (fitResult, error) {
	xs := make([]float64, 0, len(c)-imax)
	ys := make([]float64, 0, len(c)-imax)
	for i := imax + 1; i < len(c); i++ {
		if math.IsNaN(c[i]) || math.IsInf(c[i], 0) || c[i] <= 0 {
			continue
		}
		xs = append(xs, t[i])
		ys = append(ys, math.Log(c[i]))
	}
	if len(xs) < minPoints || xs[len(xs)-1] == xs[0] {
		return fitResult{}, ErrNoTerminalPhase
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if !(beta < 0) {
		return fitResult{}, ErrNoElimination
	}

	return fitResult{
		slope:     beta,
		intercept: alpha,
		r2:        stat.RSquared(xs, ys, nil, alpha, beta),
		n:         len(xs),
	}, nil
}

// trapezoid integrates the finite samples with gonum's trapezoid rule.
func trapezoid(t, c []float64) (float64, error) {
	xs := make([]float64, 0, len(t))
	fs := make([]float64, 0, len(c))
	for i := range c {
		if math.IsNaN(c[i]) {
			continue
		}
		xs = append(xs, t[i])
		fs = append(fs, c[i])
	}
	if len(xs) == 0 {
		return 0, ErrAllNaN
	}
	if len(xs) < 2 {
		return 0, ErrTooFewPoints
	}

	return integrate.Trapezoidal(xs, fs), nil
}

func validate(t, c []float64) error {
	if len(t) != len(c) {
		return ErrLengthMismatch
	}
	if len(t) == 0 {
		return ErrTooFewPoints
	}
	for i, v := range t {
		if math.IsNaN(v) || math.IsInf(v, 0) || (i > 0 && v < t[i-1]) {
			return ErrNotSorted
		}
	}

	return nil
}

// nanArgmax returns the first index of the largest non-NaN value, -1 if none.
func nanArgmax(c []float64) int {
	idx := -1
	for i, v := range c {
		if math.IsNaN(v) {
			continue
		}
		if idx < 0 || v > c[idx] {
			idx = i
		}
	}

	return idx
}

func lastFinite(c []float64) float64 {
	for i := len(c) - 1; i >= 0; i-- {
		if !math.IsNaN(c[i]) {
			return c[i]
		}
	}

	return 0
}
