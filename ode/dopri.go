// SPDX-License-Identifier: MIT

package ode

import "math"

// Dormand–Prince 5(4) tableau.
const (
	c2, c3, c4, c5 = 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9

	a21 = 1.0 / 5

	a31, a32 = 3.0 / 40, 9.0 / 40

	a41, a42, a43 = 44.0 / 45, -56.0 / 15, 32.0 / 9

	a51, a52, a53, a54 = 19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729

	a61, a62, a63, a64, a65 = 9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656

	// fifth-order weights (b2 = b7 = 0)
	b1, b3, b4, b5, b6 = 35.0 / 384, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84

	// b - b* (fifth minus embedded fourth order)
	e1, e3, e4, e5, e6, e7 = 71.0 / 57600, -71.0 / 16695, 71.0 / 1920, -17253.0 / 339200, 22.0 / 525, -1.0 / 40
)

// Step-size controller.
const (
	safety    = 0.9
	minFactor = 0.2
	maxFactor = 5.0
)

type dopri struct {
	f    Func
	opts *Options

	h     float64 // last proposed step, carried across output intervals
	steps int     // steps attempted over the whole run
	tEnd  float64 // last output time, sizes the first step

	k1, k2, k3, k4, k5, k6, k7 []float64
	tmp, ynew                  []float64
	fsal                       bool
}

func newDopri(f Func, n int, tEnd float64, o *Options) *dopri {
	mk := func() []float64 { return make([]float64, n) }
	return &dopri{
		f: f, opts: o, tEnd: tEnd,
		k1: mk(), k2: mk(), k3: mk(), k4: mk(), k5: mk(), k6: mk(), k7: mk(),
		tmp: mk(), ynew: mk(),
	}
}

// advance integrates y from t0 to exactly t1 with error-controlled steps.
func (d *dopri) advance(t0, t1 float64, y []float64) (int, error) {
	t := t0
	accepted := 0
	if d.h == 0 {
		d.h = d.initialStep(t0, math.Max(t1, d.tEnd), y)
	}
	if !d.fsal {
		d.f(t, y, d.k1)
		d.fsal = true
	}

	for t < t1 {
		// remaining interval below rounding noise: treat t1 as reached
		if t1-t <= 1e-13*math.Max(1, math.Abs(t1)) {
			break
		}
		if d.steps >= d.opts.MaxSteps {
			return accepted, ErrMaxSteps
		}
		d.steps++

		h := d.h
		if h <= 1e-14*math.Max(1, math.Abs(t)) {
			return accepted, ErrStepUnderflow
		}
		if d.opts.MaxStep > 0 && h > d.opts.MaxStep {
			h = d.opts.MaxStep
		}
		last := false
		if t+h >= t1 {
			h = t1 - t
			last = true
		}

		errNorm := d.trial(t, h, y)
		if math.IsNaN(errNorm) || math.IsInf(errNorm, 0) {
			d.h = h * minFactor
			continue
		}

		factor := maxFactor
		if errNorm > 0 {
			factor = math.Min(maxFactor, math.Max(minFactor, safety*math.Pow(errNorm, -0.2)))
		}

		if errNorm <= 1 {
			copy(y, d.ynew)
			d.k1, d.k7 = d.k7, d.k1 // first same as last
			if last {
				t = t1
			} else {
				t += h
			}
			accepted++
			// Keep the unclipped proposal when the step was shortened to hit t1.
			if !last || h >= d.h {
				d.h = h * factor
			}
		} else {
			d.h = h * math.Min(1, factor)
		}
	}

	return accepted, nil
}

// trial computes a candidate step into d.ynew and returns the scaled error norm.
// d.k1 must hold f(t, y) on entry; d.k7 holds f(t+h, ynew) on return.
func (d *dopri) trial(t, h float64, y []float64) float64 {
	n := len(y)
	for i := 0; i < n; i++ {
		d.tmp[i] = y[i] + h*a21*d.k1[i]
	}
	d.f(t+c2*h, d.tmp, d.k2)
	for i := 0; i < n; i++ {
		d.tmp[i] = y[i] + h*(a31*d.k1[i]+a32*d.k2[i])
	}
	d.f(t+c3*h, d.tmp, d.k3)
	for i := 0; i < n; i++ {
		d.tmp[i] = y[i] + h*(a41*d.k1[i]+a42*d.k2[i]+a43*d.k3[i])
	}
	d.f(t+c4*h, d.tmp, d.k4)
	for i := 0; i < n; i++ {
		d.tmp[i] = y[i] + h*(a51*d.k1[i]+a52*d.k2[i]+a53*d.k3[i]+a54*d.k4[i])
	}
	d.f(t+c5*h, d.tmp, d.k5)
	for i := 0; i < n; i++ {
		d.tmp[i] = y[i] + h*(a61*d.k1[i]+a62*d.k2[i]+a63*d.k3[i]+a64*d.k4[i]+a65*d.k5[i])
	}
	d.f(t+h, d.tmp, d.k6)
	for i := 0; i < n; i++ {
		d.ynew[i] = y[i] + h*(b1*d.k1[i]+b3*d.k3[i]+b4*d.k4[i]+b5*d.k5[i]+b6*d.k6[i])
	}
	d.f(t+h, d.ynew, d.k7)

	var sum float64
	for i := 0; i < n; i++ {
		errI := h * (e1*d.k1[i] + e3*d.k3[i] + e4*d.k4[i] + e5*d.k5[i] + e6*d.k6[i] + e7*d.k7[i])
		scale := d.opts.AbsTol + d.opts.RelTol*math.Max(math.Abs(y[i]), math.Abs(d.ynew[i]))
		if scale == 0 {
			scale = math.SmallestNonzeroFloat64
		}
		r := errI / scale
		sum += r * r
	}

	return math.Sqrt(sum / float64(n))
}

// initialStep picks a conservative first step from the whole output span.
// A short first output interval only clips the step, never shrinks it.
func (d *dopri) initialStep(t0, t1 float64, y []float64) float64 {
	span := t1 - t0
	h := span / 100
	d.f(t0, y, d.k1)
	d.fsal = true
	var rate float64
	for i, v := range d.k1 {
		scale := d.opts.AbsTol + d.opts.RelTol*math.Abs(y[i])
		if scale > 0 {
			rate = math.Max(rate, math.Abs(v)/scale)
		}
	}
	if rate > 0 {
		// aim for a first-step error near the tolerance
		h = math.Min(h, 0.01/rate*math.Pow(1/math.Max(d.opts.RelTol, 1e-12), 0.2))
	}
	if d.opts.MaxStep > 0 {
		h = math.Min(h, d.opts.MaxStep)
	}
	if h <= 0 {
		h = span
	}

	return h
}
