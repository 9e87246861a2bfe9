// SPDX-License-Identifier: MIT

package ode

import "math"

// scheme performs one fixed step of size h from (t, y) into out.
type scheme func(f Func, t, h float64, y, out []float64, w *work)

// work holds stage buffers shared by the fixed-step schemes.
type work struct {
	k1, k2, k3, k4, tmp []float64
}

func newWork(n int) *work {
	return &work{
		k1:  make([]float64, n),
		k2:  make([]float64, n),
		k3:  make([]float64, n),
		k4:  make([]float64, n),
		tmp: make([]float64, n),
	}
}

type fixed struct {
	f    Func
	step float64
	do   scheme
	w    *work
	next []float64
}

func newFixed(f Func, n int, o *Options, do scheme) *fixed {
	return &fixed{f: f, step: o.Step, do: do, w: newWork(n), next: make([]float64, n)}
}

// advance splits [t0, t1] into ceil((t1-t0)/step) equal sub-steps,
// or a single step when no step size was configured.
func (s *fixed) advance(t0, t1 float64, y []float64) (int, error) {
	span := t1 - t0
	n := 1
	if s.step > 0 {
		n = int(math.Ceil(span/s.step - 1e-12))
		if n < 1 {
			n = 1
		}
	}
	h := span / float64(n)
	t := t0
	for i := 0; i < n; i++ {
		s.do(s.f, t, h, y, s.next, s.w)
		copy(y, s.next)
		t = t0 + float64(i+1)*h
	}

	return n, nil
}

func eulerStep(f Func, t, h float64, y, out []float64, w *work) {
	f(t, y, w.k1)
	for i := range y {
		out[i] = y[i] + h*w.k1[i]
	}
}

func rk4Step(f Func, t, h float64, y, out []float64, w *work) {
	const (
		half     = 0.5
		oneSixth = 1.0 / 6.0
		oneThird = 1.0 / 3.0
	)
	f(t, y, w.k1)
	for i := range y {
		w.tmp[i] = y[i] + half*h*w.k1[i]
	}
	f(t+half*h, w.tmp, w.k2)
	for i := range y {
		w.tmp[i] = y[i] + half*h*w.k2[i]
	}
	f(t+half*h, w.tmp, w.k3)
	for i := range y {
		w.tmp[i] = y[i] + h*w.k3[i]
	}
	f(t+h, w.tmp, w.k4)
	for i := range y {
		out[i] = y[i] + h*(oneSixth*(w.k1[i]+w.k4[i])+oneThird*(w.k2[i]+w.k3[i]))
	}
}
