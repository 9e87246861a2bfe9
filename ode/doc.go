// SPDX-License-Identifier: MIT

// Package ode integrates systems of ordinary differential equations and
// samples the solution at caller-chosen output times.
//
// 🚀 What is it for?
//
//	Compartment models describe drug amounts as dy/dt = f(t, y). Solve
//	advances y from times[0] and reports the state at every requested time,
//	the same contract as a classic "odeint(f, y0, t)" call:
//
//	  • row 0 of the solution is y0 itself
//	  • output times must be non-decreasing
//	  • internal steps are independent of the output grid (adaptive mode)
//
// ✨ Methods:
//   - DormandPrince — adaptive embedded RK 5(4) with error control (default)
//   - RK4           — classic fixed-step Runge–Kutta
//   - Euler         — explicit Euler, kept for convergence demonstrations
//
// ⚙️ Usage:
//
//	decay := func(_ float64, y, dydt []float64) { dydt[0] = -0.01 * y[0] }
//	times, _ := grid.Linspace(0, 240, 200)
//	sol, err := ode.Solve(decay, []float64{10}, times, nil)
//
// Complexity:
//
//   - Memory: O(len(times)·len(y0)) for the sampled output.
//   - Time:   O(steps·len(y0)); fixed-step methods take one step per output
//     interval unless Options.Step subdivides it.
package ode
