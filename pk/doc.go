// SPDX-License-Identifier: MIT

// Package pk derives summary pharmacokinetic metrics from a
// concentration–time series.
//
// 🚀 What does Compute report?
//
//	Given sample times t [hr], concentrations c [mg/l] and the dose [mg]:
//	  • AUC     — trapezoidal area over the sampled interval
//	  • tmax    — time of the highest concentration, cmax its value
//	  • kel     — terminal elimination rate, minus the slope of ln c after tmax
//	  • t½      — ln2 / kel
//	  • AUCinf  — AUC + c_last / kel (extrapolation to infinity)
//	  • Vd      — dose / (AUCinf · kel)
//	  • CL      — kel · Vd, equivalently dose / AUCinf
//
// ✨ Data policy:
//   - NaN samples are ignored everywhere (argmax, AUC, regression).
//   - Non-positive concentrations are dropped from the log-linear fit.
//   - Times must be non-decreasing.
//
// ⚙️ Usage:
//
//	m, err := pk.Compute(t, c, 100)
//	if err != nil {
//	  // ErrTooFewPoints, ErrNoTerminalPhase, ErrNoElimination, ...
//	}
//	fmt.Println(m.Format())
//
// The regression uses gonum's stat.LinearRegression and the area uses
// gonum's integrate.Trapezoidal.
package pk
