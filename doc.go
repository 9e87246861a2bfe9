// Package pkmodel is a small pharmacokinetics workbench: compartment models,
// an ODE integrator, PK metrics and parameter scans, with a command-line
// runner that renders every result as a figure.
//
// 🚀 What is inside?
//
//	grid/        — linspace, arange and shifted time grids
//	structural/  — analytic one-compartment model C(t) = Dose/V·exp(-CL/V·t),
//	               oral closed forms and the explicit-Euler error study
//	ode/         — Dormand–Prince 5(4), RK4 and Euler with odeint-style output
//	compartment/ — ODE right-hand sides: absorption, lag, transit chain,
//	               parent–metabolite, and mass-action reaction networks
//	kinetics/    — mass-action, Michaelis–Menten and Hill rate laws
//	pk/          — AUC, tmax/cmax, terminal slope, t½, Vd and CL from data
//	dosing/      — repeated dosing and therapeutic-window exposure
//	scan/        — concurrent parameter scans over any of the above
//	compare/     — pointwise error norms and time-warped profile alignment
//	plot/        — PNG line figures
//	scenario/    — YAML parameter sets and embedded presets
//	cmd/pkdemo   — the command-line demo runner
//
// ✨ Units
//
// Amounts are in mg, volumes in l, times in hr, concentrations in mg/l and
// clearances in l/hr throughout.
//
// Quick look at the model family:
//
//	tablet ──ka──▶ central ──ke──▶ urine
//	                  │
//	                  km
//	                  ▼
//	              metabolite ──ke──▶ urine
package pkmodel
