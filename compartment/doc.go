// Package compartment defines the ODE right-hand sides of the absorption and
// elimination models and a thin simulation wrapper over package ode.
//
// Every model is written in stoichiometric form: a handful of mass-action
// rates v = k·A, and each state's derivative is the sum of the rates flowing
// in minus the rates flowing out. Amount-based models therefore conserve the
// total drug mass, which the tests check explicitly.
//
//	FirstOrderAbsorption:  tablet ──ka──▶ central ──ke──▶ urine
//	TransitChain:          tablet ──ka──▶ A1 ─▶ … ─▶ AN ──ka──▶ central ──ke──▶ urine
//	ParentMetabolite:      tablet ──ka──▶ A_central ──km──▶ B_central
//	                                         │ke                │ke
//	                                         ▼                  ▼
//	                                      A_urine            B_urine
//
// The same transfers can be assembled as a Network of places, transitions and
// weighted arcs. OneCompartment, FirstOrderAbsorption, TransitChain and
// ParentMetabolite expose theirs through Network(), and AsNetwork swaps a
// model for it before simulation. LaggedAbsorption switches absorption on at
// t = Lag and keeps its hand-written right-hand side.
package compartment
