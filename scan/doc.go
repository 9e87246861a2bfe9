// Package scan evaluates a model over a range of parameter values.
//
// 🚀 What it does
//
//   - Run: generic bounded-concurrency map with ordered results.
//   - Dose, Volume, Clearance: analytic one-compartment profiles per value.
//   - AUC: profiles plus the area under each one, per dose.
//   - Models: ODE trajectories of a compartment model rebuilt per value
//     (absorption rate, lag time, transit chain length).
//   - Recovery: fraction of a dose found in urine as parent and metabolite.
//
// ⚙️ Concurrency
//
// Every scan point is independent. Run uses errgroup with SetLimit; the
// first failing point cancels the context handed to the rest and its error
// is returned. Results always come back in the order of the input values.
// A limit <= 0 means one goroutine per value.
package scan
