// Package structural holds the closed-form one-compartment model with
// linear elimination, the oral-absorption closed forms, and the explicit
// Euler convergence study built on top of them.
//
// After an IV bolus the plasma concentration follows
//
//	C(t) = Dose/V · exp(-CL/V · t)
//
// so the whole time course is fixed by three numbers: the dose [mg], the
// volume of distribution V [l] and the clearance CL [l/hr]. The presets
// Warfarin and Aspirin carry the textbook values of both drugs, whose
// half-lives differ by two orders of magnitude.
package structural
