package structural

import "math"

// Bateman returns the central amount after an oral dose with first-order
// absorption ka and elimination ke [mg]:
//
//	A(t) = Dose·ka/(ka-ke) · (exp(-ke·t) - exp(-ka·t))
//
// For ka == ke the limit Dose·k·t·exp(-k·t) is used. Divide by V for a
// concentration. Zero absorption yields 0.
func Bateman(dose, ka, ke, t float64) float64 {
	if ka == 0 {
		return 0
	}
	if math.Abs(ka-ke) <= 1e-12*math.Max(ka, ke) {
		return dose * ka * t * math.Exp(-ka*t)
	}

	return dose * ka / (ka - ke) * (math.Exp(-ke*t) - math.Exp(-ka*t))
}

// GammaVariate returns Dose/V · t · exp(-CL/V · t) [mg/l], the rise-and-decay
// curve used as synthetic measurement data for metric estimation.
func GammaVariate(dose, v, cl, t float64) float64 {
	return dose / v * t * math.Exp(-cl/v*t)
}

// GammaVariateProfile evaluates GammaVariate at every time point.
func GammaVariateProfile(dose, v, cl float64, times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = GammaVariate(dose, v, cl, t)
	}

	return out
}
