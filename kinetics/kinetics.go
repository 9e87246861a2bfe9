// Package kinetics provides the elementary rate laws behind the compartment
// models: mass action, Michaelis–Menten saturation and Hill cooperativity.
package kinetics

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter indicates a negative or non-finite rate-law parameter.
var ErrInvalidParameter = errors.New("kinetics: parameters must be finite and >= 0")

// RateLaw maps a substrate concentration [mM] to a reaction rate.
type RateLaw func(a float64) float64

// MassAction returns v = k·A.
func MassAction(k float64) (RateLaw, error) {
	if err := check(k); err != nil {
		return nil, err
	}

	return func(a float64) float64 { return k * a }, nil
}

// MichaelisMenten returns v = Vmax·A/(Km + A).
// Half-maximal rate is reached at A = Km.
func MichaelisMenten(vmax, km float64) (RateLaw, error) {
	if err := check(vmax, km); err != nil {
		return nil, err
	}

	return func(a float64) float64 {
		if km+a == 0 {
			return 0
		}
		return vmax * a / (km + a)
	}, nil
}

// Hill returns v = Vmax·Aⁿ/(Kmⁿ + Aⁿ). n == 1 reduces to Michaelis–Menten.
func Hill(vmax, km, n float64) (RateLaw, error) {
	if err := check(vmax, km, n); err != nil {
		return nil, err
	}

	return func(a float64) float64 {
		an := math.Pow(a, n)
		den := math.Pow(km, n) + an
		if den == 0 {
			return 0
		}
		return vmax * an / den
	}, nil
}

// Evaluate applies law to every concentration.
func Evaluate(law RateLaw, concentrations []float64) []float64 {
	out := make([]float64, len(concentrations))
	for i, a := range concentrations {
		out[i] = law(a)
	}

	return out
}

func check(ps ...float64) error {
	for _, p := range ps {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return fmt.Errorf("%w: got %g", ErrInvalidParameter, p)
		}
	}

	return nil
}
