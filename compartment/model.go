package compartment

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/pkmodel/ode"
)

var (
	// ErrInvalidRate indicates a negative or non-finite rate constant or lag.
	ErrInvalidRate = errors.New("compartment: rate constants must be finite and >= 0")

	// ErrUnknownState indicates a state name the model does not define.
	ErrUnknownState = errors.New("compartment: unknown state")

	// ErrBadChain indicates a transit chain without compartments.
	ErrBadChain = errors.New("compartment: transit chain needs at least one compartment")
)

// Model is a compartment ODE system.
//
// Derivative must write len(States()) values into dxdt and must not retain
// its slices. Dose adds an administered amount [mg] to the state vector in
// whatever unit the model's dosing compartment uses.
type Model interface {
	Name() string
	States() []string
	Derivative(t float64, x, dxdt []float64)
	Dose(x []float64, amount float64)
}

// Initial returns the zero state of m with dose applied.
func Initial(m Model, dose float64) []float64 {
	x := make([]float64, len(m.States()))
	m.Dose(x, dose)

	return x
}

// Index returns the position of the named state.
func Index(m Model, name string) (int, error) {
	for i, s := range m.States() {
		if s == name {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%w: %q in %s", ErrUnknownState, name, m.Name())
}

// Simulate integrates m from Initial(m, dose) over times and labels the
// solution columns with the state names.
func Simulate(m Model, dose float64, times []float64, opts *ode.Options) (*ode.Solution, error) {
	return SimulateFrom(m, Initial(m, dose), times, opts)
}

// SimulateFrom integrates m from an explicit initial state x0.
func SimulateFrom(m Model, x0 []float64, times []float64, opts *ode.Options) (*ode.Solution, error) {
	sol, err := ode.Solve(m.Derivative, x0, times, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}
	sol.Names = append([]string(nil), m.States()...)

	return sol, nil
}

// Total returns the sum of all state components.
func Total(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}

	return s
}

func checkRates(rates ...float64) error {
	for _, r := range rates {
		if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
			return fmt.Errorf("%w: got %g", ErrInvalidRate, r)
		}
	}

	return nil
}
