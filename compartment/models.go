package compartment

import (
	"fmt"
	"math"
)

// State names shared by the absorption models.
const (
	Tablet   = "A_tablet"
	Central  = "A_central"
	Urine    = "A_urine"
	BCentral = "B_central"
	BUrine   = "B_urine"
	Conc     = "C"
)

// DefaultTransitCompartments is the chain length used when N is 0.
const DefaultTransitCompartments = 4

// OneCompartment is the concentration form of linear elimination:
// dC/dt = -CL/V·C. Dosing adds Dose/V to C.
type OneCompartment struct {
	CL float64 // [l/hr]
	V  float64 // [l]
}

// NewOneCompartment validates CL >= 0 and V > 0.
func NewOneCompartment(cl, v float64) (*OneCompartment, error) {
	if err := checkRates(cl, v); err != nil {
		return nil, err
	}
	if v == 0 {
		return nil, fmt.Errorf("%w: volume must be > 0", ErrInvalidRate)
	}

	return &OneCompartment{CL: cl, V: v}, nil
}

func (m *OneCompartment) Name() string     { return "one-compartment" }
func (m *OneCompartment) States() []string { return []string{Conc} }

func (m *OneCompartment) Derivative(_ float64, x, dxdt []float64) {
	dxdt[0] = -m.CL / m.V * x[0]
}

func (m *OneCompartment) Dose(x []float64, amount float64) { x[0] += amount / m.V }

// FirstOrderAbsorption moves drug from a tablet depot into the central
// compartment (ka) and from there into urine (ke). States are amounts [mg].
type FirstOrderAbsorption struct {
	Ka float64 // [1/hr]
	Ke float64 // [1/hr]
}

// NewFirstOrderAbsorption validates both rate constants.
func NewFirstOrderAbsorption(ka, ke float64) (*FirstOrderAbsorption, error) {
	if err := checkRates(ka, ke); err != nil {
		return nil, err
	}

	return &FirstOrderAbsorption{Ka: ka, Ke: ke}, nil
}

func (m *FirstOrderAbsorption) Name() string     { return "first-order-absorption" }
func (m *FirstOrderAbsorption) States() []string { return []string{Tablet, Central, Urine} }

func (m *FirstOrderAbsorption) Derivative(_ float64, x, dxdt []float64) {
	va := m.Ka * x[0]
	ve := m.Ke * x[1]
	dxdt[0] = -va
	dxdt[1] = va - ve
	dxdt[2] = ve
}

func (m *FirstOrderAbsorption) Dose(x []float64, amount float64) { x[0] += amount }

// LaggedAbsorption is FirstOrderAbsorption with no absorption before Lag hours.
type LaggedAbsorption struct {
	Ka  float64 // [1/hr]
	Ke  float64 // [1/hr]
	Lag float64 // [hr]
}

// NewLaggedAbsorption validates the rates and the lag time.
func NewLaggedAbsorption(ka, ke, lag float64) (*LaggedAbsorption, error) {
	if err := checkRates(ka, ke, lag); err != nil {
		return nil, err
	}

	return &LaggedAbsorption{Ka: ka, Ke: ke, Lag: lag}, nil
}

func (m *LaggedAbsorption) Name() string     { return "lagged-absorption" }
func (m *LaggedAbsorption) States() []string { return []string{Tablet, Central, Urine} }

func (m *LaggedAbsorption) Derivative(t float64, x, dxdt []float64) {
	va := 0.0
	if t >= m.Lag {
		va = m.Ka * x[0]
	}
	ve := m.Ke * x[1]
	dxdt[0] = -va
	dxdt[1] = va - ve
	dxdt[2] = ve
}

func (m *LaggedAbsorption) Dose(x []float64, amount float64) { x[0] += amount }

// TransitChain delays absorption through N transit compartments, each
// emptying at ka. The state order is tablet, central, urine, A1..AN.
type TransitChain struct {
	Ka float64 // [1/hr]
	Ke float64 // [1/hr]
	N  int
}

// NewTransitChain validates the rates; n == 0 selects DefaultTransitCompartments.
func NewTransitChain(ka, ke float64, n int) (*TransitChain, error) {
	if err := checkRates(ka, ke); err != nil {
		return nil, err
	}
	if n == 0 {
		n = DefaultTransitCompartments
	}
	if n < 0 {
		return nil, ErrBadChain
	}

	return &TransitChain{Ka: ka, Ke: ke, N: n}, nil
}

func (m *TransitChain) Name() string { return fmt.Sprintf("transit-chain-%d", m.N) }

func (m *TransitChain) States() []string {
	s := []string{Tablet, Central, Urine}
	for i := 1; i <= m.N; i++ {
		s = append(s, fmt.Sprintf("A%d", i))
	}

	return s
}

func (m *TransitChain) Derivative(_ float64, x, dxdt []float64) {
	va := m.Ka * x[0]
	ve := m.Ke * x[1]
	dxdt[0] = -va
	dxdt[2] = ve

	in := va
	for i := 0; i < m.N; i++ {
		out := m.Ka * x[3+i]
		dxdt[3+i] = in - out
		in = out
	}
	dxdt[1] = in - ve // end of chain feeds central
}

func (m *TransitChain) Dose(x []float64, amount float64) { x[0] += amount }

// MeanTransitTime returns the mean time a dose needs to reach the central
// compartment, (N+1)/ka [hr].
func (m *TransitChain) MeanTransitTime() float64 {
	if m.Ka == 0 {
		return math.Inf(1)
	}

	return float64(m.N+1) / m.Ka
}

// ParentMetabolite absorbs parent drug A, converts it to metabolite B at km
// and excretes both into urine at ke.
type ParentMetabolite struct {
	Ka float64 // [1/hr]
	Km float64 // [1/hr]
	Ke float64 // [1/hr]
}

// NewParentMetabolite validates the three rate constants.
func NewParentMetabolite(ka, km, ke float64) (*ParentMetabolite, error) {
	if err := checkRates(ka, km, ke); err != nil {
		return nil, err
	}

	return &ParentMetabolite{Ka: ka, Km: km, Ke: ke}, nil
}

func (m *ParentMetabolite) Name() string { return "parent-metabolite" }

func (m *ParentMetabolite) States() []string {
	return []string{Tablet, Central, BCentral, Urine, BUrine}
}

func (m *ParentMetabolite) Derivative(_ float64, x, dxdt []float64) {
	va := m.Ka * x[0]
	vm := m.Km * x[1]
	vuA := m.Ke * x[1]
	vuB := m.Ke * x[2]
	dxdt[0] = -va
	dxdt[1] = va - vm - vuA
	dxdt[2] = vm - vuB
	dxdt[3] = vuA
	dxdt[4] = vuB
}

func (m *ParentMetabolite) Dose(x []float64, amount float64) { x[0] += amount }
