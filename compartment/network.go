package compartment

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDuplicateName indicates a place or transition name used twice.
	ErrDuplicateName = errors.New("compartment: duplicate place or transition")

	// ErrBadArc indicates an arc that does not join a place and a transition,
	// or carries a non-positive weight.
	ErrBadArc = errors.New("compartment: arc must join a place and a transition with weight > 0")
)

// Network is a mass-action reaction network. Places hold amounts; every
// transition fires at rate·Π x[in]^weight and moves weight units per firing
// from each input place to each output place.
//
// A Network satisfies Model, so it runs through Simulate like any other
// right-hand side. Rates are constant: time-dependent switches such as an
// absorption lag are outside what a Network can express.
type Network struct {
	name   string
	places []string
	index  map[string]int
	trans  []transition
	tindex map[string]int

	dosePlace int
	doseScale float64
}

type arc struct {
	place  int
	weight float64
}

type transition struct {
	name    string
	rate    float64
	in, out []arc
}

// NewNetwork returns an empty network. Doses go to the first place unless
// SetDose says otherwise.
func NewNetwork(name string) *Network {
	return &Network{
		name:      name,
		index:     make(map[string]int),
		tindex:    make(map[string]int),
		doseScale: 1,
	}
}

// AddPlace appends a place; places keep their insertion order as states.
func (n *Network) AddPlace(name string) error {
	if _, ok := n.index[name]; ok {
		return fmt.Errorf("%w: place %q", ErrDuplicateName, name)
	}
	if _, ok := n.tindex[name]; ok {
		return fmt.Errorf("%w: place %q", ErrDuplicateName, name)
	}
	n.index[name] = len(n.places)
	n.places = append(n.places, name)

	return nil
}

// AddTransition adds a transition with mass-action rate constant rate.
func (n *Network) AddTransition(name string, rate float64) error {
	if err := checkRates(rate); err != nil {
		return fmt.Errorf("transition %q: %w", name, err)
	}
	if _, ok := n.tindex[name]; ok {
		return fmt.Errorf("%w: transition %q", ErrDuplicateName, name)
	}
	if _, ok := n.index[name]; ok {
		return fmt.Errorf("%w: transition %q", ErrDuplicateName, name)
	}
	n.tindex[name] = len(n.trans)
	n.trans = append(n.trans, transition{name: name, rate: rate})

	return nil
}

// AddArc connects a place to a transition (input) or a transition to a
// place (output).
func (n *Network) AddArc(from, to string, weight float64) error {
	if !(weight > 0) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: %s -> %s weight %g", ErrBadArc, from, to, weight)
	}
	if p, ok := n.index[from]; ok {
		t, ok := n.tindex[to]
		if !ok {
			return fmt.Errorf("%w: %s -> %s", ErrBadArc, from, to)
		}
		n.trans[t].in = append(n.trans[t].in, arc{place: p, weight: weight})
		return nil
	}
	if t, ok := n.tindex[from]; ok {
		p, ok := n.index[to]
		if !ok {
			return fmt.Errorf("%w: %s -> %s", ErrBadArc, from, to)
		}
		n.trans[t].out = append(n.trans[t].out, arc{place: p, weight: weight})
		return nil
	}

	return fmt.Errorf("%w: %s -> %s", ErrBadArc, from, to)
}

// SetDose routes doses to place, multiplied by scale (1/V turns an amount
// into a concentration).
func (n *Network) SetDose(place string, scale float64) error {
	p, ok := n.index[place]
	if !ok {
		return fmt.Errorf("%w: %q in %s", ErrUnknownState, place, n.name)
	}
	if err := checkRates(scale); err != nil {
		return err
	}
	n.dosePlace, n.doseScale = p, scale

	return nil
}

// Flux returns the firing rate of every transition at state x, in
// insertion order.
func (n *Network) Flux(x []float64) []float64 {
	v := make([]float64, len(n.trans))
	for i := range n.trans {
		v[i] = n.trans[i].flux(x)
	}

	return v
}

func (n *Network) Name() string { return n.name }

func (n *Network) States() []string { return append([]string(nil), n.places...) }

func (n *Network) Derivative(_ float64, x, dxdt []float64) {
	for i := range dxdt {
		dxdt[i] = 0
	}
	for i := range n.trans {
		tr := &n.trans[i]
		v := tr.flux(x)
		for _, a := range tr.in {
			dxdt[a.place] -= a.weight * v
		}
		for _, a := range tr.out {
			dxdt[a.place] += a.weight * v
		}
	}
}

func (n *Network) Dose(x []float64, amount float64) {
	if len(n.places) > 0 {
		x[n.dosePlace] += amount * n.doseScale
	}
}

func (tr *transition) flux(x []float64) float64 {
	v := tr.rate
	for _, a := range tr.in {
		if a.weight == 1 {
			v *= x[a.place]
		} else {
			v *= math.Pow(x[a.place], a.weight)
		}
	}

	return v
}

// Reactions is implemented by models that are pure mass-action transfers.
type Reactions interface {
	Model
	Network() *Network
}

// AsNetwork returns the reaction network behind m when m has one and m
// itself otherwise.
func AsNetwork(m Model) Model {
	if r, ok := m.(Reactions); ok {
		return r.Network()
	}

	return m
}

// netBuilder collects the first construction error so the model networks
// below read as plain sequences of places, transitions and arcs.
type netBuilder struct {
	n   *Network
	err error
}

func (b *netBuilder) place(names ...string) {
	for _, name := range names {
		if b.err == nil {
			b.err = b.n.AddPlace(name)
		}
	}
}

// transfer adds transition name moving one unit from src to dst at rate k.
// An empty dst removes the amount from the system.
func (b *netBuilder) transfer(name, src, dst string, k float64) {
	if b.err == nil {
		b.err = b.n.AddTransition(name, k)
	}
	if b.err == nil {
		b.err = b.n.AddArc(src, name, 1)
	}
	if b.err == nil && dst != "" {
		b.err = b.n.AddArc(name, dst, 1)
	}
}

// build panics on a construction error: the models validate their rates
// and use fixed place names, so a failure is a programming error.
func (b *netBuilder) build() *Network {
	if b.err != nil {
		panic(b.err)
	}

	return b.n
}

// Network returns elimination as a single transition draining C.
func (m *OneCompartment) Network() *Network {
	b := &netBuilder{n: NewNetwork(m.Name())}
	b.place(Conc)
	b.transfer("elimination", Conc, "", m.CL/m.V)
	if b.err == nil {
		b.err = b.n.SetDose(Conc, 1/m.V)
	}

	return b.build()
}

// Network returns tablet -> central -> urine.
func (m *FirstOrderAbsorption) Network() *Network {
	b := &netBuilder{n: NewNetwork(m.Name())}
	b.place(Tablet, Central, Urine)
	b.transfer("absorption", Tablet, Central, m.Ka)
	b.transfer("excretion", Central, Urine, m.Ke)

	return b.build()
}

// Network returns tablet -> A1 -> ... -> AN -> central -> urine.
func (m *TransitChain) Network() *Network {
	b := &netBuilder{n: NewNetwork(m.Name())}
	states := m.States()
	b.place(states...)
	src := Tablet
	for i := 0; i < m.N; i++ {
		dst := states[3+i]
		b.transfer(fmt.Sprintf("transit%d", i), src, dst, m.Ka)
		src = dst
	}
	b.transfer(fmt.Sprintf("transit%d", m.N), src, Central, m.Ka)
	b.transfer("excretion", Central, Urine, m.Ke)

	return b.build()
}

// Network returns absorption of A, metabolism A -> B and urinary
// excretion of both.
func (m *ParentMetabolite) Network() *Network {
	b := &netBuilder{n: NewNetwork(m.Name())}
	b.place(Tablet, Central, BCentral, Urine, BUrine)
	b.transfer("absorption", Tablet, Central, m.Ka)
	b.transfer("metabolism", Central, BCentral, m.Km)
	b.transfer("excretion A", Central, Urine, m.Ke)
	b.transfer("excretion B", BCentral, BUrine, m.Ke)

	return b.build()
}
