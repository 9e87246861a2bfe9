package dosing_test

import (
	"testing"

	"github.com/katalvlaran/pkmodel/compartment"
	"github.com/katalvlaran/pkmodel/dosing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSimulate_AccumulatesDoses checks segment layout and mass balance of ten daily doses.
func TestSimulate_AccumulatesDoses(t *testing.T) {
	m, err := compartment.NewFirstOrderAbsorption(0.5, 0.2)
	require.NoError(t, err)
	r := dosing.DefaultRegimen(10)

	sol, err := dosing.Simulate(m, r, nil)
	require.NoError(t, err)
	require.Equal(t, r.Count*r.Points, sol.Len())
	assert.Equal(t, []string{compartment.Tablet, compartment.Central, compartment.Urine}, sol.Names)

	// segment k starts at k·interval, and the boundary time is repeated
	assert.Equal(t, 24.0, sol.Times[r.Points-1])
	assert.Equal(t, 24.0, sol.Times[r.Points])
	assert.Equal(t, 240.0, sol.Times[sol.Len()-1])

	// the second dose lands in the tablet compartment
	pre, post := sol.States[r.Points-1], sol.States[r.Points]
	assert.InDelta(t, pre[0]+10, post[0], 1e-12)
	assert.Equal(t, pre[1], post[1])

	total := compartment.Total(sol.Final())
	assert.InDelta(t, 100, total, 1e-6, "all ten doses are accounted for")
}

// TestSimulate_LoadingDose uses FirstDose for the first administration only.
func TestSimulate_LoadingDose(t *testing.T) {
	m, _ := compartment.NewFirstOrderAbsorption(0.01, 0.01)
	r := dosing.Regimen{Dose: 0.75, FirstDose: 6, Interval: 24, Count: 3, Points: 10}

	sol, err := dosing.Simulate(m, r, nil)
	require.NoError(t, err)
	assert.Equal(t, 6.0, sol.States[0][0])
	assert.InDelta(t, 6+0.75*2, compartment.Total(sol.Final()), 1e-6)
}

// TestSimulate_OneCompartmentSteadyState approaches the accumulation ratio 1/(1-e^{-kτ}).
func TestSimulate_OneCompartmentSteadyState(t *testing.T) {
	m, _ := compartment.NewOneCompartment(1, 10) // k = 0.1/hr
	r := dosing.Regimen{Dose: 100, Interval: 12, Count: 40, Points: 13}

	sol, err := dosing.Simulate(m, r, nil)
	require.NoError(t, err)

	peak := sol.States[(r.Count-1)*r.Points][0]
	want := 10 / (1 - 0.30119421191220214) // 10 mg/l · 1/(1-e^{-1.2})
	assert.InEpsilon(t, want, peak, 1e-4)
}

func TestRegimen_Validate(t *testing.T) {
	bad := []dosing.Regimen{
		{Dose: -1, Interval: 24, Count: 1, Points: 10},
		{Dose: 1, Interval: 0, Count: 1, Points: 10},
		{Dose: 1, Interval: 24, Count: 0, Points: 10},
		{Dose: 1, Interval: 24, Count: 1, Points: 1},
	}
	m, _ := compartment.NewFirstOrderAbsorption(1, 1)
	for _, r := range bad {
		_, err := dosing.Simulate(m, r, nil)
		assert.ErrorIs(t, err, dosing.ErrInvalidRegimen, "%+v", r)
	}
}

func TestWindow_Analyze(t *testing.T) {
	w := dosing.Window{MEC: 2, MTC: 4}
	times := []float64{0, 1, 2, 3, 3, 4}
	values := []float64{1, 1, 3, 6, 5, 3}

	e, err := w.Analyze(times, values)
	require.NoError(t, err)
	assert.Equal(t, 1.0, e.Below)  // [0,1): mean 1
	assert.Equal(t, 2.0, e.Within) // [1,2): mean 2, [3,4): mean 4 (dose jump at t=3 is skipped)
	assert.Equal(t, 1.0, e.Above)  // [2,3): mean 4.5
	assert.Equal(t, 4.0, e.Total())
	assert.Equal(t, 0.5, e.FractionWithin())
	assert.Equal(t, 2.0, e.FirstWithin)
}

func TestWindow_Errors(t *testing.T) {
	_, err := dosing.Window{MEC: 4, MTC: 2}.Analyze(nil, nil)
	assert.ErrorIs(t, err, dosing.ErrInvalidWindow)

	_, err = dosing.Window{MEC: 1, MTC: 2}.Analyze([]float64{0}, nil)
	assert.ErrorIs(t, err, dosing.ErrLengthMismatch)

	e, err := dosing.Window{MEC: 1, MTC: 2}.Analyze(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, e.FractionWithin())
	assert.Equal(t, -1.0, e.FirstWithin)
}
