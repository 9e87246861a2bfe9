package pk_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/pkmodel/grid"
	"github.com/katalvlaran/pkmodel/pk"
	"github.com/katalvlaran/pkmodel/structural"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bolus returns a sampled IV-bolus profile 10·exp(-0.1·t) over 48 hours.
func bolus() (t, c []float64) {
	t = grid.MustLinspace(0, 48, 49)
	p := structural.Params{Dose: 100, V: 10, CL: 1}
	return t, p.Profile(t)
}

// TestCompute_ExactExponential recovers kel, t½, Vd and CL from noise-free decay.
func TestCompute_ExactExponential(t *testing.T) {
	ts, cs := bolus()

	m, err := pk.Compute(ts, cs, 100)
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.Tmax)
	assert.Equal(t, 10.0, m.Cmax)
	assert.InDelta(t, 0.1, m.Kel, 1e-9)
	assert.InDelta(t, math.Ln2/0.1, m.Thalf, 1e-6)
	assert.InDelta(t, 1.0, m.RSquared, 1e-12)
	assert.InDelta(t, math.Log(10), m.Intercept, 1e-9)
	assert.Equal(t, 48, m.TerminalCount)

	assert.InEpsilon(t, 100*(1-math.Exp(-4.8)), m.AUC, 1e-3)
	assert.InEpsilon(t, 100.0, m.AUCInf, 1e-3)
	assert.InEpsilon(t, 10.0, m.Vd, 1e-3)
	assert.InEpsilon(t, 1.0, m.CL, 1e-3)
	assert.InDelta(t, m.Dose/m.AUCInf, m.CL, 1e-12, "CL = dose/AUCinf")
}

// TestCompute_OralProfile runs the synthetic rise-and-decay data set.
func TestCompute_OralProfile(t *testing.T) {
	ts := grid.MustLinspace(0, 6, 8)
	cs := structural.GammaVariateProfile(100, 6, 5, ts)

	m, err := pk.Compute(ts, cs, 100)
	require.NoError(t, err)
	assert.Equal(t, ts[1], m.Tmax)
	assert.Equal(t, cs[1], m.Cmax)
	assert.Positive(t, m.Kel)
	assert.Less(t, m.RSquared, 1.0)
	assert.Equal(t, 6, m.TerminalCount)
	assert.Greater(t, m.AUCInf, m.AUC)
}

// TestCompute_IgnoresNaN masks missing samples instead of propagating them.
func TestCompute_IgnoresNaN(t *testing.T) {
	ts, cs := bolus()
	cs[5] = math.NaN()
	cs[len(cs)-1] = math.NaN()

	m, err := pk.Compute(ts, cs, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, m.Kel, 1e-9)
	assert.Equal(t, 46, m.TerminalCount)
	assert.False(t, math.IsNaN(m.AUCInf))
}

func TestCompute_Errors(t *testing.T) {
	t.Parallel()
	ts, cs := bolus()
	nan := []float64{math.NaN(), math.NaN(), math.NaN()}

	tests := []struct {
		name  string
		times []float64
		concs []float64
		dose  float64
		opts  []pk.Option
		want  error
	}{
		{"length mismatch", ts[:3], cs, 100, nil, pk.ErrLengthMismatch},
		{"negative dose", ts, cs, -1, nil, pk.ErrBadDose},
		{"all NaN", []float64{0, 1, 2}, nan, 100, nil, pk.ErrAllNaN},
		{"unsorted times", []float64{0, 2, 1}, []float64{3, 2, 1}, 100, nil, pk.ErrNotSorted},
		{"peak at last sample", []float64{0, 1, 2}, []float64{1, 2, 3}, 100, nil, pk.ErrNoTerminalPhase},
		{"rising tail", []float64{0, 1, 2, 3}, []float64{10, 1, 2, 3}, 100, nil, pk.ErrNoElimination},
		{"zeros dropped from log fit", []float64{0, 1, 2}, []float64{5, 0, 0}, 100, nil, pk.ErrNoTerminalPhase},
		{"too few terminal points", ts, cs, 100, []pk.Option{pk.WithMinTerminalPoints(100)}, pk.ErrNoTerminalPhase},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := pk.Compute(tc.times, tc.concs, tc.dose, tc.opts...)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestWithMinTerminalPoints_Panics(t *testing.T) {
	assert.Panics(t, func() { pk.WithMinTerminalPoints(1) })
}

// TestAUC_RectangleVsTrapezoid checks rect - trap = dt·(c0 + clast)/2 on a uniform grid.
func TestAUC_RectangleVsTrapezoid(t *testing.T) {
	ts, cs := bolus()
	trap, err := pk.AUC(ts, cs)
	require.NoError(t, err)
	rect, err := pk.AUCRectangle(ts, cs)
	require.NoError(t, err)

	dt := ts[1] - ts[0]
	assert.InDelta(t, dt*(cs[0]+cs[len(cs)-1])/2, rect-trap, 1e-9)

	_, err = pk.AUCRectangle([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, pk.ErrTooFewPoints)
}

// TestAUC_LinearProfile is exact for the trapezoid rule.
func TestAUC_LinearProfile(t *testing.T) {
	auc, err := pk.AUC([]float64{0, 1, 3}, []float64{0, 2, 6})
	require.NoError(t, err)
	assert.InDelta(t, 9.0, auc, 1e-12)

	_, err = pk.AUC([]float64{0}, []float64{1})
	assert.ErrorIs(t, err, pk.ErrTooFewPoints)
}

func TestTerminalSlope(t *testing.T) {
	ts, cs := bolus()
	slope, intercept, r2, err := pk.TerminalSlope(ts, cs)
	require.NoError(t, err)
	assert.InDelta(t, -0.1, slope, 1e-9)
	assert.InDelta(t, math.Log(10), intercept, 1e-9)
	assert.InDelta(t, 1.0, r2, 1e-12)
}

func TestHalfLifeInterpolated(t *testing.T) {
	ts, cs := bolus()
	th, err := pk.HalfLifeInterpolated(ts, cs)
	require.NoError(t, err)
	assert.InDelta(t, math.Ln2/0.1, th, 0.01)

	// measured from the peak for an oral profile
	ts = grid.MustLinspace(0, 20, 2001)
	cs = structural.GammaVariateProfile(100, 6, 5, ts)
	th, err = pk.HalfLifeInterpolated(ts, cs)
	require.NoError(t, err)
	assert.Positive(t, th)

	_, err = pk.HalfLifeInterpolated([]float64{0, 1}, []float64{2, 1.5})
	assert.ErrorIs(t, err, pk.ErrNoHalfCrossing)
}

func TestFormat(t *testing.T) {
	m := pk.Metrics{Dose: 100, AUC: 11.25, Units: pk.DefaultUnits()}
	out := m.Format()
	assert.Contains(t, out, "dose      : 100.00 [mg]")
	assert.Contains(t, out, "auc       : 11.25 [mg/l*hr]")
	assert.Contains(t, out, "kel       : 0.00 [1/hr]")
	assert.Len(t, m.Rows(), 9)

	custom := pk.Units{Dose: "µg", Time: "min", Concentration: "µg/ml", Clearance: "ml/min", Volume: "ml"}
	ts, cs := bolus()
	m, err := pk.Compute(ts, cs, 100, pk.WithUnits(custom))
	require.NoError(t, err)
	assert.Contains(t, m.Format(), "[µg/ml*min]")
}
