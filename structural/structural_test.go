package structural_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/pkmodel/grid"
	"github.com/katalvlaran/pkmodel/structural"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_WarfarinDerived(t *testing.T) {
	p := structural.Warfarin()
	require.NoError(t, p.Validate())

	assert.InDelta(t, 0.01, p.Kel(), 1e-15)
	assert.InDelta(t, 10.0, p.C0(), 1e-15)
	assert.InDelta(t, math.Ln2/0.01, p.HalfLife(), 1e-9)
	assert.InDelta(t, 1000.0, p.AUC(), 1e-9)
}

// TestConcentration_HalvesEveryHalfLife checks the defining property of linear elimination.
func TestConcentration_HalvesEveryHalfLife(t *testing.T) {
	for _, p := range []structural.Params{structural.Warfarin(), structural.Aspirin()} {
		th := p.HalfLife()
		for _, t0 := range []float64{0, 0.3 * th, 2 * th} {
			assert.InEpsilon(t, p.Concentration(t0)/2, p.Concentration(t0+th), 1e-12)
		}
	}
}

func TestProfile_MatchesConcentration(t *testing.T) {
	p := structural.Aspirin()
	times := grid.MustLinspace(0, 6, 200)
	c := p.Profile(times)
	require.Len(t, c, 200)
	for i, tt := range times {
		assert.Equal(t, p.Concentration(tt), c[i])
	}
	assert.Less(t, c[199], 1e-19, "aspirin is gone after 6 hours")
}

func TestValidate_Rejects(t *testing.T) {
	cases := []structural.Params{
		{Dose: 100, V: 0, CL: 1},
		{Dose: 100, V: -1, CL: 1},
		{Dose: -1, V: 10, CL: 1},
		{Dose: 100, V: 10, CL: -0.1},
		{Dose: math.NaN(), V: 10, CL: 1},
		{Dose: 100, V: math.Inf(1), CL: 1},
	}
	for _, p := range cases {
		assert.ErrorIs(t, p.Validate(), structural.ErrInvalidParams, "%+v", p)
	}
}

func TestWithers_CopyOnly(t *testing.T) {
	base := structural.Warfarin()
	p := base.WithDose(50).WithVolume(20).WithClearance(1)
	assert.Equal(t, structural.Params{Dose: 50, V: 20, CL: 1}, p)
	assert.Equal(t, structural.Warfarin(), base)
}

func TestBateman(t *testing.T) {
	assert.Equal(t, 0.0, structural.Bateman(10, 1, 0.5, 0))
	assert.Equal(t, 0.0, structural.Bateman(10, 0, 0.5, 3))

	// ka == ke limit is continuous with the general form
	lim := structural.Bateman(10, 1, 1, 2)
	near := structural.Bateman(10, 1, 1+1e-7, 2)
	assert.InDelta(t, lim, near, 1e-5)
	assert.InDelta(t, 10*2*math.Exp(-2), lim, 1e-12)
}

func TestGammaVariate_PeakAtMeanResidence(t *testing.T) {
	// d/dt [t·exp(-k t)] = 0 at t = 1/k
	const dose, v, cl = 100.0, 6.0, 5.0
	tpeak := v / cl
	peak := structural.GammaVariate(dose, v, cl, tpeak)
	assert.Greater(t, peak, structural.GammaVariate(dose, v, cl, tpeak*0.9))
	assert.Greater(t, peak, structural.GammaVariate(dose, v, cl, tpeak*1.1))

	prof := structural.GammaVariateProfile(dose, v, cl, []float64{0, tpeak})
	assert.Equal(t, []float64{0, peak}, prof)
}

// TestEulerError_Converges checks first-order convergence of explicit Euler.
func TestEulerError_Converges(t *testing.T) {
	p := structural.Params{Dose: 102, V: 10.14, CL: 0.13}
	maxErr := func(r structural.EulerResult) float64 {
		m := 0.0
		for _, e := range r.AbsError {
			m = math.Max(m, e)
		}
		return m
	}

	rs, err := structural.EulerStudy(p, 240, []int{10, 100, 1000})
	require.NoError(t, err)
	require.Len(t, rs, 3)
	assert.Greater(t, maxErr(rs[0]), maxErr(rs[1]))
	assert.Greater(t, maxErr(rs[1]), maxErr(rs[2]))
	// tenfold more points, roughly tenfold less error
	assert.InDelta(t, 10, maxErr(rs[1])/maxErr(rs[2]), 1.5)

	assert.Equal(t, 0.0, rs[0].AbsError[0], "initial value is exact")
	assert.InDelta(t, rs[2].SumError, sum(rs[2].AbsError), 1e-12)
}

func TestEulerError_Rejects(t *testing.T) {
	_, err := structural.EulerError(structural.Warfarin(), 240, 1)
	assert.ErrorIs(t, err, structural.ErrTooFewSteps)

	_, err = structural.EulerError(structural.Params{V: 0}, 240, 10)
	assert.ErrorIs(t, err, structural.ErrInvalidParams)
}

func sum(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s
}
