package compare_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pkmodel/compare"
	"github.com/katalvlaran/pkmodel/grid"
)

func TestPointwise(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{1, 2, 5, 4}

	m, err := compare.MaxAbsError(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2.0, m)

	r, err := compare.RMSE(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12) // sqrt(4/4)

	_, err = compare.RMSE(a, b[:2])
	assert.ErrorIs(t, err, compare.ErrLengthMismatch)
	_, err = compare.MaxAbsError(nil, nil)
	assert.ErrorIs(t, err, compare.ErrEmpty)
}

// TestWarp_Identical checks zero distance along the diagonal.
func TestWarp_Identical(t *testing.T) {
	a := []float64{0, 1, 2}
	al, err := compare.Warp(a, a, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, al.Distance)
	assert.Equal(t, []compare.Pair{{0, 0}, {1, 1}, {2, 2}}, al.Path)
	assert.Equal(t, 0.0, al.Shift(0.5))
}

// TestWarp_Stretch matches a repeated sample without cost.
func TestWarp_Stretch(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{1, 2, 2, 3}
	al, err := compare.Warp(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, al.Distance)
	assert.Len(t, al.Path, 4)
	assert.Equal(t, compare.Pair{I: 0, J: 0}, al.Path[0])
	assert.Equal(t, compare.Pair{I: 2, J: 3}, al.Path[3])

	d, err := compare.Distance(a, b, nil)
	require.NoError(t, err)
	assert.Equal(t, al.Distance, d)

	// a slope penalty charges the single non-diagonal step
	o := compare.Options{SlopePenalty: 0.5}
	d, err = compare.Distance(a, b, &o)
	require.NoError(t, err)
	assert.Equal(t, 0.5, d)
}

// TestWarp_LagShift recovers a delay of ten samples between absorption-like curves.
func TestWarp_LagShift(t *testing.T) {
	times := grid.MustLinspace(0, 20, 201)
	dt := times[1] - times[0]
	a := make([]float64, len(times))
	b := make([]float64, len(times))
	for i, tt := range times {
		a[i] = tt * math.Exp(-tt)
		if i >= 10 {
			b[i] = times[i-10] * math.Exp(-times[i-10])
		}
	}

	al, err := compare.Warp(a, b, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, al.Shift(dt), dt/2)
	assert.InDelta(t, -1.0, (compare.Alignment{Path: swap(al.Path)}).Shift(dt), dt/2)
}

// TestWarp_ShiftAboveTruncatedTail recovers a delay that pushes part of
// the second curve past the end of the window.
func TestWarp_ShiftAboveTruncatedTail(t *testing.T) {
	times := grid.MustLinspace(0, 10, 101)
	dt := times[1] - times[0]
	const lag = 40
	a := make([]float64, len(times))
	b := make([]float64, len(times))
	for i, tt := range times {
		a[i] = tt * math.Exp(-tt)
		if i >= lag {
			b[i] = times[i-lag] * math.Exp(-times[i-lag])
		}
	}

	al, err := compare.Warp(a, b, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, al.ShiftAbove(a, b, 0.05, dt), dt/2)

	// identical curves have no shift at any floor
	same, err := compare.Warp(a, a, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, same.ShiftAbove(a, a, 0.05, dt))
	// a floor above both peaks falls back to the plain median
	assert.Equal(t, al.Shift(dt), al.ShiftAbove(a, b, 2, dt))
}

func TestWarp_WindowAndErrors(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{1, 5}

	_, err := compare.Warp(a, b, &compare.Options{Window: 1})
	assert.ErrorIs(t, err, compare.ErrUnreachable)
	_, err = compare.Distance(a, b, &compare.Options{Window: 1})
	assert.ErrorIs(t, err, compare.ErrUnreachable)

	_, err = compare.Warp(a, b, &compare.Options{Window: 3})
	assert.NoError(t, err)

	_, err = compare.Warp(a, nil, nil)
	assert.ErrorIs(t, err, compare.ErrEmpty)
	_, err = compare.Distance(a, b, &compare.Options{Window: -1})
	assert.ErrorIs(t, err, compare.ErrBadOptions)
}

func swap(p []compare.Pair) []compare.Pair {
	out := make([]compare.Pair, len(p))
	for k, x := range p {
		out[k] = compare.Pair{I: x.J, J: x.I}
	}
	return out
}
