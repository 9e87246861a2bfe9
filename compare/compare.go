package compare

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmpty indicates an empty profile.
	ErrEmpty = errors.New("compare: profiles must be non-empty")

	// ErrLengthMismatch indicates pointwise comparison of different-length profiles.
	ErrLengthMismatch = errors.New("compare: profiles must have equal length")

	// ErrBadOptions indicates a negative window or penalty.
	ErrBadOptions = errors.New("compare: window and slope penalty must be >= 0")

	// ErrUnreachable indicates a band too narrow to connect both profile ends.
	ErrUnreachable = errors.New("compare: window too narrow for the length difference")
)

// MaxAbsError returns max |a_i - b_i|.
func MaxAbsError(a, b []float64) (float64, error) {
	if err := sameGrid(a, b); err != nil {
		return 0, err
	}

	return floats.Distance(a, b, math.Inf(1)), nil
}

// RMSE returns the root-mean-square difference of a and b.
func RMSE(a, b []float64) (float64, error) {
	if err := sameGrid(a, b); err != nil {
		return 0, err
	}

	return floats.Distance(a, b, 2) / math.Sqrt(float64(len(a))), nil
}

func sameGrid(a, b []float64) error {
	if len(a) == 0 || len(b) == 0 {
		return ErrEmpty
	}
	if len(a) != len(b) {
		return ErrLengthMismatch
	}

	return nil
}

// Options configures Warp and Distance.
type Options struct {
	Window       int     // Sakoe–Chiba half-width in samples; 0 means unbounded
	SlopePenalty float64 // added to every non-diagonal step
}

// DefaultOptions returns an unbounded band without slope penalty.
func DefaultOptions() Options { return Options{} }

// Pair links sample I of the first profile with sample J of the second.
type Pair struct{ I, J int }

// Alignment is the outcome of Warp.
type Alignment struct {
	Distance float64
	Path     []Pair // from (0,0) to (n-1,m-1)
}

// Shift returns the median of (J-I)·dt along the path: how much later the
// second profile runs than the first on a grid with spacing dt.
func (al Alignment) Shift(dt float64) float64 {
	d := make([]float64, len(al.Path))
	for k, p := range al.Path {
		d[k] = float64(p.J - p.I)
	}

	return median(d) * dt
}

// ShiftAbove is Shift restricted to the pairs where both a[I] and b[J]
// exceed frac times the larger of the two peaks. Flat baselines and a
// curve cut off at the end of the window then no longer pull the median
// towards zero. a and b must be the series the path was computed from.
func (al Alignment) ShiftAbove(a, b []float64, frac, dt float64) float64 {
	floor := frac * math.Max(floats.Max(a), floats.Max(b))
	d := make([]float64, 0, len(al.Path))
	for _, p := range al.Path {
		if a[p.I] > floor && b[p.J] > floor {
			d = append(d, float64(p.J-p.I))
		}
	}
	if len(d) == 0 {
		return al.Shift(dt)
	}

	return median(d) * dt
}

func median(d []float64) float64 {
	if len(d) == 0 {
		return 0
	}
	sort.Float64s(d)
	mid := len(d) / 2
	if len(d)%2 == 0 {
		return (d[mid-1] + d[mid]) / 2
	}

	return d[mid]
}

const (
	stepDiag int8 = iota
	stepUp        // from (i-1, j)
	stepLeft      // from (i, j-1)
)

// Warp computes the DTW distance and the optimal warping path.
func Warp(a, b []float64, opts *Options) (Alignment, error) {
	o, err := resolve(a, b, opts)
	if err != nil {
		return Alignment{}, err
	}
	n, m := len(a), len(b)
	inf := math.Inf(1)

	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	steps := make([]int8, n*m)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}
	for i := 1; i <= n; i++ {
		curr[0] = inf
		for j := 1; j <= m; j++ {
			if !o.inBand(i, j) {
				curr[j] = inf
				continue
			}
			best, step := prev[j-1], stepDiag
			if up := prev[j] + o.SlopePenalty; up < best {
				best, step = up, stepUp
			}
			if left := curr[j-1] + o.SlopePenalty; left < best {
				best, step = left, stepLeft
			}
			curr[j] = math.Abs(a[i-1]-b[j-1]) + best
			steps[(i-1)*m+j-1] = step
		}
		prev, curr = curr, prev
	}
	if math.IsInf(prev[m], 1) {
		return Alignment{}, ErrUnreachable
	}

	path := make([]Pair, 0, n+m)
	i, j := n-1, m-1
	for {
		path = append(path, Pair{I: i, J: j})
		if i == 0 && j == 0 {
			break
		}
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			switch steps[i*m+j] {
			case stepUp:
				i--
			case stepLeft:
				j--
			default:
				i--
				j--
			}
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}

	return Alignment{Distance: prev[m], Path: path}, nil
}

// Distance computes only the DTW distance, keeping two rows in memory.
func Distance(a, b []float64, opts *Options) (float64, error) {
	o, err := resolve(a, b, opts)
	if err != nil {
		return 0, err
	}
	m := len(b)
	inf := math.Inf(1)

	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = inf
		for j := 1; j <= m; j++ {
			if !o.inBand(i, j) {
				curr[j] = inf
				continue
			}
			best := math.Min(prev[j-1], math.Min(prev[j], curr[j-1])+o.SlopePenalty)
			curr[j] = math.Abs(a[i-1]-b[j-1]) + best
		}
		prev, curr = curr, prev
	}
	if math.IsInf(prev[m], 1) {
		return 0, ErrUnreachable
	}

	return prev[m], nil
}

func resolve(a, b []float64, opts *Options) (Options, error) {
	if len(a) == 0 || len(b) == 0 {
		return Options{}, ErrEmpty
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Window < 0 || o.SlopePenalty < 0 || math.IsNaN(o.SlopePenalty) {
		return Options{}, ErrBadOptions
	}

	return o, nil
}

func (o Options) inBand(i, j int) bool {
	if o.Window == 0 {
		return true
	}
	d := i - j
	if d < 0 {
		d = -d
	}

	return d <= o.Window
}
