// Package plot renders line figures to PNG with go-chart.
//
// A Figure mirrors a single matplotlib axes: a title, axis labels, any
// number of line series, optional horizontal reference lines and a legend.
package plot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrNoSeries indicates a figure without any series to draw.
	ErrNoSeries = errors.New("plot: figure has no series")

	// ErrLengthMismatch indicates a series whose X and Y lengths differ or are empty.
	ErrLengthMismatch = errors.New("plot: series X and Y must be non-empty and of equal length")
)

// Default figure size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// palette follows matplotlib's tab10 cycle.
var palette = []string{
	"1f77b4", "ff7f0e", "2ca02c", "d62728", "9467bd",
	"8c564b", "e377c2", "7f7f7f", "bcbd22", "17becf",
}

// Color returns the i-th palette color, cycling.
func Color(i int) drawing.Color {
	if i < 0 {
		i = -i
	}

	return drawing.ColorFromHex(palette[i%len(palette)])
}

// Black is used for reference curves such as AUC-vs-dose.
var Black = drawing.ColorBlack

// Series is one line.
type Series struct {
	Name  string
	X, Y  []float64
	Color drawing.Color // zero value picks the palette color
	Width float64       // stroke width, 0 means 2
	Dots  bool          // draw markers at the samples
}

// Reference is a dashed horizontal line, e.g. MEC or MTC.
type Reference struct {
	Name  string
	Y     float64
	Color drawing.Color
}

// Figure is a single-axes line plot.
type Figure struct {
	Title     string
	XLabel    string
	YLabel    string
	Series    []Series
	HLines    []Reference
	Width     int
	Height    int
	YFromZero bool // pin the lower y limit at 0
	Legend    bool
}

// Add appends a series and returns the figure for chaining.
func (f *Figure) Add(s Series) *Figure {
	f.Series = append(f.Series, s)

	return f
}

// Render writes the figure as PNG to w.
func (f *Figure) Render(w io.Writer) error {
	if len(f.Series) == 0 {
		return ErrNoSeries
	}
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for i, s := range f.Series {
		if len(s.X) == 0 || len(s.X) != len(s.Y) {
			return fmt.Errorf("%w: series %d %q", ErrLengthMismatch, i, s.Name)
		}
		xmin, xmax = extend(xmin, xmax, s.X)
		ymin, ymax = extend(ymin, ymax, s.Y)
	}
	for _, h := range f.HLines {
		ymin, ymax = math.Min(ymin, h.Y), math.Max(ymax, h.Y)
	}
	if f.YFromZero {
		ymin = 0
	}
	xmin, xmax = widen(xmin, xmax)
	ymin, ymax = widen(ymin, ymax)

	series := make([]chart.Series, 0, len(f.Series)+len(f.HLines))
	for i, s := range f.Series {
		c := s.Color
		if c.IsZero() {
			c = Color(i)
		}
		width := s.Width
		if width == 0 {
			width = 2
		}
		style := chart.Style{StrokeColor: c, StrokeWidth: width}
		if s.Dots {
			style.DotColor = c
			style.DotWidth = width + 2
		}
		series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: s.X, YValues: s.Y, Style: style})
	}
	for _, h := range f.HLines {
		c := h.Color
		if c.IsZero() {
			c = drawing.ColorBlack
		}
		series = append(series, chart.ContinuousSeries{
			Name:    h.Name,
			XValues: []float64{xmin, xmax},
			YValues: []float64{h.Y, h.Y},
			Style:   chart.Style{StrokeColor: c, StrokeWidth: 1.5, StrokeDashArray: []float64{6, 4}},
		})
	}

	width, height := f.Width, f.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	graph := chart.Chart{
		Title:  f.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  f.XLabel,
			Style: chart.Style{FontSize: 10},
			Range: &chart.ContinuousRange{Min: xmin, Max: xmax},
		},
		YAxis: chart.YAxis{
			Name:  f.YLabel,
			Style: chart.Style{FontSize: 10},
			Range: &chart.ContinuousRange{Min: ymin, Max: ymax},
		},
		Series: series,
	}
	if f.Legend {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	return graph.Render(chart.PNG, w)
}

// Save renders the figure to path, creating parent directories.
func (f *Figure) Save(path string) (err error) {
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return f.Render(out)
}

// extend grows [lo, hi] to cover the finite values of xs.
func extend(lo, hi float64, xs []float64) (float64, float64) {
	for _, v := range xs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}

	return lo, hi
}

// widen turns an empty or degenerate range into a drawable one.
func widen(lo, hi float64) (float64, float64) {
	switch {
	case math.IsInf(lo, 1) || math.IsInf(hi, -1):
		return 0, 1
	case hi == lo:
		d := math.Max(math.Abs(lo)*0.05, 0.5)
		if lo == 0 {
			return 0, 1
		}
		return lo - d, hi + d
	}

	return lo, hi
}
