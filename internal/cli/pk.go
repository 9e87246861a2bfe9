package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pkmodel/grid"
	"github.com/katalvlaran/pkmodel/kinetics"
	"github.com/katalvlaran/pkmodel/pk"
	"github.com/katalvlaran/pkmodel/plot"
	"github.com/katalvlaran/pkmodel/structural"
)

var errBadCSV = errors.New("csv: expected two numeric columns t,c")

// readSamples parses t,c rows. A first row that does not parse is taken as
// a header; empty or "nan" concentrations become NaN.
func readSamples(r io.Reader) (t, c []float64, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	for i, row := range rows {
		if len(row) < 2 {
			return nil, nil, fmt.Errorf("%w: line %d", errBadCSV, i+1)
		}
		tv, terr := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		cv, cerr := parseConc(row[1])
		if terr != nil || cerr != nil {
			if i == 0 {
				continue
			}
			return nil, nil, fmt.Errorf("%w: line %d", errBadCSV, i+1)
		}
		t = append(t, tv)
		c = append(c, cv)
	}

	return t, c, nil
}

func parseConc(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}

	return strconv.ParseFloat(s, 64)
}

func pkCmd(a *app) *cobra.Command {
	var (
		csvPath string
		dose    float64
		vol, cl float64
		end     float64
		points  int
		minTerm int
	)
	c := &cobra.Command{
		Use:   "pk",
		Short: "PK metrics (AUC, tmax, cmax, t½, kel, Vd, CL) from concentration–time data",
		Long: "Without --csv the data are sampled from the curve Dose/V·t·exp(-CL/V·t).\n" +
			"With --csv the file must hold t,c pairs; a header row is allowed.",
		RunE: func(c *cobra.Command, _ []string) error {
			var t, conc []float64
			if csvPath != "" {
				f, err := os.Open(csvPath)
				if err != nil {
					return err
				}
				t, conc, err = readSamples(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", csvPath, err)
				}
			} else {
				var err error
				t, err = grid.Linspace(0, end, points)
				if err != nil {
					return err
				}
				conc = structural.GammaVariateProfile(dose, vol, cl, t)
			}

			m, err := pk.Compute(t, conc, dose, pk.WithMinTerminalPoints(minTerm))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.OutOrStdout(), m.Format())
			fmt.Fprintf(c.OutOrStdout(), "%-10s: %.4f (%d points)\n", "r2", m.RSquared, m.TerminalCount)

			fig := &plot.Figure{Title: "PK metrics", XLabel: "time [hr]", YLabel: "concentration [mg/l]", YFromZero: true, Legend: true}
			fig.Add(plot.Series{Name: "data", X: t, Y: conc, Color: plot.Black, Dots: true, Width: 1})
			tail := []float64{m.Tmax, t[len(t)-1]}
			fit := []float64{math.Exp(m.Intercept - m.Kel*tail[0]), math.Exp(m.Intercept - m.Kel*tail[1])}
			fig.Add(plot.Series{Name: fmt.Sprintf("terminal fit, t1/2=%.2f [hr]", m.Thalf), X: tail, Y: fit, Color: plot.Color(3)})

			return a.save(c, "pk.png", fig)
		},
	}
	c.Flags().StringVar(&csvPath, "csv", "", "CSV file with t,c columns")
	c.Flags().Float64Var(&dose, "dose", 100, "dose [mg]")
	c.Flags().Float64Var(&vol, "volume", 6, "volume for the synthetic curve [l]")
	c.Flags().Float64Var(&cl, "clearance", 5, "clearance for the synthetic curve [l/hr]")
	c.Flags().Float64Var(&end, "end", 6, "last synthetic sample time [hr]")
	c.Flags().IntVar(&points, "points", 8, "synthetic samples")
	c.Flags().IntVar(&minTerm, "min-terminal", pk.DefaultMinTerminalPoints, "minimum samples in the terminal fit")

	return c
}

func kineticsCmd(a *app) *cobra.Command {
	var (
		k, vmax, km, amax float64
		hill              []float64
	)
	c := &cobra.Command{
		Use:   "kinetics",
		Short: "Mass-action, Michaelis–Menten and Hill rate laws",
		RunE: func(c *cobra.Command, _ []string) error {
			xs, err := grid.Linspace(0, amax, 201)
			if err != nil {
				return err
			}
			type law struct {
				name string
				mk   func() (kinetics.RateLaw, error)
			}
			laws := []law{
				{fmt.Sprintf("mass action k=%g", k), func() (kinetics.RateLaw, error) { return kinetics.MassAction(k) }},
				{fmt.Sprintf("Michaelis-Menten Km=%g", km), func() (kinetics.RateLaw, error) { return kinetics.MichaelisMenten(vmax, km) }},
			}
			for _, n := range hill {
				laws = append(laws, law{fmt.Sprintf("Hill n=%g", n), func() (kinetics.RateLaw, error) { return kinetics.Hill(vmax, km, n) }})
			}

			fig := &plot.Figure{Title: "Rate laws", XLabel: "A [mg/l]", YLabel: "v [mg/l/hr]", YFromZero: true, Legend: true}
			w := c.OutOrStdout()
			fmt.Fprintf(w, "%-28s  %s\n", "law", fmt.Sprintf("v(Km=%g)", km))
			for _, l := range laws {
				fn, err := l.mk()
				if err != nil {
					return err
				}
				fig.Add(plot.Series{Name: l.name, X: xs, Y: kinetics.Evaluate(fn, xs)})
				fmt.Fprintf(w, "%-28s  %.3f\n", l.name, fn(km))
			}

			return a.save(c, "kinetics.png", fig)
		},
	}
	c.Flags().Float64Var(&k, "k", 0.1, "mass-action rate constant [1/hr]")
	c.Flags().Float64Var(&vmax, "vmax", 1, "maximal rate [mg/l/hr]")
	c.Flags().Float64Var(&km, "km", 2, "half-saturation constant [mg/l]")
	c.Flags().Float64Var(&amax, "amax", 10, "largest concentration plotted [mg/l]")
	c.Flags().Float64SliceVar(&hill, "hill", []float64{2, 4}, "Hill coefficients")

	return c
}
