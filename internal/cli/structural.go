package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pkmodel/grid"
	"github.com/katalvlaran/pkmodel/pk"
	"github.com/katalvlaran/pkmodel/plot"
	"github.com/katalvlaran/pkmodel/scan"
	"github.com/katalvlaran/pkmodel/structural"
)

// paramFlags overrides the scenario's structural parameters when set.
type paramFlags struct {
	dose, volume, clearance float64
}

func (pf *paramFlags) register(c *cobra.Command) {
	c.Flags().Float64Var(&pf.dose, "dose", 0, "dose [mg] (default from scenario)")
	c.Flags().Float64Var(&pf.volume, "volume", 0, "volume of distribution [l] (default from scenario)")
	c.Flags().Float64Var(&pf.clearance, "clearance", 0, "clearance [l/hr] (default from scenario)")
}

func (pf *paramFlags) apply(c *cobra.Command, p structural.Params) (structural.Params, error) {
	if c.Flags().Changed("dose") {
		p.Dose = pf.dose
	}
	if c.Flags().Changed("volume") {
		p.V = pf.volume
	}
	if c.Flags().Changed("clearance") {
		p.CL = pf.clearance
	}

	return p, p.Validate()
}

func (a *app) times() ([]float64, error) {
	return grid.Linspace(0, a.sc.End, a.sc.Points)
}

func structuralCmd(a *app) *cobra.Command {
	var pf paramFlags
	c := &cobra.Command{
		Use:   "structural",
		Short: "Analytic one-compartment profile C(t) = Dose/V·exp(-CL/V·t)",
		RunE: func(c *cobra.Command, _ []string) error {
			p, err := pf.apply(c, a.sc.Structural)
			if err != nil {
				return err
			}
			t, err := a.times()
			if err != nil {
				return err
			}

			drug := a.sc.Drug
			fig := &plot.Figure{
				Title:     fmt.Sprintf("%s: Dose=%g [mg], V=%g [l], CL=%g [l/hr]", drug, p.Dose, p.V, p.CL),
				XLabel:    "time [hr]",
				YLabel:    drug + " [mg/l]",
				YFromZero: true,
				Legend:    true,
			}
			fig.Add(plot.Series{Name: drug, X: t, Y: p.Profile(t), Color: plot.Black})
			if err := a.save(c, "structural.png", fig); err != nil {
				return err
			}

			printRows(c.OutOrStdout(), []pk.Row{
				{Key: "dose", Value: p.Dose, Unit: "mg"},
				{Key: "c0", Value: p.C0(), Unit: "mg/l"},
				{Key: "kel", Value: p.Kel(), Unit: "1/hr"},
				{Key: "thalf", Value: p.HalfLife(), Unit: "hr"},
				{Key: "auc", Value: p.AUC(), Unit: "mg/l*hr"},
			})

			return nil
		},
	}
	pf.register(c)

	return c
}

func paramScanCmd(a *app) *cobra.Command {
	var n int
	c := &cobra.Command{
		Use:   "scan",
		Short: "Dose, volume and clearance dependency of the one-compartment profile",
		RunE: func(c *cobra.Command, _ []string) error {
			if n < 1 {
				return fmt.Errorf("--num must be >= 1, got %d", n)
			}
			t, err := a.times()
			if err != nil {
				return err
			}
			p := a.sc.Structural
			ctx := c.Context()
			drug := a.sc.Drug

			type job struct {
				file, title string
				run         func() ([]scan.Curve, error)
			}
			jobs := []job{
				{"scan_dose.png", "Dose dependency", func() ([]scan.Curve, error) {
					return scan.Dose(ctx, p, grid.MustLinspace(0, p.Dose, n+1), t, a.scanOpts()...)
				}},
				{"scan_volume.png", "Volume dependency", func() ([]scan.Curve, error) {
					return scan.Volume(ctx, p, grid.MustLinspace(p.V, 10*p.V, n), t, a.scanOpts()...)
				}},
				{"scan_clearance.png", "Clearance dependency", func() ([]scan.Curve, error) {
					return scan.Clearance(ctx, p, grid.MustLinspace(p.CL, 30*p.CL, n), t, a.scanOpts()...)
				}},
			}
			for _, j := range jobs {
				curves, err := j.run()
				if err != nil {
					return err
				}
				fig := &plot.Figure{
					Title:     j.title,
					XLabel:    "time [day]",
					YLabel:    drug + " [mg/l]",
					Series:    curveSeries(curves, 24),
					YFromZero: true,
					Legend:    true,
				}
				if err := a.save(c, j.file, fig); err != nil {
					return err
				}
			}

			return nil
		},
	}
	c.Flags().IntVarP(&n, "num", "n", 5, "values per scan")

	return c
}

func aucScanCmd(a *app) *cobra.Command {
	var (
		n    int
		rule string
	)
	c := &cobra.Command{
		Use:   "auc-scan",
		Short: "AUC as a function of dose",
		RunE: func(c *cobra.Command, _ []string) error {
			var r scan.Rule
			switch rule {
			case "trapezoid":
				r = scan.Trapezoid
			case "rectangle":
				r = scan.Rectangle
			default:
				return fmt.Errorf("unsupported rule %q (expected trapezoid|rectangle)", rule)
			}
			t, err := a.times()
			if err != nil {
				return err
			}
			p := a.sc.Structural
			doses, err := grid.Linspace(0, p.Dose, n)
			if err != nil {
				return err
			}

			pts, err := scan.AUC(c.Context(), p, doses, t, r, a.scanOpts()...)
			if err != nil {
				return err
			}

			curves := &plot.Figure{Title: "AUC Dose dependency", XLabel: "time [hr]", YLabel: "concentration [mg/l]", YFromZero: true}
			aucs := make([]float64, len(pts))
			for i, pt := range pts {
				curves.Add(plot.Series{X: pt.Times, Y: pt.Y})
				aucs[i] = pt.AUC
			}
			if err := a.save(c, "auc_curves.png", curves); err != nil {
				return err
			}

			fig := &plot.Figure{Title: "AUC Dose dependency", XLabel: "Dose [mg]", YLabel: "AUC [mg/l*hr]", YFromZero: true, Legend: true}
			fig.Add(plot.Series{Name: "AUC", X: doses, Y: aucs, Color: plot.Black, Dots: true})
			if err := a.save(c, "auc_dose.png", fig); err != nil {
				return err
			}

			w := c.OutOrStdout()
			fmt.Fprintf(w, "%-10s  %s\n", "dose [mg]", "AUC [mg/l*hr]")
			for _, pt := range pts {
				fmt.Fprintf(w, "%-10.2f  %.2f\n", pt.Value, pt.AUC)
			}

			return nil
		},
	}
	c.Flags().IntVarP(&n, "num", "n", 20, "number of doses between 0 and the scenario dose")
	c.Flags().StringVar(&rule, "rule", "rectangle", "quadrature: rectangle|trapezoid")

	return c
}

func eulerCmd(a *app) *cobra.Command {
	var (
		from, to, show int
	)
	c := &cobra.Command{
		Use:   "euler",
		Short: "Explicit Euler against the analytic one-compartment solution",
		RunE: func(c *cobra.Command, _ []string) error {
			if from < 2 || to < from {
				return fmt.Errorf("need 2 <= --from <= --to, got %d..%d", from, to)
			}
			ns := make([]int, 0, to-from+1)
			for n := from; n <= to; n++ {
				ns = append(ns, n)
			}
			p := a.sc.Structural
			study, err := structural.EulerStudy(p, a.sc.End, ns)
			if err != nil {
				return err
			}

			steps := make([]float64, len(study))
			sums := make([]float64, len(study))
			w := c.OutOrStdout()
			fmt.Fprintf(w, "%-6s  %s\n", "N", "sum |error| [mg/l]")
			for i, r := range study {
				steps[i] = float64(r.N)
				sums[i] = r.SumError
				fmt.Fprintf(w, "%-6d  %.4f\n", r.N, r.SumError)
			}
			errFig := &plot.Figure{Title: "Euler error", XLabel: "grid points N", YLabel: "sum |error| [mg/l]", YFromZero: true}
			errFig.Add(plot.Series{Name: "error", X: steps, Y: sums, Color: plot.Black, Dots: true})
			if err := a.save(c, "euler_error.png", errFig); err != nil {
				return err
			}

			one, err := structural.EulerError(p, a.sc.End, show)
			if err != nil {
				return err
			}
			fine, err := a.times()
			if err != nil {
				return err
			}
			fig := &plot.Figure{
				Title:  fmt.Sprintf("Euler method, N=%d", show),
				XLabel: "time t [hr]",
				YLabel: "C(t) [mg/l]",
				Legend: true,
			}
			fig.Add(plot.Series{Name: "Euler method", X: one.Times, Y: one.Euler, Color: plot.Black, Dots: true}).
				Add(plot.Series{Name: "analytical solution", X: fine, Y: p.Profile(fine), Color: plot.Color(3)})

			return a.save(c, "euler.png", fig)
		},
	}
	c.Flags().IntVar(&from, "from", 2, "smallest grid size")
	c.Flags().IntVar(&to, "to", 19, "largest grid size")
	c.Flags().IntVar(&show, "show", 10, "grid size plotted against the analytic curve")

	return c
}
