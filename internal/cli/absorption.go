package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pkmodel/compare"
	"github.com/katalvlaran/pkmodel/compartment"
	"github.com/katalvlaran/pkmodel/grid"
	"github.com/katalvlaran/pkmodel/ode"
	"github.com/katalvlaran/pkmodel/plot"
	"github.com/katalvlaran/pkmodel/scan"
)

func odeCmd(a *app) *cobra.Command {
	var method string
	c := &cobra.Command{
		Use:   "ode",
		Short: "Numerical one-compartment solution against the analytic curve",
		RunE: func(c *cobra.Command, _ []string) error {
			opts := a.sc.Solver
			if c.Flags().Changed("method") {
				m, err := ode.ParseMethod(method)
				if err != nil {
					return err
				}
				opts.Method = m
			}
			p := a.sc.Structural
			m, err := compartment.NewOneCompartment(p.CL, p.V)
			if err != nil {
				return err
			}
			t, err := a.times()
			if err != nil {
				return err
			}
			sol, err := compartment.Simulate(a.model(m), p.Dose, t, &opts)
			if err != nil {
				return err
			}

			num := sol.Column(0)
			exact := p.Profile(t)
			maxErr, err := compare.MaxAbsError(num, exact)
			if err != nil {
				return err
			}
			rmse, err := compare.RMSE(num, exact)
			if err != nil {
				return err
			}

			fig := &plot.Figure{Title: a.sc.Drug, XLabel: "time [hr]", YLabel: a.sc.Drug + " [mg/l]", YFromZero: true, Legend: true}
			fig.Add(plot.Series{Name: "analytical", X: t, Y: exact, Color: plot.Color(3)}).
				Add(plot.Series{Name: opts.Method.String(), X: t, Y: num, Color: plot.Black, Width: 1, Dots: true})
			if err := a.save(c, "ode.png", fig); err != nil {
				return err
			}

			w := c.OutOrStdout()
			fmt.Fprintf(w, "%-10s: %s\n", "method", opts.Method)
			fmt.Fprintf(w, "%-10s: %s\n", "rhs", a.rhs())
			fmt.Fprintf(w, "%-10s: %d\n", "steps", sol.Steps)
			fmt.Fprintf(w, "%-10s: %.3g [mg/l]\n", "max error", maxErr)
			fmt.Fprintf(w, "%-10s: %.3g [mg/l]\n", "rmse", rmse)

			return nil
		},
	}
	c.Flags().StringVar(&method, "method", "dopri5", "integrator: dopri5|rk4|euler")

	return c
}

// statesFigure plots every named state of sol.
func statesFigure(title string, sol *ode.Solution) *plot.Figure {
	fig := &plot.Figure{Title: title, XLabel: "time [hr]", YLabel: "amount [mg]", YFromZero: true, Legend: true}
	for j, name := range sol.Names {
		fig.Add(plot.Series{Name: name, X: sol.Times, Y: sol.Column(j), Color: plot.Color(j)})
	}

	return fig
}

// peak returns the time and value of the maximum of y.
func peak(t, y []float64) (float64, float64) {
	im := 0
	for i := range y {
		if y[i] > y[im] {
			im = i
		}
	}

	return t[im], y[im]
}

func printPeaks(c *cobra.Command, head string, curves []scan.Curve) {
	w := c.OutOrStdout()
	fmt.Fprintf(w, "%-12s  %-10s  %s\n", head, "tmax [hr]", "max A_central [mg]")
	for _, cv := range curves {
		tm, ym := peak(cv.Times, cv.Y)
		fmt.Fprintf(w, "%-12s  %-10.2f  %.3f\n", cv.Label, tm, ym)
	}
}

func absorptionCmd(a *app) *cobra.Command {
	var (
		samples      int
		kaMin, kaMax float64
	)
	c := &cobra.Command{
		Use:   "absorption",
		Short: "First-order absorption from a tablet and an absorption-rate scan",
		RunE: func(c *cobra.Command, _ []string) error {
			ab := a.sc.Absorption
			m, err := compartment.NewFirstOrderAbsorption(ab.Ka, ab.Ke)
			if err != nil {
				return err
			}
			t, err := a.times()
			if err != nil {
				return err
			}
			sol, err := compartment.Simulate(a.model(m), ab.Dose, t, &a.sc.Solver)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("First order absorption: ka=%g, ke=%g", ab.Ka, ab.Ke)
			if err := a.save(c, "absorption.png", statesFigure(title, sol)); err != nil {
				return err
			}

			kas, err := grid.Linspace(kaMin, kaMax, samples)
			if err != nil {
				return err
			}
			trs, err := scan.Models(c.Context(), func(ka float64) (compartment.Model, error) {
				return compartment.NewFirstOrderAbsorption(ka, ab.Ke)
			}, kas, ab.Dose, t, a.scanOpts()...)
			if err != nil {
				return err
			}
			curves, err := scan.Curves(trs, compartment.Central, "ka=%.2f")
			if err != nil {
				return err
			}
			fig := &plot.Figure{Title: "Absorption rate scan", XLabel: "time [hr]", YLabel: "A_central [mg]", Series: curveSeries(curves, 1), YFromZero: true, Legend: true}
			if err := a.save(c, "absorption_ka.png", fig); err != nil {
				return err
			}
			printPeaks(c, "ka [1/hr]", curves)

			return nil
		},
	}
	c.Flags().IntVarP(&samples, "num", "n", 5, "ka values in the scan")
	c.Flags().Float64Var(&kaMin, "ka-min", 0.1, "smallest ka [1/hr]")
	c.Flags().Float64Var(&kaMax, "ka-max", 2.0, "largest ka [1/hr]")

	return c
}

// shiftFloor drops path pairs below 5% of the peak from the shift estimate.
const shiftFloor = 0.05

func lagCmd(a *app) *cobra.Command {
	var samples int
	c := &cobra.Command{
		Use:   "lag",
		Short: "Absorption with a lag time and a lag-time scan",
		RunE: func(c *cobra.Command, _ []string) error {
			ab := a.sc.Absorption
			t, err := a.times()
			if err != nil {
				return err
			}
			hi := ab.Lag
			if hi == 0 {
				hi = 2
			}
			lags, err := grid.Linspace(0, hi, samples)
			if err != nil {
				return err
			}
			trs, err := scan.Models(c.Context(), func(lag float64) (compartment.Model, error) {
				return compartment.NewLaggedAbsorption(ab.Ka, ab.Ke, lag)
			}, lags, ab.Dose, t, a.scanOpts()...)
			if err != nil {
				return err
			}
			curves, err := scan.Curves(trs, compartment.Central, "lag=%.1f [hr]")
			if err != nil {
				return err
			}
			fig := &plot.Figure{Title: "Lag time", XLabel: "time [hr]", YLabel: "A_central [mg]", Series: curveSeries(curves, 1), YFromZero: true, Legend: true}
			if err := a.save(c, "lag.png", fig); err != nil {
				return err
			}
			printPeaks(c, "lag [hr]", curves)

			// the warping shift against the lag-free curve estimates the delay
			w := c.OutOrStdout()
			dt := t[1] - t[0]
			fmt.Fprintf(w, "%-12s  %s\n", "lag [hr]", "dtw shift [hr]")
			for _, cv := range curves {
				al, err := compare.Warp(curves[0].Y, cv.Y, nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%-12s  %.2f\n", cv.Label, al.ShiftAbove(curves[0].Y, cv.Y, shiftFloor, dt))
			}

			return nil
		},
	}
	c.Flags().IntVarP(&samples, "num", "n", 5, "lag values between 0 and the scenario lag (2 hr when it is 0)")

	return c
}

func chainCmd(a *app) *cobra.Command {
	var (
		samples      int
		kaMin, kaMax float64
	)
	c := &cobra.Command{
		Use:   "chain",
		Short: "Tablet absorption through a chain of transit compartments",
		Long: "Simulates the scenario's transit chain, then scans ka between --ka-min and\n" +
			"--ka-max at fixed N (chain_ka.png) and N from 1 to the scenario's chain\n" +
			"length at fixed ka (chain_n.png).",
		RunE: func(c *cobra.Command, _ []string) error {
			ab := a.sc.Absorption
			t, err := a.times()
			if err != nil {
				return err
			}
			m, err := compartment.NewTransitChain(ab.Ka, ab.Ke, ab.Transit)
			if err != nil {
				return err
			}
			sol, err := compartment.Simulate(a.model(m), ab.Dose, t, &a.sc.Solver)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Transit chain: N=%d, ka=%g, ke=%g", m.N, m.Ka, m.Ke)
			if err := a.save(c, "chain.png", statesFigure(title, sol)); err != nil {
				return err
			}

			kas, err := grid.Linspace(kaMin, kaMax, samples)
			if err != nil {
				return err
			}
			kaTrs, err := scan.Models(c.Context(), func(ka float64) (compartment.Model, error) {
				return compartment.NewTransitChain(ka, ab.Ke, m.N)
			}, kas, ab.Dose, t, a.scanOpts()...)
			if err != nil {
				return err
			}
			kaCurves, err := scan.Curves(kaTrs, compartment.Central, "ka=%.2f")
			if err != nil {
				return err
			}
			fig := &plot.Figure{Title: fmt.Sprintf("Transit chain: N=%d, ka scan", m.N), XLabel: "time [hr]", YLabel: "A_central [mg]", Series: curveSeries(kaCurves, 1), YFromZero: true, Legend: true}
			if err := a.save(c, "chain_ka.png", fig); err != nil {
				return err
			}

			ns := make([]float64, m.N)
			for i := range ns {
				ns[i] = float64(i + 1)
			}
			trs, err := scan.Models(c.Context(), func(n float64) (compartment.Model, error) {
				return compartment.NewTransitChain(ab.Ka, ab.Ke, int(n))
			}, ns, ab.Dose, t, a.scanOpts()...)
			if err != nil {
				return err
			}
			curves, err := scan.Curves(trs, compartment.Central, "N=%g")
			if err != nil {
				return err
			}
			fig = &plot.Figure{Title: "Transit chain length", XLabel: "time [hr]", YLabel: "A_central [mg]", Series: curveSeries(curves, 1), YFromZero: true, Legend: true}
			if err := a.save(c, "chain_n.png", fig); err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "%-10s: %.2f [hr]\n", "mtt", m.MeanTransitTime())
			printPeaks(c, "ka [1/hr]", kaCurves)
			printPeaks(c, "N", curves)

			return nil
		},
	}
	c.Flags().IntVarP(&samples, "num", "n", 5, "ka values in the scan")
	c.Flags().Float64Var(&kaMin, "ka-min", 0.1, "smallest ka [1/hr]")
	c.Flags().Float64Var(&kaMax, "ka-max", 2.0, "largest ka [1/hr]")

	return c
}

func metaboliteCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "metabolite",
		Short: "Parent drug A metabolised to B, both excreted into urine",
		RunE: func(c *cobra.Command, _ []string) error {
			ab := a.sc.Absorption
			t, err := a.times()
			if err != nil {
				return err
			}
			m, err := compartment.NewParentMetabolite(ab.Ka, ab.Km, ab.Ke)
			if err != nil {
				return err
			}
			sol, err := compartment.Simulate(a.model(m), ab.Dose, t, &a.sc.Solver)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Metabolism: ka=%g, km=%g, ke=%g", m.Ka, m.Km, m.Ke)
			if err := a.save(c, "metabolite.png", statesFigure(title, sol)); err != nil {
				return err
			}

			x := sol.Final()
			w := c.OutOrStdout()
			for j, name := range sol.Names {
				fmt.Fprintf(w, "%-10s: %.3f [mg]\n", name, x[j])
			}

			return nil
		},
	}

	return c
}

func recoveryCmd(a *app) *cobra.Command {
	var (
		kaMin, kaMax, kaStep float64
		km, ke               float64
		end, dt              float64
		every                int
	)
	c := &cobra.Command{
		Use:   "recovery",
		Short: "Urinary recovery of parent and metabolite as a function of ka",
		Long: "Scans ka and reports the fraction of the scenario dose excreted as parent\n" +
			"and metabolite by --end. km and ke default to 1 [1/hr], independent of\n" +
			"the scenario; with km = ke half of the dose is recovered as each.",
		RunE: func(c *cobra.Command, _ []string) error {
			ab := a.sc.Absorption
			kas, err := grid.Arange(kaMin, kaMax, kaStep)
			if err != nil {
				return err
			}
			t, err := grid.Arange(0, end, dt)
			if err != nil {
				return err
			}
			rs, err := scan.Recovery(c.Context(), kas, km, ke, ab.Dose, t, a.scanOpts()...)
			if err != nil {
				return err
			}

			pa := make([]float64, len(rs))
			pb := make([]float64, len(rs))
			tot := make([]float64, len(rs))
			for i, r := range rs {
				pa[i], pb[i], tot[i] = 100*r.Parent, 100*r.Metab, 100*r.Total()
			}
			fig := &plot.Figure{Title: "Urinary recovery", XLabel: "Absorption: ka", YLabel: "recovery [%]", YFromZero: true, Legend: true}
			fig.Add(plot.Series{Name: "recovery A", X: kas, Y: pa}).
				Add(plot.Series{Name: "recovery B", X: kas, Y: pb}).
				Add(plot.Series{Name: "recovery A + B", X: kas, Y: tot})
			if err := a.save(c, "recovery.png", fig); err != nil {
				return err
			}

			w := c.OutOrStdout()
			fmt.Fprintf(w, "%-8s  %-8s  %-8s  %s\n", "ka", "A [%]", "B [%]", "A+B [%]")
			for i, r := range rs {
				if every > 0 && i%every != 0 && i != len(rs)-1 {
					continue
				}
				fmt.Fprintf(w, "%-8.2f  %-8.2f  %-8.2f  %.2f\n", r.Ka, pa[i], pb[i], tot[i])
			}

			return nil
		},
	}
	c.Flags().Float64Var(&kaMin, "ka-min", 0.1, "smallest ka [1/hr]")
	c.Flags().Float64Var(&kaMax, "ka-max", 10, "upper ka bound (exclusive) [1/hr]")
	c.Flags().Float64Var(&kaStep, "ka-step", 0.1, "ka increment [1/hr]")
	c.Flags().Float64Var(&km, "km", 1, "metabolism rate constant [1/hr]")
	c.Flags().Float64Var(&ke, "ke", 1, "urinary excretion rate constant [1/hr]")
	c.Flags().Float64Var(&end, "end", 100, "simulation horizon [hr]")
	c.Flags().Float64Var(&dt, "dt", 0.1, "output step [hr]")
	c.Flags().IntVar(&every, "every", 10, "print every n-th row (0 prints all)")

	return c
}
