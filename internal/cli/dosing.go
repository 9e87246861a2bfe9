package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pkmodel/compartment"
	"github.com/katalvlaran/pkmodel/dosing"
	"github.com/katalvlaran/pkmodel/ode"
	"github.com/katalvlaran/pkmodel/plot"
)

type regimenFlags struct {
	dose, first, interval float64
	count                 int
}

func (rf *regimenFlags) register(c *cobra.Command) {
	c.Flags().Float64Var(&rf.dose, "dose", 0, "maintenance dose [mg] (default from scenario)")
	c.Flags().Float64Var(&rf.first, "first-dose", 0, "loading dose [mg] (default from scenario)")
	c.Flags().Float64Var(&rf.interval, "interval", 0, "dosing interval [hr] (default from scenario)")
	c.Flags().IntVar(&rf.count, "count", 0, "number of doses (default from scenario)")
}

func (rf *regimenFlags) apply(c *cobra.Command, r dosing.Regimen) (dosing.Regimen, error) {
	if c.Flags().Changed("dose") {
		r.Dose = rf.dose
	}
	if c.Flags().Changed("first-dose") {
		r.FirstDose = rf.first
	}
	if c.Flags().Changed("interval") {
		r.Interval = rf.interval
	}
	if c.Flags().Changed("count") {
		r.Count = rf.count
	}

	return r, r.Validate()
}

func (a *app) simulateRegimen(c *cobra.Command, rf *regimenFlags) (*ode.Solution, dosing.Regimen, error) {
	r, err := rf.apply(c, a.sc.Regimen)
	if err != nil {
		return nil, r, err
	}
	m, err := compartment.NewFirstOrderAbsorption(a.sc.Absorption.Ka, a.sc.Absorption.Ke)
	if err != nil {
		return nil, r, err
	}
	sol, err := dosing.Simulate(a.model(m), r, &a.sc.Solver)

	return sol, r, err
}

func multidoseCmd(a *app) *cobra.Command {
	var rf regimenFlags
	c := &cobra.Command{
		Use:   "multidose",
		Short: "Repeated oral dosing of the first-order absorption model",
		RunE: func(c *cobra.Command, _ []string) error {
			sol, r, err := a.simulateRegimen(c, &rf)
			if err != nil {
				return err
			}
			title := fmt.Sprintf("Multiple dosing: %d x %g [mg] every %g [hr]", r.Count, r.Dose, r.Interval)
			if err := a.save(c, "multidose.png", statesFigure(title, sol)); err != nil {
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
	rf.register(c)

	return c
}

func windowCmd(a *app) *cobra.Command {
	var (
		rf       regimenFlags
		mec, mtc float64
	)
	c := &cobra.Command{
		Use:   "window",
		Short: "Central amount under repeated dosing against the therapeutic window",
		RunE: func(c *cobra.Command, _ []string) error {
			win := a.sc.Window
			if c.Flags().Changed("mec") {
				win.MEC = mec
			}
			if c.Flags().Changed("mtc") {
				win.MTC = mtc
			}
			if err := win.Validate(); err != nil {
				return err
			}
			sol, _, err := a.simulateRegimen(c, &rf)
			if err != nil {
				return err
			}
			central, err := sol.ColumnByName(compartment.Central)
			if err != nil {
				return err
			}
			exp, err := win.Analyze(sol.Times, central)
			if err != nil {
				return err
			}

			fig := &plot.Figure{
				Title:     "Therapeutic window",
				XLabel:    "time [hr]",
				YLabel:    "amount [mg]",
				YFromZero: true,
				Legend:    true,
				HLines: []plot.Reference{
					{Name: "MTC", Y: win.MTC, Color: plot.Color(3)},
					{Name: "MEC", Y: win.MEC, Color: plot.Color(0)},
				},
			}
			fig.Add(plot.Series{Name: compartment.Central, X: sol.Times, Y: central, Color: plot.Color(1)})
			if err := a.save(c, "window.png", fig); err != nil {
				return err
			}

			w := c.OutOrStdout()
			fmt.Fprintf(w, "%-10s: %.2f [hr]\n", "below", exp.Below)
			fmt.Fprintf(w, "%-10s: %.2f [hr]\n", "within", exp.Within)
			fmt.Fprintf(w, "%-10s: %.2f [hr]\n", "above", exp.Above)
			fmt.Fprintf(w, "%-10s: %.2f [%%]\n", "in window", 100*exp.FractionWithin())
			if exp.FirstWithin >= 0 {
				fmt.Fprintf(w, "%-10s: %.2f [hr]\n", "onset", exp.FirstWithin)
			} else {
				fmt.Fprintf(w, "%-10s: never\n", "onset")
			}

			return nil
		},
	}
	rf.register(c)
	c.Flags().Float64Var(&mec, "mec", 0, "minimum effective level (default from scenario)")
	c.Flags().Float64Var(&mtc, "mtc", 0, "minimum toxic level (default from scenario)")

	return c
}
