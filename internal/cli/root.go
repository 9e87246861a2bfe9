// Package cli wires the pkmodel packages into the pkdemo command tree.
//
// Every subcommand resolves the active scenario, runs one demonstration,
// writes its figure(s) as PNG below --out and prints a short table.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/pkmodel/compartment"
	"github.com/katalvlaran/pkmodel/internal/logger"
	"github.com/katalvlaran/pkmodel/scan"
	"github.com/katalvlaran/pkmodel/scenario"
)

// Execute runs pkdemo with the process arguments and exits non-zero on error.
func Execute() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	out     string
	ref     string
	debug   bool
	workers int
	network bool
	sc      scenario.Scenario
	log     *logger.Log
}

func run(args []string, stdout io.Writer) error {
	a := &app{}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	err := cmd.Execute()
	if err != nil {
		logger.L().Error("cmd.failed", "args", args, "err", err)
	}
	a.close()

	return err
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pkdemo",
		Short:         "Pharmacokinetic model demonstrations",
		Long:          "pkdemo simulates one- and multi-compartment PK models, scans their parameters, derives PK metrics and renders every result as PNG.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return a.setup(c)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.out, "out", "o", "out", "directory for figures and logs")
	pf.StringVarP(&a.ref, "scenario", "s", "", "scenario preset name or YAML path (presets: warfarin, aspirin, absorption, multidose)")
	pf.BoolVar(&a.debug, "debug", false, "enable verbose logging to <out>/.pkdemo/logs/pkdemo.log")
	pf.IntVarP(&a.workers, "workers", "w", runtime.NumCPU(), "concurrent evaluations in parameter scans (0 = unbounded)")
	pf.BoolVar(&a.network, "network", false, "integrate mass-action models through their reaction network")

	cmd.AddCommand(
		structuralCmd(a),
		paramScanCmd(a),
		aucScanCmd(a),
		eulerCmd(a),
		odeCmd(a),
		absorptionCmd(a),
		lagCmd(a),
		chainCmd(a),
		metaboliteCmd(a),
		recoveryCmd(a),
		multidoseCmd(a),
		windowCmd(a),
		kineticsCmd(a),
		pkCmd(a),
	)

	return cmd
}

func (a *app) setup(c *cobra.Command) error {
	if a.workers < 0 {
		return fmt.Errorf("--workers must be >= 0, got %d", a.workers)
	}
	if err := os.MkdirAll(a.out, 0o755); err != nil {
		return err
	}
	lg, err := logger.Open(logger.Config{Root: a.out, Debug: a.debug})
	if err != nil {
		fmt.Fprintln(c.ErrOrStderr(), "warning: logging disabled:", err)
	} else if a.debug {
		fmt.Fprintln(c.ErrOrStderr(), "log:", lg.Path())
	}
	a.log = lg

	sc, err := scenario.Resolve(a.ref)
	if err != nil {
		return err
	}
	a.sc = sc
	logger.L().Info("cmd.start", "cmd", c.Name(), "scenario", sc.Name, "out", a.out, "workers", a.workers)

	return nil
}

func (a *app) close() {
	_ = a.log.Close()
	a.log = nil
}

// model swaps m for its reaction network when --network is set.
func (a *app) model(m compartment.Model) compartment.Model {
	if a.network {
		return compartment.AsNetwork(m)
	}

	return m
}

func (a *app) rhs() string {
	if a.network {
		return "network"
	}

	return "direct"
}

func (a *app) scanOpts() []scan.Option {
	return []scan.Option{scan.WithLimit(a.workers), scan.WithSolver(a.sc.Solver)}
}
