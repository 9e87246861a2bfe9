package scenario

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/pkmodel/compartment"
	"github.com/katalvlaran/pkmodel/ode"
)

func mapScenario(p string, ys yamlScenario) (Scenario, error) {
	sc := Default()
	if strings.TrimSpace(ys.Name) != "" {
		sc.Name = ys.Name
	}
	sc.Description = ys.Description
	if strings.TrimSpace(ys.Drug) != "" {
		sc.Drug = ys.Drug
	}

	if s := ys.Structural; s != nil {
		set(&sc.Structural.Dose, s.Dose)
		set(&sc.Structural.V, s.Volume)
		set(&sc.Structural.CL, s.Clearance)
	}
	if err := sc.Structural.Validate(); err != nil {
		return Scenario{}, invalidField(p, "structural", err.Error())
	}

	if t := ys.Time; t != nil {
		set(&sc.End, t.End)
		set(&sc.Points, t.Points)
	}
	if !(sc.End > 0) {
		return Scenario{}, invalidField(p, "time.end", "must be > 0")
	}
	if sc.Points < 2 {
		return Scenario{}, invalidField(p, "time.points", "must be >= 2")
	}

	if a := ys.Absorption; a != nil {
		set(&sc.Absorption.Dose, a.Dose)
		set(&sc.Absorption.Ka, a.Ka)
		set(&sc.Absorption.Ke, a.Ke)
		set(&sc.Absorption.Km, a.Km)
		set(&sc.Absorption.Lag, a.Lag)
		set(&sc.Absorption.Transit, a.Transit)
	}
	if sc.Absorption.Dose < 0 {
		return Scenario{}, invalidField(p, "absorption.dose", "must be >= 0")
	}
	if _, err := compartment.NewLaggedAbsorption(sc.Absorption.Ka, sc.Absorption.Ke, sc.Absorption.Lag); err != nil {
		return Scenario{}, invalidField(p, "absorption", err.Error())
	}
	if _, err := compartment.NewParentMetabolite(sc.Absorption.Ka, sc.Absorption.Km, sc.Absorption.Ke); err != nil {
		return Scenario{}, invalidField(p, "absorption.km", err.Error())
	}
	if sc.Absorption.Transit < 1 {
		return Scenario{}, invalidField(p, "absorption.transit", "must be >= 1")
	}

	if r := ys.Regimen; r != nil {
		set(&sc.Regimen.Dose, r.Dose)
		set(&sc.Regimen.FirstDose, r.FirstDose)
		set(&sc.Regimen.Interval, r.Interval)
		set(&sc.Regimen.Count, r.Count)
		set(&sc.Regimen.Points, r.Points)
	}
	if err := sc.Regimen.Validate(); err != nil {
		return Scenario{}, invalidField(p, "regimen", err.Error())
	}

	if w := ys.Window; w != nil {
		set(&sc.Window.MEC, w.MEC)
		set(&sc.Window.MTC, w.MTC)
	}
	if err := sc.Window.Validate(); err != nil {
		return Scenario{}, invalidField(p, "window", err.Error())
	}

	if s := ys.Solver; s != nil {
		if s.Method != nil {
			m, err := ode.ParseMethod(*s.Method)
			if err != nil {
				return Scenario{}, invalidField(p, "solver.method", err.Error())
			}
			sc.Solver.Method = m
		}
		set(&sc.Solver.RelTol, s.RelTol)
		set(&sc.Solver.AbsTol, s.AbsTol)
		set(&sc.Solver.Step, s.Step)
		set(&sc.Solver.MaxStep, s.MaxStep)
	}
	if sc.Solver.RelTol <= 0 || sc.Solver.AbsTol <= 0 || sc.Solver.Step < 0 || sc.Solver.MaxStep < 0 {
		return Scenario{}, invalidField(p, "solver", "tolerances must be > 0 and steps >= 0")
	}

	return sc, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func invalidField(p, field, msg string) error {
	return &OpError{
		Op:   "scenario.map",
		Kind: KindInvalidConfig,
		Path: p,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, ErrInvalidConfig),
	}
}
