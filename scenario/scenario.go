// Package scenario loads the parameter sets driving the pkdemo commands.
//
// A scenario is a YAML document. Every section is optional; absent fields
// keep the values of Default. Four presets are embedded: warfarin, aspirin,
// absorption and multidose.
package scenario

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pkmodel/compartment"
	"github.com/katalvlaran/pkmodel/dosing"
	"github.com/katalvlaran/pkmodel/ode"
	"github.com/katalvlaran/pkmodel/structural"
)

//go:embed presets/*.yaml
var presets embed.FS

// Absorption holds the oral absorption model parameters.
type Absorption struct {
	Dose    float64 // [mg]
	Ka      float64 // absorption [1/hr]
	Ke      float64 // elimination [1/hr]
	Km      float64 // metabolism [1/hr]
	Lag     float64 // [hr]
	Transit int     // transit compartments
}

// Scenario is a complete, validated parameter set.
type Scenario struct {
	Name        string
	Description string
	Drug        string

	Structural structural.Params
	End        float64 // simulation horizon [hr]
	Points     int     // samples over [0, End]

	Absorption Absorption
	Regimen    dosing.Regimen
	Window     dosing.Window
	Solver     ode.Options
}

// Default returns the warfarin scenario with the absorption and dosing
// parameters of the teaching scripts.
func Default() Scenario {
	return Scenario{
		Name:       "default",
		Drug:       "warfarin",
		Structural: structural.Warfarin(),
		End:        240,
		Points:     200,
		Absorption: Absorption{
			Dose: 10, Ka: 0.5, Ke: 0.2, Km: 1, Lag: 2,
			Transit: compartment.DefaultTransitCompartments,
		},
		Regimen: dosing.Regimen{Dose: 10, Interval: 24, Count: 10, Points: 100},
		Window:  dosing.Window{MEC: 2, MTC: 4},
		Solver:  ode.DefaultOptions(),
	}
}

// Load reads and validates a scenario file.
func Load(p string) (Scenario, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return Scenario{}, &OpError{Op: "scenario.load", Kind: KindNotFound, Path: p, Err: err}
	}

	return parse("scenario.load", p, b)
}

// Preset returns an embedded scenario by name.
func Preset(name string) (Scenario, error) {
	b, err := presets.ReadFile(path.Join("presets", name+".yaml"))
	if err != nil {
		return Scenario{}, &OpError{Op: "scenario.preset", Kind: KindNotFound, Path: name, Err: ErrNotFound}
	}

	return parse("scenario.preset", name, b)
}

// Presets lists the embedded preset names in lexical order.
func Presets() []string {
	entries, _ := fs.ReadDir(presets, "presets")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)

	return names
}

// Resolve treats s as a preset name first and as a file path otherwise.
// An empty s yields Default.
func Resolve(s string) (Scenario, error) {
	if strings.TrimSpace(s) == "" {
		return Default(), nil
	}
	sc, err := Preset(s)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return sc, err
	}

	return Load(s)
}

func parse(op, p string, b []byte) (Scenario, error) {
	var dto yamlScenario
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return Scenario{}, &OpError{Op: op, Kind: KindInvalidConfig, Path: p, Err: err}
	}

	return mapScenario(p, dto)
}
