package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pkmodel/ode"
	"github.com/katalvlaran/pkmodel/scenario"
	"github.com/katalvlaran/pkmodel/structural"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{"absorption", "aspirin", "multidose", "warfarin"}, scenario.Presets())

	for _, name := range scenario.Presets() {
		sc, err := scenario.Preset(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, sc.Name)
	}

	w, err := scenario.Preset("warfarin")
	require.NoError(t, err)
	assert.Equal(t, structural.Warfarin(), w.Structural)
	assert.Equal(t, 240.0, w.End)

	a, err := scenario.Preset("aspirin")
	require.NoError(t, err)
	assert.Equal(t, structural.Aspirin(), a.Structural)

	m, err := scenario.Preset("multidose")
	require.NoError(t, err)
	assert.Equal(t, 6.0, m.Regimen.FirstDose)
	assert.Equal(t, 0.75, m.Regimen.Dose)
	assert.Equal(t, 40, m.Regimen.Count)
	assert.Equal(t, 0.01, m.Absorption.Ka)
	assert.Equal(t, 4.0, m.Window.MTC)
}

func TestPreset_Unknown(t *testing.T) {
	_, err := scenario.Preset("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, scenario.ErrNotFound)
	assert.True(t, scenario.IsKind(err, scenario.KindNotFound))
}

func TestLoad_PartialOverridesDefault(t *testing.T) {
	p := writeFile(t, `
name: custom
structural:
  clearance: 0.5
solver:
  method: rk4
  step: 0.1
`)
	sc, err := scenario.Load(p)
	require.NoError(t, err)

	def := scenario.Default()
	assert.Equal(t, "custom", sc.Name)
	assert.Equal(t, 0.5, sc.Structural.CL)
	assert.Equal(t, def.Structural.V, sc.Structural.V)
	assert.Equal(t, def.Regimen, sc.Regimen)
	assert.Equal(t, ode.RK4, sc.Solver.Method)
	assert.Equal(t, 0.1, sc.Solver.Step)
	assert.Equal(t, def.Solver.RelTol, sc.Solver.RelTol)
}

func TestLoad_Errors(t *testing.T) {
	_, err := scenario.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, scenario.IsKind(err, scenario.KindNotFound))

	cases := map[string]string{
		"syntax":    "structural: [",
		"volume":    "structural: {volume: 0}",
		"points":    "time: {points: 1}",
		"rate":      "absorption: {ka: -1}",
		"transit":   "absorption: {transit: 0}",
		"regimen":   "regimen: {interval: 0}",
		"window":    "window: {mec: 5, mtc: 1}",
		"method":    "solver: {method: leapfrog}",
		"tolerance": "solver: {rtol: 0}",
	}
	for name, body := range cases {
		_, err := scenario.Load(writeFile(t, body))
		require.Error(t, err, name)
		assert.True(t, scenario.IsKind(err, scenario.KindInvalidConfig), name)
	}
}

func TestResolve(t *testing.T) {
	sc, err := scenario.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, scenario.Default(), sc)

	sc, err = scenario.Resolve("aspirin")
	require.NoError(t, err)
	assert.Equal(t, "aspirin", sc.Name)

	sc, err = scenario.Resolve(writeFile(t, "name: fromfile\n"))
	require.NoError(t, err)
	assert.Equal(t, "fromfile", sc.Name)

	_, err = scenario.Resolve("no-such-preset-or-file")
	assert.True(t, scenario.IsKind(err, scenario.KindNotFound))
}

func TestOpError_Format(t *testing.T) {
	err := &scenario.OpError{Op: "scenario.load", Kind: scenario.KindNotFound, Path: "x.yaml", Err: scenario.ErrNotFound}
	assert.Equal(t, "scenario.load: not_found (path=x.yaml): scenario: not found", err.Error())

	var nilErr *scenario.OpError
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}
