package cli

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runIn(t *testing.T, args ...string) (string, string) {
	t.Helper()
	out := t.TempDir()
	var buf bytes.Buffer
	err := run(append(args, "--out", out), &buf)
	require.NoError(t, err, buf.String())
	return out, buf.String()
}

func requirePNG(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		data, err := os.ReadFile(filepath.Join(dir, n))
		require.NoError(t, err, n)
		assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), n)
	}
}

func TestStructural(t *testing.T) {
	out, stdout := runIn(t, "structural")
	requirePNG(t, out, "structural.png")
	assert.Contains(t, stdout, "thalf     : 69.31 [hr]")
	assert.Contains(t, stdout, "auc       : 1000.00 [mg/l*hr]")

	_, err := os.Stat(filepath.Join(out, ".pkdemo", "logs", "pkdemo.log"))
	assert.NoError(t, err)
}

func TestStructural_ScenarioAndOverride(t *testing.T) {
	_, stdout := runIn(t, "structural", "--scenario", "aspirin", "--clearance", "40")
	assert.Contains(t, stdout, "kel       : 4.00 [1/hr]")
}

func TestScans(t *testing.T) {
	out, _ := runIn(t, "scan", "--workers", "2")
	requirePNG(t, out, "scan_dose.png", "scan_volume.png", "scan_clearance.png")

	out, stdout := runIn(t, "auc-scan", "-n", "5", "--rule", "trapezoid")
	requirePNG(t, out, "auc_curves.png", "auc_dose.png")
	assert.Contains(t, stdout, "100.00")
}

func TestEuler(t *testing.T) {
	out, stdout := runIn(t, "euler", "--from", "2", "--to", "5")
	requirePNG(t, out, "euler.png", "euler_error.png")
	assert.Equal(t, 5, strings.Count(stdout, "\n")-2, stdout) // header + 4 rows + 2 "wrote" lines
}

func TestODE(t *testing.T) {
	out, stdout := runIn(t, "ode", "--method", "rk4")
	requirePNG(t, out, "ode.png")
	assert.Contains(t, stdout, "method    : rk4")
	assert.Contains(t, stdout, "rmse      :")
	assert.Contains(t, stdout, "rhs       : direct")
}

func TestNetworkBackend(t *testing.T) {
	_, stdout := runIn(t, "ode", "--network")
	assert.Contains(t, stdout, "rhs       : network")

	// both right-hand sides print the same final amounts
	_, direct := runIn(t, "metabolite", "--scenario", "absorption")
	_, viaNet := runIn(t, "metabolite", "--scenario", "absorption", "--network")
	assert.Equal(t, direct, viaNet)
	assert.Contains(t, viaNet, "A_tablet")

	out, _ := runIn(t, "multidose", "--count", "2", "--network")
	requirePNG(t, out, "multidose.png")
}

func TestAbsorptionCommands(t *testing.T) {
	out, _ := runIn(t, "absorption", "--scenario", "absorption")
	requirePNG(t, out, "absorption.png", "absorption_ka.png")

	out, stdout := runIn(t, "lag", "--scenario", "absorption")
	requirePNG(t, out, "lag.png")
	assert.Contains(t, stdout, "dtw shift [hr]")
	// lags 0..2 hr on a 0.1 hr grid; the largest lag is recovered exactly
	assert.Contains(t, stdout, "lag=2.0 [hr]  2.00")
	assert.NotContains(t, stdout, "lag=4.0")

	out, stdout = runIn(t, "chain", "--scenario", "absorption")
	requirePNG(t, out, "chain.png", "chain_ka.png", "chain_n.png")
	assert.Contains(t, stdout, "mtt       : 5.00 [hr]")

	out, _ = runIn(t, "metabolite", "--scenario", "absorption")
	requirePNG(t, out, "metabolite.png")
}

func TestRecovery(t *testing.T) {
	args := []string{"recovery", "--ka-min", "0.5", "--ka-max", "2", "--ka-step", "0.5", "--every", "0"}

	out, stdout := runIn(t, args...)
	requirePNG(t, out, "recovery.png")
	// km = ke = 1 by default: half of the dose leaves unchanged
	assert.Contains(t, stdout, "50.00     50.00     100.00")

	// parent share is ke/(km+ke)
	_, stdout = runIn(t, append(args, "--ke", "3")...)
	assert.Contains(t, stdout, "75.00     25.00     100.00")
}

func TestDosingCommands(t *testing.T) {
	out, stdout := runIn(t, "multidose", "--count", "3")
	requirePNG(t, out, "multidose.png")
	assert.Contains(t, stdout, "A_tablet")

	out, stdout = runIn(t, "window", "--scenario", "multidose")
	requirePNG(t, out, "window.png")
	assert.Contains(t, stdout, "in window :")
}

func TestKinetics(t *testing.T) {
	out, stdout := runIn(t, "kinetics")
	requirePNG(t, out, "kinetics.png")
	assert.Contains(t, stdout, "0.500") // Michaelis–Menten at Km is Vmax/2
}

func TestPK_Synthetic(t *testing.T) {
	out, stdout := runIn(t, "pk")
	requirePNG(t, out, "pk.png")
	assert.Contains(t, stdout, "dose      : 100.00 [mg]")
	assert.Contains(t, stdout, "tmax      : 0.86 [hr]")
	assert.Contains(t, stdout, "kel       :")
}

func TestPK_CSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "data.csv")
	var b strings.Builder
	b.WriteString("t,c\n")
	for i := 0; i <= 4; i++ {
		b.WriteString(strconv.Itoa(i) + "," + strconv.FormatFloat(8*math.Pow(0.5, float64(i)), 'g', -1, 64) + "\n")
	}
	require.NoError(t, os.WriteFile(csvPath, []byte(b.String()), 0o600))

	_, stdout := runIn(t, "pk", "--csv", csvPath, "--dose", "10")
	assert.Contains(t, stdout, "thalf     : 1.00 [hr]")
}

func TestReadSamples(t *testing.T) {
	tv, cv, err := readSamples(strings.NewReader("time,conc\n0,1\n1, nan\n2,\n3,0.5\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3}, tv)
	assert.True(t, math.IsNaN(cv[1]))
	assert.True(t, math.IsNaN(cv[2]))
	assert.Equal(t, 0.5, cv[3])

	_, _, err = readSamples(strings.NewReader("0,1\nx,2\n"))
	assert.ErrorIs(t, err, errBadCSV)

	_, _, err = readSamples(strings.NewReader("0\n"))
	assert.ErrorIs(t, err, errBadCSV)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scenario", []string{"structural", "--scenario", "nope"}},
		{"zero volume", []string{"structural", "--volume", "0"}},
		{"unknown rule", []string{"auc-scan", "--rule", "simpson"}},
		{"inverted window", []string{"window", "--mec", "9", "--mtc", "1"}},
		{"negative workers", []string{"scan", "--workers", "-1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Error(t, run(append(tc.args, "--out", t.TempDir()), &buf))
		})
	}
}

func TestDebugPrintsLogPath(t *testing.T) {
	out := t.TempDir()
	a := &app{}
	cmd := newRootCmd(a)
	var stdout, stderr bytes.Buffer
	cmd.SetArgs([]string{"kinetics", "--debug", "--out", out})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	require.NoError(t, cmd.Execute())
	a.close()

	path := filepath.Join(out, ".pkdemo", "logs", "pkdemo.log")
	assert.Contains(t, stderr.String(), "log: "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "figure.saved")
}
