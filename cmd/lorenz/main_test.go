package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	a := &app{}
	root := a.rootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_SingleStep(t *testing.T) {
	out, _, err := execute(t, "--steps", "1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	elapsed, err := strconv.ParseFloat(lines[0], 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, elapsed, 0.0)
	assert.Equal(t, "1.000000, 0.000000, 0.000000", lines[1])
}

func TestRoot_FirstSteps(t *testing.T) {
	out, _, err := execute(t, "--steps", "3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "0.917928, 0.266336, 0.001264", lines[2])
}

func TestRoot_NoPointsWithMetrics(t *testing.T) {
	out, errOut, err := execute(t, "--steps", "10", "--no-points", "--metrics")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, errOut, "lorenz_steps_total")
	assert.Contains(t, errOut, "lorenz_runs_total")
}

func TestRoot_InvalidFlags(t *testing.T) {
	_, _, err := execute(t, "--dt", "-1")
	assert.ErrorIs(t, err, dynamo.ErrInvalidConfig)

	_, _, err = execute(t, "--steps", "10", "--duration", "1")
	assert.Error(t, err, "steps and duration are mutually exclusive")

	_, _, err = execute(t, "--integrator", "leapfrog", "--steps", "2")
	assert.ErrorIs(t, err, dynamo.ErrUnknownIntegrator)
}

func TestResolveConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dt: 0.02\nsteps: 10\n"), 0644))

	a := &app{}
	root := a.rootCmd()
	require.NoError(t, root.ParseFlags([]string{"--preset", "c-harness", "--config", path, "--steps", "5"}))

	cfg, err := a.resolveConfig(root)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Params.Beta, "preset")
	assert.Equal(t, 0.02, cfg.Dt, "config file")
	assert.Equal(t, 5, cfg.StepCount(), "changed flag")
	assert.Equal(t, 28.0, cfg.Params.Rho, "default")
}

func TestResolveConfig_Duration(t *testing.T) {
	a := &app{}
	root := a.rootCmd()
	require.NoError(t, root.ParseFlags([]string{"--duration", "10"}))

	cfg, err := a.resolveConfig(root)
	require.NoError(t, err)
	assert.Equal(t, 1001, cfg.StepCount())
}

func TestResolveConfig_UnknownPreset(t *testing.T) {
	a := &app{}
	root := a.rootCmd()
	a.preset = "nope"
	_, err := a.resolveConfig(root)
	assert.ErrorIs(t, err, dynamo.ErrInvalidConfig)
}

func TestCompare(t *testing.T) {
	out, _, err := execute(t, "compare", "--steps", "3000")
	require.NoError(t, err)

	assert.Contains(t, out, "rk4")
	assert.Contains(t, out, "euler")
	assert.Contains(t, out, "max distance")
}

func TestMeasureDivergence(t *testing.T) {
	p := []dynamo.Point3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	q := []dynamo.Point3{{0, 0, 0}, {1, 0.5, 0}, {2, 3, 0}}

	d := measureDivergence(p, q, 1)
	assert.Equal(t, 3.0, d.max)
	assert.Equal(t, 3.0, d.final)
	assert.Equal(t, 2, d.firstAbove)

	assert.Equal(t, -1, measureDivergence(p, p, 1).firstAbove)
}

func TestAnalyze(t *testing.T) {
	out, _, err := execute(t, "analyze", "--steps", "5000", "--lyapunov-steps", "500", "--transient", "0")
	require.NoError(t, err)

	for _, label := range []string{"bounds min", "centroid", "lyapunov", "wing switches", "dominant freq"} {
		assert.Contains(t, out, label)
	}
}

func TestPlotAndPhase(t *testing.T) {
	out, _, err := execute(t, "plot", "--steps", "500", "--axes", "z", "--width", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "z(t)")

	out, _, err = execute(t, "phase", "--steps", "2000", "--width", "20", "--height", "10")
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(out, "\n"))

	out, _, err = execute(t, "phase", "--steps", "500", "--plane", "xz", "--svg")
	require.NoError(t, err)
	assert.Contains(t, out, "<path")

	_, _, err = execute(t, "phase", "--steps", "10", "--plane", "xq")
	assert.Error(t, err)

	for _, args := range [][]string{
		{"phase", "--steps", "10", "--width", "-1"},
		{"phase", "--steps", "10", "--plane", "xz", "--height", "0"},
		{"plot", "--steps", "10", "--width", "-1"},
		{"sweep", "--samples", "2", "--record", "10", "--height", "-1"},
	} {
		_, _, err = execute(t, args...)
		assert.ErrorIs(t, err, dynamo.ErrInvalidConfig, "%v", args)
	}
}

func TestPresetsAndConfig(t *testing.T) {
	out, _, err := execute(t, "presets")
	require.NoError(t, err)
	for _, name := range []string{"reference", "c-harness", "euler", "fine", "short"} {
		assert.Contains(t, out, name)
	}

	out, _, err = execute(t, "config", "--preset", "fine")
	require.NoError(t, err)
	assert.Contains(t, out, "dt: 0.001")
	assert.Contains(t, out, "steps: 5000000")
}

func TestBench(t *testing.T) {
	out, _, err := execute(t, "bench", "--sizes", "100,1000", "--repeat", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "1,000")
	assert.Contains(t, out, "rk4")
	assert.Contains(t, out, "euler")
}

func TestSweep(t *testing.T) {
	out, _, err := execute(t, "sweep", "--from", "0.5", "--to", "28", "--samples", "2", "--width", "20", "--height", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "z maxima vs rho")
	assert.Contains(t, out, "RHO")
	assert.Contains(t, out, "28.000")

	_, _, err = execute(t, "sweep", "--param", "gamma", "--samples", "2", "--record", "10")
	assert.ErrorIs(t, err, dynamo.ErrUnknownParam)
}
