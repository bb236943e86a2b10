package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "binary", "--steps", "10", "--every", "5")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	for _, want := range []string{"binary: 10 steps", "BODY", "energy_drift", "angular_momentum_drift", "center_of_mass", "healthy: true", "step"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunCommandRejectsBadFlags(t *testing.T) {
	if _, err := execute(t, "run", "binary", "--dt", "0"); err == nil {
		t.Error("expected error for zero dt")
	}
	if _, err := execute(t, "run", "nowhere"); err == nil {
		t.Error("expected error for unknown scenario")
	}
	if _, err := execute(t, "run", "binary", "--integrator", "rk4"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	path := filepath.Join(t.TempDir(), "binary.yaml")
	if _, err := execute(t, "init", "binary", path); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "run", "figure8", "--config", path); err == nil {
		t.Error("expected error when both a scenario and --config are given")
	}
}

const clashScenario = `name: clash
softening: 0
steps: 5
bodies:
  - mass: 1
    position: [0, 0]
    velocity: [0, 0]
  - mass: 1
    position: [0, 0]
    velocity: [0, 0]
`

func TestRunPlotSurvivesDivergence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clash.yaml")
	if err := os.WriteFile(path, []byte(clashScenario), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "run", "--config", path, "--plot")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	for _, want := range []string{"healthy: false", "energy is non-finite from step 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunPlot(t *testing.T) {
	out, err := execute(t, "run", "circular", "--steps", "50", "--plot")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "total energy") {
		t.Errorf("expected an energy plot:\n%s", out)
	}
	if strings.Contains(out, "non-finite") {
		t.Errorf("healthy run reported divergence:\n%s", out)
	}
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gravsim.log")
	out, err := execute(t, "run", "binary", "--steps", "2", "--log-level", "debug", "--log-file", path)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if strings.Contains(out, "simulation created") {
		t.Error("log output leaked to stderr")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "simulation created") {
		t.Errorf("log file missing construction entry:\n%s", data)
	}
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "circular", "--steps", "100")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	for _, name := range []string{"euler", "leapfrog", "verlet"} {
		if !strings.Contains(out, name) {
			t.Errorf("compare output missing %s:\n%s", name, out)
		}
	}
}

func TestInitThenRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fig.yaml")
	if _, err := execute(t, "init", "figure8", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "init", "figure8", path); err == nil {
		t.Error("expected refusal to overwrite")
	}

	out, err := execute(t, "run", "--config", path, "--steps", "3")
	if err != nil {
		t.Fatalf("run from file failed: %v", err)
	}
	if !strings.Contains(out, "figure8: 3 steps") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestScenariosCommand(t *testing.T) {
	out, err := execute(t, "scenarios")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"binary", "threebody", "figure8"} {
		if !strings.Contains(out, name) {
			t.Errorf("scenarios missing %s", name)
		}
	}
}

func TestMoonCommand(t *testing.T) {
	out, err := execute(t, "moon", "--days", "15")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Waning Gibbous") || !strings.Contains(out, "dark side right") {
		t.Errorf("expected a waning gibbous just past full:\n%s", out)
	}

	out, err = execute(t, "moon", "--table", "--cycle", "8")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "New Moon") || !strings.Contains(out, "Waxing Crescent") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestMoonCommandRejectsBadInput(t *testing.T) {
	tests := [][]string{
		{"moon", "--table", "--cycle", "-1"},
		{"moon", "--days", "3", "--period", "NaN"},
		{"moon", "--days", "3", "--period", "0"},
		{"moon", "--days", "NaN"},
	}
	for _, args := range tests {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}

	out, err := execute(t, "moon", "--table", "--cycle", "0")
	if err != nil {
		t.Fatalf("empty table failed: %v", err)
	}
	if !strings.Contains(out, "DAY") {
		t.Errorf("expected header only:\n%s", out)
	}
}
