package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

func binaryState(sep float64) ([]float64, dynamo.State) {
	return physics.Split([]physics.Body{
		{Mass: 1, Position: r2.Vec{X: -sep / 2}, Velocity: r2.Vec{Y: -0.5}},
		{Mass: 1, Position: r2.Vec{X: sep / 2}, Velocity: r2.Vec{Y: 0.5}},
	})
}

func TestEnergyDrift(t *testing.T) {
	g := physics.NewGravity()
	masses, x := binaryState(1)
	m := NewEnergyDrift(g, masses)

	m.Observe(x, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero drift after first sample, got %v", m.Value())
	}

	// KE = 0.25, PE = -1 at separation 1; PE = -0.5 at separation 2.
	_, wider := binaryState(2)
	m.Observe(wider, 1)

	want := math.Abs((0.25-0.5)-(0.25-1)) / math.Abs(0.25-1)
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("drift: got %v, want %v", m.Value(), want)
	}
	if math.Abs(m.Current()+0.25) > 1e-12 {
		t.Errorf("current energy: got %v, want -0.25", m.Current())
	}

	m.Observe(x, 2)
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("max drift should not decrease: got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 || m.Current() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestEnergyDrift_NaNSticks(t *testing.T) {
	masses, x := binaryState(1)
	m := NewEnergyDrift(physics.NewGravity(), masses)
	m.Observe(x, 0)

	bad := x.Clone()
	bad.Positions[0] = r2.Vec{X: math.NaN()}
	m.Observe(bad, 1)
	m.Observe(x, 2)

	if !math.IsNaN(m.Value()) {
		t.Errorf("expected NaN drift after divergence, got %v", m.Value())
	}
}

func TestMomentumDrift(t *testing.T) {
	masses, x := binaryState(1)
	m := NewMomentumDrift(masses)
	m.Observe(x, 0)

	kicked := x.Clone()
	kicked.Velocities[0] = r2.Add(kicked.Velocities[0], r2.Vec{X: 3, Y: 4})
	m.Observe(kicked, 1)

	if math.Abs(m.Value()-5) > 1e-12 {
		t.Errorf("momentum drift: got %v, want 5", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestAngularMomentumDrift(t *testing.T) {
	masses, x := binaryState(1)
	a := NewAngularMomentumDrift(masses)
	a.Observe(x, 0)

	L0 := physics.AngularMomentum(masses, x)
	if a.Current() != L0 || a.Value() != 0 {
		t.Fatalf("first sample: current %v, drift %v", a.Current(), a.Value())
	}

	// A radial kick on a body at (0.5, 0) leaves L unchanged; a tangential one does not.
	radial := x.Clone()
	radial.Velocities[1] = r2.Add(radial.Velocities[1], r2.Vec{X: 2})
	a.Observe(radial, 1)
	if math.Abs(a.Value()) > 1e-15 {
		t.Errorf("radial kick changed angular momentum by %v", a.Value())
	}

	tangential := x.Clone()
	tangential.Velocities[1] = r2.Add(tangential.Velocities[1], r2.Vec{Y: 2})
	a.Observe(tangential, 2)
	if math.Abs(a.Value()-1) > 1e-12 {
		t.Errorf("angular momentum drift: got %v, want 1", a.Value())
	}

	bad := x.Clone()
	bad.Positions[0] = r2.Vec{X: math.NaN()}
	a.Observe(bad, 3)
	a.Observe(x, 4)
	if !math.IsNaN(a.Value()) {
		t.Errorf("expected NaN drift to stick, got %v", a.Value())
	}

	a.Reset()
	if a.Value() != 0 || a.Current() != 0 {
		t.Error("Reset did not clear state")
	}
}

func TestDivergence(t *testing.T) {
	_, x := binaryState(1)
	d := NewDivergence()

	d.Observe(x, 0.5)
	if d.Diverged() || d.Value() != -1 {
		t.Errorf("healthy state flagged: %v", d.Value())
	}

	bad := x.Clone()
	bad.Velocities[1] = r2.Vec{Y: math.Inf(1)}
	d.Observe(bad, 1.5)
	d.Observe(bad, 2.5)

	if !d.Diverged() || d.Value() != 1.5 {
		t.Errorf("expected divergence at 1.5, got %v", d.Value())
	}

	d.Reset()
	if d.Diverged() || d.Value() != -1 {
		t.Error("Reset did not clear divergence")
	}
}

func TestDefault(t *testing.T) {
	masses, _ := binaryState(1)
	names := map[string]bool{}
	for _, m := range Default(physics.NewGravity(), masses) {
		names[m.Name()] = true
	}
	for _, want := range []string{"energy_drift", "momentum_drift", "angular_momentum_drift", "diverged_at"} {
		if !names[want] {
			t.Errorf("missing default metric %q", want)
		}
	}
}
