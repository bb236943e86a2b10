package integrators

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Verlet is the velocity-Verlet scheme:
//
//	x' = x + v·dt + ½·a(x)·dt²
//	v' = v + ½·(a(x) + a(x'))·dt
//
// Every step evaluates the field twice; the acceleration at x' is not
// carried into the next step.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Name() string { return "verlet" }

func (v *Verlet) Step(f dynamo.Field, masses []float64, x dynamo.State, dt float64) dynamo.State {
	n := x.Len()
	result := dynamo.NewState(n)
	halfDt2 := 0.5 * dt * dt

	a0 := f.Accelerations(x.Positions, masses)
	for i := 0; i < n; i++ {
		drift := r2.Add(x.Positions[i], r2.Scale(dt, x.Velocities[i]))
		result.Positions[i] = r2.Add(drift, r2.Scale(halfDt2, a0[i]))
	}

	a1 := f.Accelerations(result.Positions, masses)
	halfDt := 0.5 * dt
	for i := 0; i < n; i++ {
		result.Velocities[i] = r2.Add(x.Velocities[i], r2.Scale(halfDt, r2.Add(a0[i], a1[i])))
	}

	return result
}

// Leapfrog is the kick-drift-kick form of Verlet. It matches Verlet up to
// floating-point associativity.
type Leapfrog struct {
	half []r2.Vec
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

func (l *Leapfrog) Step(f dynamo.Field, masses []float64, x dynamo.State, dt float64) dynamo.State {
	n := x.Len()
	if len(l.half) != n {
		l.half = make([]r2.Vec, n)
	}

	result := dynamo.NewState(n)
	halfDt := dt * 0.5

	a0 := f.Accelerations(x.Positions, masses)
	for i := 0; i < n; i++ {
		l.half[i] = r2.Add(x.Velocities[i], r2.Scale(halfDt, a0[i]))
		result.Positions[i] = r2.Add(x.Positions[i], r2.Scale(dt, l.half[i]))
	}

	a1 := f.Accelerations(result.Positions, masses)
	for i := 0; i < n; i++ {
		result.Velocities[i] = r2.Add(l.half[i], r2.Scale(halfDt, a1[i]))
	}

	return result
}
