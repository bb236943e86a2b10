package integrators

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Euler is explicit forward Euler. It does not conserve energy and is kept
// as a baseline for drift comparisons.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(f dynamo.Field, masses []float64, x dynamo.State, dt float64) dynamo.State {
	a := f.Accelerations(x.Positions, masses)
	result := dynamo.NewState(x.Len())
	for i := range x.Positions {
		result.Positions[i] = r2.Add(x.Positions[i], r2.Scale(dt, x.Velocities[i]))
		result.Velocities[i] = r2.Add(x.Velocities[i], r2.Scale(dt, a[i]))
	}
	return result
}
