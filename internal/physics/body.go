package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Body is a point mass.
type Body struct {
	Mass     float64
	Position r2.Vec
	Velocity r2.Vec
}

// Split separates bodies into masses and a phase-space state. The returned
// slices do not alias bodies.
func Split(bodies []Body) ([]float64, dynamo.State) {
	masses := make([]float64, len(bodies))
	x := dynamo.NewState(len(bodies))
	for i, b := range bodies {
		masses[i] = b.Mass
		x.Positions[i] = b.Position
		x.Velocities[i] = b.Velocity
	}
	return masses, x
}

// Join is the inverse of Split.
func Join(masses []float64, x dynamo.State) []Body {
	bodies := make([]Body, len(masses))
	for i := range masses {
		bodies[i] = Body{Mass: masses[i], Position: x.Positions[i], Velocity: x.Velocities[i]}
	}
	return bodies
}
