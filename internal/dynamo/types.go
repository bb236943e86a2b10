package dynamo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// State is the phase-space state of an N-body system. Index i of both
// slices refers to the same body.
type State struct {
	Positions  []r2.Vec
	Velocities []r2.Vec
}

// NewState allocates a zeroed state for n bodies.
func NewState(n int) State {
	return State{
		Positions:  make([]r2.Vec, n),
		Velocities: make([]r2.Vec, n),
	}
}

func (s State) Len() int { return len(s.Positions) }

// Clone returns a deep copy that shares no backing arrays with s.
func (s State) Clone() State {
	c := NewState(len(s.Positions))
	copy(c.Positions, s.Positions)
	copy(c.Velocities, s.Velocities)
	return c
}

// CopyFrom overwrites s in place with the contents of other.
func (s State) CopyFrom(other State) {
	copy(s.Positions, other.Positions)
	copy(s.Velocities, other.Velocities)
}

// IsValid reports whether every position and velocity component is finite.
func (s State) IsValid() bool {
	for i := range s.Positions {
		if !IsFinite(s.Positions[i]) || !IsFinite(s.Velocities[i]) {
			return false
		}
	}
	return true
}

// IsFinite reports whether both components of v are finite.
func IsFinite(v r2.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Field computes the acceleration on every body from positions and masses.
// Implementations must not modify their inputs and must return a fresh slice.
type Field interface {
	Accelerations(positions []r2.Vec, masses []float64) []r2.Vec
}

// Integrator advances a state by dt and returns the new state. The input
// state is left untouched.
type Integrator interface {
	Name() string
	Step(f Field, masses []float64, x State, dt float64) State
}

// Metric accumulates a scalar diagnostic over a run.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}
