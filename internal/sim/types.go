package sim

import (
	"github.com/san-kum/gravsim/internal/dynamo"
)

// Params are the global simulation parameters.
type Params struct {
	G         float64
	Dt        float64
	Softening float64
}

// Phase is the lifecycle position of a Simulation.
type Phase int

const (
	Created Phase = iota
	Running
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Created:
		return "created"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of every body's position and velocity in
// body input order. It shares no memory with the simulation.
type Snapshot struct {
	Step int
	Time float64
	dynamo.State
}

// Healthy reports whether every component in the snapshot is finite.
func (s Snapshot) Healthy() bool { return s.IsValid() }
