package metrics

import (
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// Divergence records the simulated time at which the state first became
// non-finite. Value is -1 while the run is healthy.
type Divergence struct {
	at    float64
	found bool
}

func NewDivergence() *Divergence {
	return &Divergence{at: -1}
}

func (d *Divergence) Name() string { return "diverged_at" }

func (d *Divergence) Observe(x dynamo.State, t float64) {
	if !d.found && !x.IsValid() {
		d.found = true
		d.at = t
	}
}

func (d *Divergence) Value() float64 { return d.at }

// Diverged reports whether any observed state was non-finite.
func (d *Divergence) Diverged() bool { return d.found }

func (d *Divergence) Reset() {
	d.at = -1
	d.found = false
}

// Default returns the standard diagnostics for a set of masses under field.
func Default(field physics.Gravity, masses []float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergyDrift(field, masses),
		NewMomentumDrift(masses),
		NewAngularMomentumDrift(masses),
		NewDivergence(),
	}
}
