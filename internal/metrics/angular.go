package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// AngularMomentumDrift tracks the largest absolute change of total angular
// momentum about the origin from the first observed state.
type AngularMomentumDrift struct {
	masses   []float64
	initial  float64
	current  float64
	maxDrift float64
	samples  int
}

func NewAngularMomentumDrift(masses []float64) *AngularMomentumDrift {
	return &AngularMomentumDrift{masses: masses}
}

func (a *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (a *AngularMomentumDrift) Observe(x dynamo.State, t float64) {
	L := physics.AngularMomentum(a.masses, x)
	if a.samples == 0 {
		a.initial = L
	}
	a.current = L
	a.samples++

	drift := math.Abs(L - a.initial)
	if math.IsNaN(drift) || drift > a.maxDrift {
		a.maxDrift = drift
	}
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

// Current returns the most recently observed angular momentum.
func (a *AngularMomentumDrift) Current() float64 { return a.current }

func (a *AngularMomentumDrift) Reset() {
	a.initial = 0
	a.current = 0
	a.maxDrift = 0
	a.samples = 0
}
