package metrics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// MomentumDrift tracks the largest absolute change of total linear momentum
// from the first observed state.
type MomentumDrift struct {
	masses   []float64
	initial  r2.Vec
	maxDrift float64
	samples  int
}

func NewMomentumDrift(masses []float64) *MomentumDrift {
	return &MomentumDrift{masses: masses}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(x dynamo.State, t float64) {
	p := physics.Momentum(m.masses, x)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	drift := r2.Norm(r2.Sub(p, m.initial))
	if math.IsNaN(drift) || drift > m.maxDrift {
		m.maxDrift = drift
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = r2.Vec{}
	m.maxDrift = 0
	m.samples = 0
}
