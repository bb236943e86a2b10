package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// KineticEnergy returns Σ ½·m·|v|².
func KineticEnergy(masses []float64, x dynamo.State) float64 {
	ke := 0.0
	for i, m := range masses {
		ke += 0.5 * m * r2.Norm2(x.Velocities[i])
	}
	return ke
}

// PotentialEnergy returns the unsoftened pairwise potential −Σ G·m_i·m_j/r_ij.
// The additive softening of the force law has no closed-form potential, so
// energy diagnostics are exact only for Softening == 0 and approximate
// otherwise.
func (g Gravity) PotentialEnergy(masses []float64, x dynamo.State) float64 {
	pe := 0.0
	for i := range masses {
		for j := i + 1; j < len(masses); j++ {
			r := r2.Norm(r2.Sub(x.Positions[j], x.Positions[i]))
			pe -= g.G * masses[i] * masses[j] / r
		}
	}
	return pe
}

// Energy is kinetic plus potential energy.
func (g Gravity) Energy(masses []float64, x dynamo.State) float64 {
	return KineticEnergy(masses, x) + g.PotentialEnergy(masses, x)
}

// Momentum returns the total linear momentum Σ m·v.
func Momentum(masses []float64, x dynamo.State) r2.Vec {
	var p r2.Vec
	for i, m := range masses {
		p = r2.Add(p, r2.Scale(m, x.Velocities[i]))
	}
	return p
}

// AngularMomentum returns the z component of Σ m·(p × v) about the origin.
func AngularMomentum(masses []float64, x dynamo.State) float64 {
	L := 0.0
	for i, m := range masses {
		L += m * r2.Cross(x.Positions[i], x.Velocities[i])
	}
	return L
}

// CenterOfMass returns the mass-weighted mean position.
func CenterOfMass(masses []float64, x dynamo.State) r2.Vec {
	var c r2.Vec
	total := 0.0
	for i, m := range masses {
		c = r2.Add(c, r2.Scale(m, x.Positions[i]))
		total += m
	}
	if total == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/total, c)
}
