package physics

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Gravity is the pairwise Newtonian field with an additive softening term
// in the denominator:
//
//	a_i = Σ_{j≠i} G·m_j·(p_j − p_i) / (|p_j − p_i|³ + Softening)
//
// Sums run over j in ascending order for every i, so identical inputs
// always give bit-identical outputs. With Softening == 0 two coincident
// bodies produce NaN components (0 · +Inf); no guard is applied.
type Gravity struct {
	G         float64
	Softening float64
}

// NewGravity returns a field with G = 1 and no softening.
func NewGravity() Gravity {
	return Gravity{G: 1.0}
}

func (g Gravity) Accelerations(positions []r2.Vec, masses []float64) []r2.Vec {
	n := len(positions)
	acc := make([]r2.Vec, n)

	for i := 0; i < n; i++ {
		var sum r2.Vec
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sum = r2.Add(sum, g.pull(positions[i], positions[j], masses[j]))
		}
		acc[i] = sum
	}

	return acc
}

// pull is the acceleration at p exerted by mass m located at q.
func (g Gravity) pull(p, q r2.Vec, m float64) r2.Vec {
	r := r2.Sub(q, p)
	d := r2.Norm(r)
	return r2.Scale(g.G*m/(d*d*d+g.Softening), r)
}
