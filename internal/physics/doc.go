// Package physics provides the point-mass model and the gravitational field.
//
//   - [Body]: mass, position and velocity of one point mass
//   - [Gravity]: pairwise O(n²) acceleration calculator implementing [dynamo.Field]
//
// Conservation diagnostics ([Gravity.Energy], [Momentum], [AngularMomentum])
// operate on a [dynamo.State] and the matching mass slice:
//
//	masses, x := physics.Split(bodies)
//	g := physics.Gravity{G: 1, Softening: 1e-9}
//	e0 := g.Energy(masses, x)
package physics
