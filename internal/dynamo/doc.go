// Package dynamo provides the shared vocabulary of the gravitational simulator.
//
// The package defines the types every other package speaks:
//
//   - [State]: positions and velocities of all bodies, in body order
//   - [Field]: acceleration calculator (positions, masses -> accelerations)
//   - [Integrator]: advances a [State] by one time step
//   - [Metric]: diagnostic accumulated over successive states
//
// # Errors
//
// Construction failures wrap [ErrInvalidConfiguration] in a [*ConfigError].
// Numerical divergence is never reported as an error; use [State.IsValid].
//
// # Example
//
//	g := physics.Gravity{G: 1}
//	x = integrators.NewVerlet().Step(g, masses, x, 0.01)
//	if !x.IsValid() {
//	    // diverged
//	}
package dynamo
