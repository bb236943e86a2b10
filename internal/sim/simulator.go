package sim

import (
	"io"
	"iter"
	"math"

	"github.com/charmbracelet/log"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/physics"
)

// Simulation owns the state of a fixed set of bodies and advances it one
// time step at a time. It is not safe for concurrent use; readers must go
// through Snapshot.
type Simulation struct {
	params     Params
	field      physics.Gravity
	integrator dynamo.Integrator
	logger     *log.Logger

	masses []float64
	state  dynamo.State
	steps  int
	phase  Phase

	diverged bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithIntegrator replaces the default velocity-Verlet integrator. A nil
// integrator keeps the default.
func WithIntegrator(integ dynamo.Integrator) Option {
	return func(s *Simulation) {
		if integ != nil {
			s.integrator = integ
		}
	}
}

// WithLogger sets the logger used for lifecycle and divergence events. A
// nil logger keeps the discard default.
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New validates bodies and params and returns a simulation in the Created
// phase. The bodies slice is copied.
func New(bodies []physics.Body, params Params, opts ...Option) (*Simulation, error) {
	if err := Validate(bodies, params); err != nil {
		return nil, err
	}

	masses, state := physics.Split(bodies)
	s := &Simulation{
		params:     params,
		field:      physics.Gravity{G: params.G, Softening: params.Softening},
		integrator: integrators.NewVerlet(),
		logger:     log.New(io.Discard),
		masses:     masses,
		state:      state,
		phase:      Created,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.logger.Debug("simulation created",
		"bodies", len(bodies),
		"integrator", s.integrator.Name(),
		"G", params.G,
		"dt", params.Dt,
		"eps", params.Softening,
	)
	return s, nil
}

// Validate checks bodies and params against the simulation invariants.
// Every failure wraps dynamo.ErrInvalidConfiguration.
func Validate(bodies []physics.Body, params Params) error {
	if len(bodies) == 0 {
		return &dynamo.ConfigError{Field: "bodies", Index: -1, Value: 0, Reason: "must not be empty"}
	}
	if !(params.Dt > 0) || math.IsInf(params.Dt, 0) {
		return &dynamo.ConfigError{Field: "dt", Index: -1, Value: params.Dt, Reason: "must be positive and finite"}
	}
	if math.IsNaN(params.G) || math.IsInf(params.G, 0) {
		return &dynamo.ConfigError{Field: "G", Index: -1, Value: params.G, Reason: "must be finite"}
	}
	if !(params.Softening >= 0) || math.IsInf(params.Softening, 0) {
		return &dynamo.ConfigError{Field: "softening", Index: -1, Value: params.Softening, Reason: "must be non-negative and finite"}
	}

	for i, b := range bodies {
		if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
			return &dynamo.ConfigError{Field: "mass", Index: i, Value: b.Mass, Reason: "must be positive and finite"}
		}
		if !dynamo.IsFinite(b.Position) {
			return &dynamo.ConfigError{Field: "position", Index: i, Value: nonFinite(b.Position.X, b.Position.Y), Reason: "must be finite"}
		}
		if !dynamo.IsFinite(b.Velocity) {
			return &dynamo.ConfigError{Field: "velocity", Index: i, Value: nonFinite(b.Velocity.X, b.Velocity.Y), Reason: "must be finite"}
		}
	}
	return nil
}

func nonFinite(x, y float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return y
}

// Step advances the simulation by exactly one dt, mutating body state in
// place. Non-finite results are not an error; see IsHealthy.
func (s *Simulation) Step() error {
	if s.phase == Stopped {
		return dynamo.ErrStopped
	}
	s.phase = Running

	next := s.integrator.Step(s.field, s.masses, s.state, s.params.Dt)
	s.state.CopyFrom(next)
	s.steps++

	if !s.diverged && !s.state.IsValid() {
		s.diverged = true
		s.logger.Warn("simulation diverged", "step", s.steps, "time", s.Time())
	}
	return nil
}

// Snapshot returns a deep copy of the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Step:  s.steps,
		Time:  s.Time(),
		State: s.state.Clone(),
	}
}

// Run returns a lazy sequence of n snapshots, stepping once before each.
// The sequence can be consumed once; ranging over it again yields nothing.
// Breaking out of the loop stops stepping immediately.
func (s *Simulation) Run(n int) iter.Seq[Snapshot] {
	consumed := false
	return func(yield func(Snapshot) bool) {
		if consumed {
			return
		}
		consumed = true

		for i := 0; i < n; i++ {
			if err := s.Step(); err != nil {
				return
			}
			if !yield(s.Snapshot()) {
				return
			}
		}
	}
}

// IsHealthy reports whether every position and velocity component is
// finite. Stepping continues regardless.
func (s *Simulation) IsHealthy() bool {
	return s.state.IsValid()
}

// Stop moves the simulation to the Stopped phase. Further steps fail with
// dynamo.ErrStopped.
func (s *Simulation) Stop() {
	if s.phase != Stopped {
		s.logger.Debug("simulation stopped", "step", s.steps)
	}
	s.phase = Stopped
}

func (s *Simulation) Phase() Phase { return s.phase }

// Steps is the number of completed steps.
func (s *Simulation) Steps() int { return s.steps }

// Time is the simulated time, steps·dt.
func (s *Simulation) Time() float64 { return float64(s.steps) * s.params.Dt }

func (s *Simulation) Len() int { return len(s.masses) }

func (s *Simulation) Params() Params { return s.params }

func (s *Simulation) Integrator() string { return s.integrator.Name() }

// Masses returns a copy of the body masses in input order.
func (s *Simulation) Masses() []float64 {
	m := make([]float64, len(s.masses))
	copy(m, s.masses)
	return m
}

// Field returns the gravitational field the simulation integrates.
func (s *Simulation) Field() physics.Gravity { return s.field }

// Bodies returns a copy of the current bodies.
func (s *Simulation) Bodies() []physics.Body {
	return physics.Join(s.masses, s.state.Clone())
}
