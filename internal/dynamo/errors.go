package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidConfiguration indicates bodies or parameters that violate
	// the simulation invariants. Returned at construction only.
	ErrInvalidConfiguration = errors.New("dynamo: invalid configuration")

	// ErrStopped indicates a step was requested after the simulation was stopped.
	ErrStopped = errors.New("dynamo: simulation stopped")

	// ErrUnknownIntegrator indicates an integrator name with no registered implementation.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")
)

// ConfigError wraps ErrInvalidConfiguration with the offending field.
// Index is the body index, or -1 for global parameters.
type ConfigError struct {
	Field  string
	Index  int
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: body %d: %s %s (got %v)", ErrInvalidConfiguration, e.Index, e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("%s: %s %s (got %v)", ErrInvalidConfiguration, e.Field, e.Reason, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}
