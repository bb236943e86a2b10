package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravsim/internal/dynamo"
)

var registry = map[string]func() dynamo.Integrator{
	"verlet":   func() dynamo.Integrator { return NewVerlet() },
	"leapfrog": func() dynamo.Integrator { return NewLeapfrog() },
	"euler":    func() dynamo.Integrator { return NewEuler() },
}

// New returns a fresh integrator registered under name.
func New(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownIntegrator, name, Names())
	}
	return fn(), nil
}

// Names lists the registered integrators in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
