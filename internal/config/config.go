package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	DefaultG          = 1.0
	DefaultDt         = 0.01
	DefaultSoftening  = 1e-9
	DefaultSteps      = 1000
	DefaultIntegrator = "verlet"
)

// Config describes a scenario: initial bodies plus simulation parameters.
type Config struct {
	Name       string       `yaml:"name"`
	G          float64      `yaml:"g"`
	Dt         float64      `yaml:"dt"`
	Softening  float64      `yaml:"softening"`
	Steps      int          `yaml:"steps"`
	Integrator string       `yaml:"integrator"`
	Bodies     []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Mass     float64    `yaml:"mass"`
	Position [2]float64 `yaml:"position,flow"`
	Velocity [2]float64 `yaml:"velocity,flow"`
}

// DefaultConfig returns the parameters with no bodies.
func DefaultConfig() *Config {
	return &Config{
		Name:       "custom",
		G:          DefaultG,
		Dt:         DefaultDt,
		Softening:  DefaultSoftening,
		Steps:      DefaultSteps,
		Integrator: DefaultIntegrator,
	}
}

// Load reads a yaml scenario. Keys absent from the file keep their
// DefaultConfig values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate applies the simulation invariants plus a non-negative step count.
func (c *Config) Validate() error {
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
	}
	return sim.Validate(c.PhysicsBodies(), c.Params())
}

func (c *Config) Params() sim.Params {
	return sim.Params{G: c.G, Dt: c.Dt, Softening: c.Softening}
}

func (c *Config) PhysicsBodies() []physics.Body {
	bodies := make([]physics.Body, len(c.Bodies))
	for i, b := range c.Bodies {
		bodies[i] = physics.Body{
			Mass:     b.Mass,
			Position: r2.Vec{X: b.Position[0], Y: b.Position[1]},
			Velocity: r2.Vec{X: b.Velocity[0], Y: b.Velocity[1]},
		}
	}
	return bodies
}

// Clone returns a deep copy, so presets can be customised without touching
// the shared table.
func (c *Config) Clone() *Config {
	cp := *c
	cp.Bodies = append([]BodyConfig(nil), c.Bodies...)
	return &cp
}
