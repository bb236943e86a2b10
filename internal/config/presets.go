package config

import (
	"math"
	"sort"
)

var Presets = map[string]*Config{
	"binary": {
		Name: "binary", G: 1, Dt: 0.01, Softening: 0, Steps: 2000, Integrator: "verlet",
		Bodies: []BodyConfig{
			{Mass: 1, Position: [2]float64{-1, 0}, Velocity: [2]float64{0, 0.3}},
			{Mass: 1, Position: [2]float64{1, 0}, Velocity: [2]float64{0, -0.3}},
		},
	},
	"threebody": {
		Name: "threebody", G: 1, Dt: 0.01, Softening: 1e-9, Steps: 1000, Integrator: "verlet",
		Bodies: []BodyConfig{
			{Mass: 1, Position: [2]float64{-1, 0}, Velocity: [2]float64{0, 0.3}},
			{Mass: 1, Position: [2]float64{1, 0}, Velocity: [2]float64{0, -0.3}},
			{Mass: 1, Position: [2]float64{0, 0}, Velocity: [2]float64{0, 0}},
		},
	},
	"circular": {
		Name: "circular", G: 1, Dt: 0.001, Softening: 0, Steps: 10000, Integrator: "verlet",
		Bodies: []BodyConfig{
			{Mass: 1, Position: [2]float64{-0.5, 0}, Velocity: [2]float64{0, -math.Sqrt2 / 2}},
			{Mass: 1, Position: [2]float64{0.5, 0}, Velocity: [2]float64{0, math.Sqrt2 / 2}},
		},
	},
	"figure8": {
		Name: "figure8", G: 1, Dt: 0.005, Softening: 0, Steps: 1264, Integrator: "verlet",
		Bodies: []BodyConfig{
			{Mass: 1, Position: [2]float64{-0.97000436, 0.24308753}, Velocity: [2]float64{0.466203685, 0.43236573}},
			{Mass: 1, Position: [2]float64{0.97000436, -0.24308753}, Velocity: [2]float64{0.466203685, 0.43236573}},
			{Mass: 1, Position: [2]float64{0, 0}, Velocity: [2]float64{-0.93240737, -0.86473146}},
		},
	},
	"sunplanet": {
		Name: "sunplanet", G: 1, Dt: 0.002, Softening: 1e-9, Steps: 5000, Integrator: "verlet",
		Bodies: []BodyConfig{
			{Mass: 1000, Position: [2]float64{0, 0}, Velocity: [2]float64{0, -0.0316227766}},
			{Mass: 1, Position: [2]float64{1, 0}, Velocity: [2]float64{0, 31.6227766}},
		},
	},
	"single": {
		Name: "single", G: 1, Dt: 0.01, Softening: 0, Steps: 100, Integrator: "verlet",
		Bodies: []BodyConfig{
			{Mass: 1, Position: [2]float64{-1, -1}, Velocity: [2]float64{0.5, 0.25}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if none exists.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
