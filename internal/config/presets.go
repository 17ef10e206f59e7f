package config

import "sort"

type presetSpec struct {
	duration float64
	radius   float64
	state    []float64
	order    int
	tol      float64
	parts    int
}

func (p presetSpec) build(model string) *Config {
	cfg := DefaultConfig()
	cfg.Model = model
	cfg.Duration = p.duration
	cfg.Radius = p.radius
	cfg.InitState = append([]float64(nil), p.state...)
	if p.order > 0 {
		cfg.Solver.Order = p.order
	}
	if p.tol > 0 {
		cfg.Solver.AbsTol, cfg.Solver.RelTol = p.tol, p.tol
	}
	if p.parts > 0 {
		cfg.Parts = p.parts
	}
	return cfg
}

var presets = map[string]map[string]presetSpec{
	"harmonic": {
		"half-turn": {duration: 3.141592653589793, radius: 0, state: []float64{1, 0}, order: 12, tol: 1e-12},
		"box":       {duration: 20, radius: 1e-3, state: []float64{1, 0}},
		"cover":     {duration: 10, radius: 0.1, state: []float64{1, 0}, parts: 4},
	},
	"pendulum": {
		"small":    {duration: 20, radius: 1e-6, state: []float64{0.2, 0}},
		"large":    {duration: 10, radius: 1e-6, state: []float64{2.5, 0}},
		"spinning": {duration: 5, radius: 1e-8, state: []float64{0.1, 8}},
	},
	"lorenz": {
		"classic": {duration: 2, radius: 1e-8, state: []float64{1, 1, 1}, order: 25},
		"long":    {duration: 10, radius: 1e-12, state: []float64{15, 15, 36}, order: 30, tol: 1e-16},
	},
	"rossler": {
		"attractor": {duration: 10, radius: 1e-6, state: []float64{0, -8.4, 0.02}},
	},
	"vanderpol": {
		"cycle": {duration: 7, radius: 1e-6, state: []float64{2, 0}},
	},
	"duffing": {
		"forced": {duration: 5, radius: 1e-6, state: []float64{1, 0}},
	},
	"kepler": {
		"circular":  {duration: 6.283185307179586, radius: 1e-10, state: []float64{1, 0, 0, 1}},
		"eccentric": {duration: 3, radius: 1e-10, state: []float64{1, 0, 0, 1.2}},
	},
	"rigidbody": {
		"tumble": {duration: 10, radius: 1e-6, state: []float64{0.1, 1, 0.1}},
	},
}

// GetPreset returns a fresh configuration for a named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := presets[model]
	if !ok {
		return nil
	}
	p, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return p.build(model)
}

func ListPresets(model string) []string {
	modelPresets, ok := presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
