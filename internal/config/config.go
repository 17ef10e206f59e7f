package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/interval"
)

const (
	DefaultModel    = "harmonic"
	DefaultDuration = 10.0
	DefaultRadius   = 1e-6
	DefaultParts    = 1
)

// Config describes one rigorous integration.
type Config struct {
	Model    string  `yaml:"model" validate:"required"`
	Start    float64 `yaml:"start"`
	Duration float64 `yaml:"duration" validate:"gt=0"`
	// InitState is the center of the initial box; empty means the model
	// default.
	InitState []float64 `yaml:"init_state,omitempty"`
	// Radius is the half width of the initial box in every coordinate.
	Radius float64            `yaml:"radius" validate:"gte=0"`
	Params map[string]float64 `yaml:"params,omitempty"`
	// Parts splits the initial box per coordinate for a parallel cover.
	Parts  int          `yaml:"parts" validate:"gte=1,lte=16"`
	Policy string       `yaml:"policy" validate:"oneof=qr identity"`
	Solver SolverConfig `yaml:"solver"`
}

// SolverConfig is the YAML form of dynamo.Config.
type SolverConfig struct {
	Order         int     `yaml:"order"`
	Step          float64 `yaml:"step"`
	Adaptive      bool    `yaml:"adaptive"`
	AbsTol        float64 `yaml:"abs_tol"`
	RelTol        float64 `yaml:"rel_tol"`
	Safety        float64 `yaml:"safety"`
	MaxGrowth     float64 `yaml:"max_growth"`
	MinShrink     float64 `yaml:"min_shrink"`
	MinStep       float64 `yaml:"min_step"`
	MaxStep       float64 `yaml:"max_step"`
	MaxRejections int     `yaml:"max_rejections"`
	LastTerms     int     `yaml:"last_terms"`
}

func fromSolver(c dynamo.Config) SolverConfig {
	return SolverConfig{
		Order:         c.Order,
		Step:          c.Step,
		Adaptive:      c.Adaptive,
		AbsTol:        c.AbsTol,
		RelTol:        c.RelTol,
		Safety:        c.Safety,
		MaxGrowth:     c.MaxGrowth,
		MinShrink:     c.MinShrink,
		MinStep:       c.MinStep,
		MaxStep:       c.MaxStep,
		MaxRejections: c.MaxRejections,
		LastTerms:     c.LastTerms,
	}
}

// ToSolverConfig converts to the solver settings.
func (s SolverConfig) ToSolverConfig() dynamo.Config {
	return dynamo.Config{
		Order:         s.Order,
		Step:          s.Step,
		Adaptive:      s.Adaptive,
		AbsTol:        s.AbsTol,
		RelTol:        s.RelTol,
		Safety:        s.Safety,
		MaxGrowth:     s.MaxGrowth,
		MinShrink:     s.MinShrink,
		MinStep:       s.MinStep,
		MaxStep:       s.MaxStep,
		MaxRejections: s.MaxRejections,
		LastTerms:     s.LastTerms,
	}
}

func DefaultConfig() *Config {
	solver := dynamo.DefaultConfig()
	solver.AbsTol = 1e-14
	solver.RelTol = 1e-14
	return &Config{
		Model:    DefaultModel,
		Duration: DefaultDuration,
		Radius:   DefaultRadius,
		Parts:    DefaultParts,
		Policy:   dynset.QR.String(),
		Solver:   fromSolver(solver),
	}
}

// Validate checks the run and solver settings.
func (c *Config) Validate() error {
	if err := dynamo.ValidateStruct(c); err != nil {
		return err
	}
	return c.Solver.ToSolverConfig().Validate()
}

// PolicyValue returns the parsed basis policy.
func (c *Config) PolicyValue() dynset.Policy {
	p, _ := dynset.ParsePolicy(c.Policy)
	return p
}

// End returns the final time of the run.
func (c *Config) End() float64 { return c.Start + c.Duration }

// InitialBox returns the box of radius Radius around InitState, or around
// fallback when InitState is empty.
func (c *Config) InitialBox(fallback []float64) (interval.Vector, error) {
	center := c.InitState
	if len(center) == 0 {
		center = fallback
	}
	if len(fallback) > 0 && len(center) != len(fallback) {
		return nil, fmt.Errorf("%w: init_state has %d coordinates, model %s has %d", dynamo.ErrDimensionMismatch, len(center), c.Model, len(fallback))
	}
	return interval.BoxAround(center, c.Radius), nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
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
