// Package automation runs batches of rigorous integrations: YAML
// scenarios, sweeps over solver settings, and randomized containment
// checks against point solutions.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigsim/internal/config"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/experiment"
	"github.com/san-kum/rigsim/internal/integrators"
)

// Scenario defines a scripted sequence of integrations.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single integration; fields left out of the YAML keep
// the values of config.DefaultConfig.
type ScenarioStep struct {
	Config *config.Config
	SaveAs string
}

func (s *ScenarioStep) UnmarshalYAML(n *yaml.Node) error {
	cfg := config.DefaultConfig()
	if err := n.Decode(cfg); err != nil {
		return err
	}
	var extra struct {
		SaveAs string `yaml:"save_as"`
	}
	if err := n.Decode(&extra); err != nil {
		return err
	}
	s.Config, s.SaveAs = cfg, extra.SaveAs
	return nil
}

// LoadScenario loads a scenario from a YAML file and validates every step.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("automation: %s: scenario has no steps", path)
	}
	for i, step := range scenario.Steps {
		if err := step.Config.Validate(); err != nil {
			return nil, fmt.Errorf("automation: %s step %d: %w", path, i+1, err)
		}
	}

	return &scenario, nil
}

// StepResult is the outcome of one scenario step. Err holds an
// integration failure; Outcome may still hold the partial result.
type StepResult struct {
	Step    ScenarioStep
	Outcome *experiment.Outcome
	Err     error
}

// RunScenario executes all steps in order. Integration failures are
// recorded and the scenario continues; a step that cannot be set up, or a
// cancelled context, stops it.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, log *slog.Logger) ([]StepResult, error) {
	if log == nil {
		log = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "model", step.Config.Model)

		exp, err := experiment.New(step.Config, registry, log)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		out, err := exp.Run(ctx)
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		results = append(results, StepResult{Step: step, Outcome: out, Err: err})
	}

	return results, nil
}

// Sweep is a grid of solver settings.
type Sweep struct {
	Orders     []int
	Tolerances []float64
}

// SweepPoint is the outcome of one setting of a sweep.
type SweepPoint struct {
	Order     int
	Tolerance float64
	Width     float64
	Steps     int
	Elapsed   time.Duration
	Err       error
}

// RunSweep integrates base once per order and tolerance and returns every
// point together with the one of narrowest final enclosure. The best
// point is nil when every setting failed.
func RunSweep(ctx context.Context, base *config.Config, registry *experiment.Registry, sweep Sweep, log *slog.Logger) ([]SweepPoint, *SweepPoint, error) {
	if len(sweep.Orders) == 0 || len(sweep.Tolerances) == 0 {
		return nil, nil, fmt.Errorf("%w: empty sweep", dynamo.ErrInvalidConfig)
	}
	points := make([]SweepPoint, 0, len(sweep.Orders)*len(sweep.Tolerances))
	best := -1

	for _, order := range sweep.Orders {
		for _, tol := range sweep.Tolerances {
			cfg := *base
			cfg.Solver.Order = order
			cfg.Solver.AbsTol = tol
			cfg.Solver.RelTol = tol

			p := SweepPoint{Order: order, Tolerance: tol, Width: math.Inf(1)}
			exp, err := experiment.New(&cfg, registry, log)
			if err != nil {
				return nil, nil, err
			}
			began := time.Now()
			out, err := exp.Run(ctx)
			p.Elapsed = time.Since(began)
			if ctx.Err() != nil {
				return points, nil, ctx.Err()
			}
			p.Err = err
			if out != nil {
				p.Steps = out.Steps()
			}
			if err == nil {
				p.Width = out.FinalBox().MaxWidth()
				if best < 0 || p.Width < points[best].Width {
					best = len(points)
				}
			}
			points = append(points, p)
		}
	}

	if best < 0 {
		return points, nil, nil
	}
	return points, &points[best], nil
}

// MonteCarloConfig defines a randomized containment check.
type MonteCarloConfig struct {
	Trials int
	// Step is the RK4 step of the point solutions.
	Step float64
	Seed int64
}

// MonteCarloResult holds the point solutions of a containment check.
type MonteCarloResult struct {
	Starts   [][]float64
	Finals   []dynamo.State
	Escaped  int
	Distance float64
}

// RunMonteCarlo integrates the experiment's box rigorously, then RK4
// solutions from uniformly random points of the box, and counts the ones
// ending outside the enclosure.
func RunMonteCarlo(ctx context.Context, exp *experiment.Experiment, cfg MonteCarloConfig) (*MonteCarloResult, error) {
	if cfg.Trials < 1 || cfg.Step <= 0 {
		return nil, fmt.Errorf("%w: %d trials with step %g", dynamo.ErrInvalidConfig, cfg.Trials, cfg.Step)
	}
	out, err := exp.Run(ctx)
	if err != nil {
		return nil, err
	}
	enc := out.FinalBox()

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	box := exp.Box()
	c := exp.Config()
	sys := integrators.NewPointSystem(exp.Field())
	rk := integrators.NewRK4()
	res := &MonteCarloResult{}

	for trial := 0; trial < cfg.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		x0 := make([]float64, len(box))
		for i, b := range box {
			x0[i] = b.Lo() + rng.Float64()*b.Width()
		}
		x := rk.Integrate(sys, x0, c.Start, c.End(), cfg.Step)
		res.Starts = append(res.Starts, x0)
		res.Finals = append(res.Finals, x)
		if !enc.Contains(x) {
			res.Escaped++
			res.Distance = math.Max(res.Distance, experiment.Excursion(enc, x))
		}
	}
	return res, nil
}
