// Package experiment assembles a rigorous integration from a configuration:
// the model and its parameters, the initial box, the solver and the
// metrics.
package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/config"
	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/dynset"
	"github.com/san-kum/rigsim/internal/integrators"
	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/physics"
	"github.com/san-kum/rigsim/internal/sim"
)

// maxVertexDim bounds the dimension for which Compare checks every vertex
// of the initial box.
const maxVertexDim = 6

type Experiment struct {
	cfg   *config.Config
	reg   *Registry
	model physics.Model
	field *autodiff.Graph
	box   interval.Vector
	log   *slog.Logger

	observers []dynamo.Observer
}

// New validates cfg and builds the model, its vector field and the initial
// box. A nil logger means slog.Default().
func New(cfg *config.Config, reg *Registry, log *slog.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	model, err := reg.GetModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	for name, v := range cfg.Params {
		if err := model.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	field, err := model.Field()
	if err != nil {
		return nil, fmt.Errorf("experiment: %s: %w", model.Name(), err)
	}
	box, err := cfg.InitialBox(model.DefaultState())
	if err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, reg: reg, model: model, field: field, box: box, log: log}, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }
func (e *Experiment) Model() physics.Model   { return e.model }
func (e *Experiment) Field() *autodiff.Graph { return e.field }
func (e *Experiment) Box() interval.Vector   { return e.box.Clone() }

// AddObserver registers an observer notified after every step of every
// run. Observers of split runs must be safe for concurrent use.
func (e *Experiment) AddObserver(o dynamo.Observer) { e.observers = append(e.observers, o) }

// InitialSet returns the initial box as a set at the start time.
func (e *Experiment) InitialSet() *dynset.Doubleton {
	return dynset.New(interval.Point(e.cfg.Start), e.box).WithPolicy(e.cfg.PolicyValue())
}

// NewSolver returns a fresh solver for the field.
func (e *Experiment) NewSolver() (*integrators.Taylor, error) {
	return integrators.NewTaylor(e.field, e.cfg.Solver.ToSolverConfig(), integrators.WithLogger(e.log))
}

// TimeMap returns a time map over a fresh solver with the default metrics
// and the registered observers.
func (e *Experiment) TimeMap() (*sim.TimeMap, error) {
	s, err := e.NewSolver()
	if err != nil {
		return nil, err
	}
	tm := sim.New(s)
	tm.SetLogger(e.log)
	ms, err := e.reg.DefaultMetrics(e.model, e.cfg.Start, e.box)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		tm.AddMetric(m)
	}
	for _, o := range e.observers {
		tm.AddObserver(o)
	}
	return tm, nil
}

// Outcome is the result of a run: Result for a single box, Cover for a
// split one.
type Outcome struct {
	Result *dynamo.Result
	Cover  *sim.CoverResult
}

// FinalBox returns the enclosure at the end time.
func (o *Outcome) FinalBox() interval.Vector {
	if o.Cover != nil {
		return o.Cover.Hull
	}
	if o.Result != nil {
		return o.Result.FinalBox()
	}
	return nil
}

// Steps returns the number of accepted steps over all parts.
func (o *Outcome) Steps() int {
	if o.Cover != nil {
		return o.Cover.Steps()
	}
	if o.Result != nil {
		return o.Result.StepsTaken
	}
	return 0
}

// Run integrates the initial box to the end time, splitting it into a
// parallel cover when the configuration asks for more than one part. A
// single-box run that fails returns its partial result with the error.
func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	if e.cfg.Parts > 1 {
		cover, err := sim.Cover(ctx, e.field, e.box, e.cfg.Parts, sim.CoverConfig{
			Solver:    e.cfg.Solver.ToSolverConfig(),
			Start:     e.cfg.Start,
			End:       e.cfg.End(),
			Policy:    e.cfg.PolicyValue(),
			Logger:    e.log,
			Observers: e.observers,
		})
		if err != nil {
			return nil, err
		}
		return &Outcome{Cover: cover}, nil
	}
	tm, err := e.TimeMap()
	if err != nil {
		return nil, err
	}
	res, err := tm.Run(ctx, e.InitialSet(), e.cfg.End())
	if res == nil {
		return nil, err
	}
	return &Outcome{Result: res}, err
}

// Comparison relates point solutions to a rigorous enclosure.
type Comparison struct {
	Enclosure interval.Vector
	// Points are RK4 solutions at the end time, started at the box center
	// and, for small dimensions, at every vertex of the box.
	Points [][]float64
	// Contained reports, per point, whether the enclosure holds it.
	Contained []bool
	// Distance is the largest distance from a point outside the enclosure
	// to it, or zero.
	Distance float64
}

// AllContained reports whether every point solution lies in the enclosure.
func (c *Comparison) AllContained() bool {
	for _, ok := range c.Contained {
		if !ok {
			return false
		}
	}
	return true
}

// Compare integrates the initial box rigorously and RK4 solutions with
// step dt from sample points of it, and checks containment.
func (e *Experiment) Compare(ctx context.Context, dt float64) (*Comparison, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("%w: rk4 step %g", dynamo.ErrInvalidConfig, dt)
	}
	out, err := e.Run(ctx)
	if err != nil {
		return nil, err
	}
	enc := out.FinalBox()
	cmp := &Comparison{Enclosure: enc}

	sys := integrators.NewPointSystem(e.field)
	rk := integrators.NewRK4()
	for _, x0 := range samplePoints(e.box) {
		x := rk.Integrate(sys, dynamo.State(x0), e.cfg.Start, e.cfg.End(), dt)
		cmp.Points = append(cmp.Points, x)
		ok := enc.Contains(x)
		cmp.Contained = append(cmp.Contained, ok)
		if !ok {
			cmp.Distance = math.Max(cmp.Distance, Excursion(enc, x))
		}
	}
	return cmp, nil
}

func samplePoints(box interval.Vector) [][]float64 {
	pts := [][]float64{box.Mid()}
	n := len(box)
	if n > maxVertexDim || box.MaxWidth() == 0 {
		return pts
	}
	for mask := 0; mask < 1<<n; mask++ {
		v := make([]float64, n)
		for i := range box {
			if mask&(1<<i) != 0 {
				v[i] = box[i].Hi()
			} else {
				v[i] = box[i].Lo()
			}
		}
		pts = append(pts, v)
	}
	return pts
}

// Excursion returns how far x lies outside box in the max norm; NaN
// coordinates count as infinitely far.
func Excursion(box interval.Vector, x []float64) float64 {
	d := 0.0
	for i, b := range box {
		switch {
		case x[i] < b.Lo():
			d = math.Max(d, b.Lo()-x[i])
		case x[i] > b.Hi():
			d = math.Max(d, x[i]-b.Hi())
		case math.IsNaN(x[i]):
			return math.Inf(1)
		}
	}
	return d
}
