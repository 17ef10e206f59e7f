package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/rigsim/internal/dynamo"
	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/metrics"
	"github.com/san-kum/rigsim/internal/physics"
)

var ErrUnknownModel = errors.New("experiment: unknown model")

// DefaultStabilityWidth is the enclosure width above which a step counts
// as unstable in the default metrics.
const DefaultStabilityWidth = 1e-3

// Registry maps model names to constructors.
type Registry struct {
	models map[string]func() physics.Model
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]func() physics.Model)}

	r.Register("harmonic", func() physics.Model { return physics.NewHarmonic() })
	r.Register("pendulum", func() physics.Model { return physics.NewPendulum() })
	r.Register("coupled", func() physics.Model { return physics.NewCoupledPendulums() })
	r.Register("decay", func() physics.Model { return physics.NewDecay() })
	r.Register("doublewell", func() physics.Model { return physics.NewDoubleWell() })
	r.Register("duffing", func() physics.Model { return physics.NewDuffing() })
	r.Register("kepler", func() physics.Model { return physics.NewKepler() })
	r.Register("lorenz", func() physics.Model { return physics.NewLorenz() })
	r.Register("rossler", func() physics.Model { return physics.NewRossler() })
	r.Register("vanderpol", func() physics.Model { return physics.NewVanDerPol() })
	r.Register("rigidbody", func() physics.Model { return physics.NewRigidBody() })
	r.Register("threebody", func() physics.Model { return physics.NewThreeBody() })

	return r
}

// Register adds or replaces a model constructor.
func (r *Registry) Register(name string, fn func() physics.Model) {
	r.models[name] = fn
}

func (r *Registry) GetModel(name string) (physics.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns the metrics of a run of model from box at t0. An
// energy metric is included when the model has an energy function.
func (r *Registry) DefaultMetrics(model physics.Model, t0 float64, box interval.Vector) ([]dynamo.Metric, error) {
	ms := []dynamo.Metric{
		metrics.NewStability(DefaultStabilityWidth),
		metrics.NewMaxWidth(),
		metrics.NewStepStats(),
	}
	h, ok := model.(physics.Hamiltonian)
	if !ok {
		return ms, nil
	}
	field, err := h.EnergyField()
	if err != nil {
		return nil, err
	}
	e, err := metrics.NewEnergy(field, interval.Point(t0), box)
	if err != nil {
		return nil, fmt.Errorf("experiment: initial energy of %s: %w", model.Name(), err)
	}
	return append(ms, e), nil
}
