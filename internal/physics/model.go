package physics

import (
	"errors"
	"fmt"

	"github.com/san-kum/rigsim/internal/autodiff"
	"github.com/san-kum/rigsim/internal/interval"
)

var ErrUnknownParam = errors.New("physics: unknown parameter")

// Model is an ODE x' = f(t, x) with named parameters.
type Model interface {
	Name() string
	StateDim() int
	DefaultState() []float64
	GetParams() map[string]float64
	SetParam(name string, value float64) error
	// Field builds the graph of f with the current parameters.
	Field() (*autodiff.Graph, error)
}

// Hamiltonian is implemented by models with an energy function.
type Hamiltonian interface {
	// EnergyField builds a graph from R^n to R.
	EnergyField() (*autodiff.Graph, error)
}

// vars gives model code access to the graph parameters by name.
type vars map[string]autodiff.Node

type body func(t autodiff.Node, x, out []autodiff.Node, p vars)

// build returns the graph R^dimIn -> R^dimOut of fn, with one graph
// parameter per name, set from values.
func build(dimIn, dimOut int, names []string, values map[string]float64, fn body) (*autodiff.Graph, error) {
	g, err := autodiff.FromFunc(dimIn, dimOut, len(names), func(t autodiff.Node, in, out, params []autodiff.Node) {
		p := make(vars, len(names))
		for i, n := range names {
			p[n] = params[i]
		}
		fn(t, in, out, p)
	})
	if err != nil {
		return nil, err
	}
	for i, n := range names {
		v, ok := values[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no value", ErrUnknownParam, n)
		}
		if err := g.SetParameter(i, interval.Point(v)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func unknown(model, name string) error {
	return fmt.Errorf("%w: %s has no %q", ErrUnknownParam, model, name)
}
