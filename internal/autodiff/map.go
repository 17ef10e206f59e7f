package autodiff

import (
	"fmt"

	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/jet"
)

// Jet evaluates the graph at time t and point x with derivatives in the
// variables up to degree d.
func (g *Graph) Jet(t interval.Interval, x interval.Vector, d int) (*jet.Jet, error) {
	if len(x) != g.dimIn {
		return nil, fmt.Errorf("%w: point has %d coordinates, graph expects %d", ErrDimension, len(x), g.dimIn)
	}
	l := jet.NewLayout(g.dimIn, d)
	ev, err := NewEvaluator(g, l, 0)
	if err != nil {
		return nil, err
	}
	vars := make([]jet.Poly, g.dimIn)
	for i := range vars {
		vars[i] = jet.Variable(l, i, x[i])
	}
	if err := ev.Reset(t, vars); err != nil {
		return nil, err
	}
	if err := ev.ComputeCoeff(0); err != nil {
		return nil, err
	}
	out := make([]jet.Poly, g.dimOut)
	for i := range out {
		out[i] = ev.Output(i, 0)
	}
	return jet.FromPolys(out)
}

// Eval returns an enclosure of f(t, x).
func (g *Graph) Eval(t interval.Interval, x interval.Vector) (interval.Vector, error) {
	j, err := g.Jet(t, x, 0)
	if err != nil {
		return nil, err
	}
	return j.Values(), nil
}

// Derivative returns an enclosure of the Jacobian ∂f/∂x over the box x.
func (g *Graph) Derivative(t interval.Interval, x interval.Vector) (interval.Matrix, error) {
	j, err := g.Jet(t, x, 1)
	if err != nil {
		return interval.Matrix{}, err
	}
	return j.Jacobian(), nil
}
