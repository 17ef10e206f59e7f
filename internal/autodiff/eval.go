package autodiff

import (
	"fmt"

	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/jet"
)

// Evaluator propagates time series through a graph. Coefficient k of every
// node is computed from coefficients 0..k of its operands in one forward
// pass over the arena. Series coefficients are jet polynomials over a
// common layout, so the evaluator yields values (degree 0), derivatives in
// the variables, or both.
type Evaluator struct {
	g      *Graph
	l      *jet.Layout
	order  int
	series [][]jet.Poly
	// aux holds the companion series: cos for sin nodes, sin for cos nodes,
	// 1+u² for atan nodes.
	aux [][]jet.Poly
}

// NewEvaluator prepares series storage for coefficients 0..order.
func NewEvaluator(g *Graph, l *jet.Layout, order int) (*Evaluator, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	e := &Evaluator{g: g, l: l, order: order}
	e.series = make([][]jet.Poly, len(g.nodes))
	e.aux = make([][]jet.Poly, len(g.nodes))
	for id, nd := range g.nodes {
		e.series[id] = e.zeros()
		switch nd.op {
		case OpSin, OpCos, OpAtan:
			e.aux[id] = e.zeros()
		}
	}
	return e, nil
}

func (e *Evaluator) zeros() []jet.Poly {
	s := make([]jet.Poly, e.order+1)
	for k := range s {
		s[k] = jet.Zero(e.l)
	}
	return s
}

func (e *Evaluator) Layout() *jet.Layout { return e.l }
func (e *Evaluator) Order() int          { return e.order }

// Reset starts a new expansion at time t with variable coefficients x as
// coefficient 0. Higher variable coefficients must be supplied through
// SetVarCoeff before the coefficients depending on them are computed.
func (e *Evaluator) Reset(t interval.Interval, x []jet.Poly) error {
	if len(x) != e.g.dimIn {
		return fmt.Errorf("%w: %d variables, graph has %d", ErrDimension, len(x), e.g.dimIn)
	}
	for id, nd := range e.g.nodes {
		for k := range e.series[id] {
			e.series[id][k] = jet.Zero(e.l)
		}
		switch nd.op {
		case OpConst, OpParam:
			e.series[id][0] = jet.Constant(e.l, nd.val)
		case OpTime:
			e.series[id][0] = jet.Constant(e.l, t)
			if e.order >= 1 {
				e.series[id][1] = jet.Constant(e.l, interval.Point(1))
			}
		case OpVar:
			e.series[id][0] = x[nd.idx]
		}
	}
	return nil
}

// SetVarCoeff sets coefficient k of variable i.
func (e *Evaluator) SetVarCoeff(i, k int, p jet.Poly) {
	e.series[e.g.vars[i]][k] = p
}

// Output returns coefficient k of output i.
func (e *Evaluator) Output(i, k int) jet.Poly {
	return e.series[e.g.outputs[i]][k]
}

// ComputeCoeff computes coefficient k of every derived node.
func (e *Evaluator) ComputeCoeff(k int) error {
	if k > e.order {
		return fmt.Errorf("autodiff: coefficient %d beyond order %d", k, e.order)
	}
	for id, nd := range e.g.nodes {
		if err := e.compute(id, nd, k); err != nil {
			return fmt.Errorf("autodiff: node %d (%s): %w", id, nd.op, err)
		}
	}
	return nil
}

func (e *Evaluator) compute(id int, nd node, k int) error {
	s := e.series
	r := s[id]
	var err error
	switch nd.op {
	case OpConst, OpParam, OpTime, OpVar:
	case OpAdd:
		r[k] = s[nd.a][k].Add(s[nd.b][k])
	case OpSub:
		r[k] = s[nd.a][k].Sub(s[nd.b][k])
	case OpNeg:
		r[k] = s[nd.a][k].Neg()
	case OpMul:
		r[k] = jet.MulCoeff(s[nd.a], s[nd.b], k)
	case OpDiv:
		if k == 0 {
			r[0], err = s[nd.a][0].Div(s[nd.b][0])
		} else {
			r[k], err = jet.DivCoeff(s[nd.a], s[nd.b], r, k)
		}
	case OpSqr:
		if k == 0 {
			r[0] = s[nd.a][0].Sqr()
		} else {
			r[k] = jet.SqrCoeff(s[nd.a], k)
		}
	case OpSqrt:
		if k == 0 {
			r[0], err = s[nd.a][0].Sqrt()
		} else {
			r[k], err = jet.SqrtCoeff(s[nd.a], r, k)
		}
	case OpExp:
		if k == 0 {
			r[0] = s[nd.a][0].Exp()
		} else {
			r[k] = jet.ExpCoeff(s[nd.a], r, k)
		}
	case OpLog:
		if k == 0 {
			r[0], err = s[nd.a][0].Log()
		} else {
			r[k], err = jet.LogCoeff(s[nd.a], r, k)
		}
	case OpSin:
		c := e.aux[id]
		if k == 0 {
			r[0], c[0] = s[nd.a][0].SinCos()
		} else {
			r[k], c[k] = jet.SinCosCoeff(s[nd.a], r, c, k)
		}
	case OpCos:
		sn := e.aux[id]
		if k == 0 {
			sn[0], r[0] = s[nd.a][0].SinCos()
		} else {
			sn[k], r[k] = jet.SinCosCoeff(s[nd.a], sn, r, k)
		}
	case OpAtan:
		w := e.aux[id]
		u := s[nd.a]
		if k == 0 {
			w[0] = u[0].Sqr().AddConst(interval.Point(1))
			r[0], err = u[0].Atan()
		} else {
			w[k] = jet.SqrCoeff(u, k)
			r[k], err = jet.AtanCoeff(u, w, r, k)
		}
	case OpPow:
		c := e.g.nodes[nd.b].val
		if k == 0 {
			r[0], err = s[nd.a][0].Pow(c)
		} else {
			r[k], err = jet.PowCoeff(s[nd.a], r, c, k)
		}
	default:
		err = fmt.Errorf("unknown op %s", nd.op)
	}
	return err
}
