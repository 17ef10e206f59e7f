package autodiff

import (
	"errors"
	"fmt"

	"github.com/san-kum/rigsim/internal/interval"
)

var (
	// ErrForeignNode indicates a node handle from another graph.
	ErrForeignNode = errors.New("autodiff: node belongs to another graph")

	// ErrExponent indicates a Pow exponent that is neither a parameter nor a constant.
	ErrExponent = errors.New("autodiff: pow exponent must be a parameter or constant")

	// ErrMissingOutput indicates an output that was never assigned.
	ErrMissingOutput = errors.New("autodiff: output not assigned")

	// ErrDimension indicates an argument of the wrong length.
	ErrDimension = errors.New("autodiff: dimension mismatch")
)

// Op is the kind of a graph node.
type Op uint8

const (
	OpConst Op = iota
	OpParam
	OpTime
	OpVar
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpSqr
	OpSqrt
	OpExp
	OpLog
	OpSin
	OpCos
	OpAtan
	OpPow
)

var opNames = [...]string{
	"const", "param", "time", "var", "add", "sub", "mul", "div", "neg",
	"sqr", "sqrt", "exp", "log", "sin", "cos", "atan", "pow",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", o)
}

// node operands always have smaller indices than the node itself, so the
// arena order is a topological order.
type node struct {
	op   Op
	a, b int
	idx  int
	val  interval.Interval
}

// Graph is an expression DAG for a vector field f(t, x; params) stored as an
// arena of nodes.
type Graph struct {
	nodes    []node
	dimIn    int
	dimOut   int
	dimParam int
	time     int
	vars     []int
	params   []int
	outputs  []int
	err      error
}

// NewGraph creates a graph with the time node, dimIn variables and dimParam
// parameters. Parameters start at zero.
func NewGraph(dimIn, dimOut, dimParam int) *Graph {
	g := &Graph{dimIn: dimIn, dimOut: dimOut, dimParam: dimParam}
	g.time = g.push(node{op: OpTime})
	for i := 0; i < dimIn; i++ {
		g.vars = append(g.vars, g.push(node{op: OpVar, idx: i}))
	}
	for i := 0; i < dimParam; i++ {
		g.params = append(g.params, g.push(node{op: OpParam, idx: i}))
	}
	g.outputs = make([]int, dimOut)
	for i := range g.outputs {
		g.outputs[i] = -1
	}
	return g
}

// FromFunc builds a graph by calling fn with the time node, the input
// variables, slots for the outputs and the parameters. fn assigns every
// out[i].
func FromFunc(dimIn, dimOut, dimParam int, fn func(t Node, in, out, params []Node)) (*Graph, error) {
	g := NewGraph(dimIn, dimOut, dimParam)
	in := make([]Node, dimIn)
	for i := range in {
		in[i] = g.Var(i)
	}
	params := make([]Node, dimParam)
	for i := range params {
		params[i] = g.Param(i)
	}
	out := make([]Node, dimOut)
	fn(g.Time(), in, out, params)
	for i, n := range out {
		if n.g == nil {
			return nil, fmt.Errorf("%w: %d", ErrMissingOutput, i)
		}
		g.SetOutput(i, n)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) push(n node) int {
	g.nodes = append(g.nodes, n)
	return len(g.nodes) - 1
}

func (g *Graph) DimIn() int    { return g.dimIn }
func (g *Graph) DimOut() int   { return g.dimOut }
func (g *Graph) DimParam() int { return g.dimParam }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

func (g *Graph) Time() Node     { return Node{g, g.time} }
func (g *Graph) Var(i int) Node { return Node{g, g.vars[i]} }

func (g *Graph) Param(i int) Node { return Node{g, g.params[i]} }

// Const returns a node for the exact constant c.
func (g *Graph) Const(c float64) Node {
	return g.ConstInterval(interval.Point(c))
}

// ConstInterval returns a node for an interval constant.
func (g *Graph) ConstInterval(v interval.Interval) Node {
	return Node{g, g.push(node{op: OpConst, val: v})}
}

// SetOutput marks n as output i.
func (g *Graph) SetOutput(i int, n Node) {
	if n.g != g {
		g.fail(ErrForeignNode)
		return
	}
	g.outputs[i] = n.id
}

// SetParameter assigns the interval value of parameter i.
func (g *Graph) SetParameter(i int, v interval.Interval) error {
	if i < 0 || i >= g.dimParam {
		return fmt.Errorf("%w: parameter %d of %d", ErrDimension, i, g.dimParam)
	}
	g.nodes[g.params[i]].val = v
	return nil
}

// Parameter returns the value of parameter i.
func (g *Graph) Parameter(i int) interval.Interval {
	return g.nodes[g.params[i]].val
}

// Parameters returns all parameter values in order.
func (g *Graph) Parameters() interval.Vector {
	v := make(interval.Vector, g.dimParam)
	for i := range v {
		v[i] = g.Parameter(i)
	}
	return v
}

// Clone returns an independent copy; parameters can then be changed without
// affecting g.
func (g *Graph) Clone() *Graph {
	c := *g
	c.nodes = append([]node(nil), g.nodes...)
	c.vars = append([]int(nil), g.vars...)
	c.params = append([]int(nil), g.params...)
	c.outputs = append([]int(nil), g.outputs...)
	return &c
}

// Err returns the first construction error.
func (g *Graph) Err() error { return g.err }

// Validate checks that construction succeeded and every output is assigned.
func (g *Graph) Validate() error {
	if g.err != nil {
		return g.err
	}
	for i, o := range g.outputs {
		if o < 0 {
			return fmt.Errorf("%w: %d", ErrMissingOutput, i)
		}
	}
	return nil
}

func (g *Graph) fail(err error) {
	if g.err == nil {
		g.err = err
	}
}
