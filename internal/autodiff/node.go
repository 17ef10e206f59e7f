package autodiff

import "github.com/san-kum/rigsim/internal/interval"

// Node is a handle to a graph node. Operations on nodes append new nodes to
// the owning graph; errors are recorded on the graph and reported by
// Graph.Validate.
type Node struct {
	g  *Graph
	id int
}

// ID returns the arena index.
func (n Node) ID() int { return n.id }

func (n Node) Graph() *Graph { return n.g }

func (n Node) unary(op Op) Node {
	return Node{n.g, n.g.push(node{op: op, a: n.id})}
}

func (n Node) binary(op Op, m Node) Node {
	if m.g != n.g {
		n.g.fail(ErrForeignNode)
		return n
	}
	return Node{n.g, n.g.push(node{op: op, a: n.id, b: m.id})}
}

func (n Node) Add(m Node) Node { return n.binary(OpAdd, m) }
func (n Node) Sub(m Node) Node { return n.binary(OpSub, m) }
func (n Node) Mul(m Node) Node { return n.binary(OpMul, m) }
func (n Node) Div(m Node) Node { return n.binary(OpDiv, m) }

func (n Node) Neg() Node  { return n.unary(OpNeg) }
func (n Node) Sqr() Node  { return n.unary(OpSqr) }
func (n Node) Sqrt() Node { return n.unary(OpSqrt) }
func (n Node) Exp() Node  { return n.unary(OpExp) }
func (n Node) Log() Node  { return n.unary(OpLog) }
func (n Node) Sin() Node  { return n.unary(OpSin) }
func (n Node) Cos() Node  { return n.unary(OpCos) }
func (n Node) Atan() Node { return n.unary(OpAtan) }

// AddConst returns n + c.
func (n Node) AddConst(c float64) Node { return n.Add(n.g.Const(c)) }

// MulConst returns c·n.
func (n Node) MulConst(c float64) Node { return n.Mul(n.g.Const(c)) }

// MulInterval returns v·n for an interval constant v.
func (n Node) MulInterval(v interval.Interval) Node { return n.Mul(n.g.ConstInterval(v)) }

// Pow returns n^e where e is a parameter or constant node.
func (n Node) Pow(e Node) Node {
	if e.g != n.g {
		n.g.fail(ErrForeignNode)
		return n
	}
	if op := n.g.nodes[e.id].op; op != OpParam && op != OpConst {
		n.g.fail(ErrExponent)
		return n
	}
	return n.binary(OpPow, e)
}

// PowInt returns n^k, expanded into squarings and products.
func (n Node) PowInt(k int) Node {
	if k < 0 {
		return n.g.Const(1).Div(n.PowInt(-k))
	}
	if k == 0 {
		return n.g.Const(1)
	}
	var acc Node
	have := false
	base := n
	for k > 0 {
		if k&1 == 1 {
			if have {
				acc = acc.Mul(base)
			} else {
				acc, have = base, true
			}
		}
		k >>= 1
		if k > 0 {
			base = base.Sqr()
		}
	}
	return acc
}
