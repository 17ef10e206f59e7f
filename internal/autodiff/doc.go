// Package autodiff represents vector fields as expression graphs and
// evaluates them in interval arithmetic together with their derivatives.
//
// A [Graph] is an arena of nodes. Each node refers to operands by index and
// operands are always created first, so evaluation is a single forward pass
// with no recursion. Fields are built either with [Node] methods or through
// [FromFunc]:
//
//	g, err := autodiff.FromFunc(2, 2, 1, func(t autodiff.Node, in, out, p []autodiff.Node) {
//		out[0] = in[1]
//		out[1] = p[0].Mul(in[0]).Neg()
//	})
//
// An [Evaluator] computes time-series coefficients of every node, which is
// what the Taylor solver needs; [Graph.Jet] covers the single-point case.
package autodiff
