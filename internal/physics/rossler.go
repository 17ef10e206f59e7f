package physics

import "github.com/san-kum/rigsim/internal/autodiff"

type Rossler struct{ a, b, c float64 }

func NewRossler() *Rossler                { return &Rossler{0.2, 0.2, 5.7} }
func (r *Rossler) Name() string            { return "rossler" }
func (r *Rossler) StateDim() int           { return 3 }
func (r *Rossler) DefaultState() []float64 { return []float64{1.0, 1.0, 1.0} }

// Field builds the Rossler attractor equations.
func (r *Rossler) Field() (*autodiff.Graph, error) {
	return build(3, 3, []string{"a", "b", "c"}, r.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		out[0] = s[1].Add(s[2]).Neg()
		out[1] = s[0].Add(p["a"].Mul(s[1]))
		out[2] = p["b"].Add(s[2].Mul(s[0].Sub(p["c"])))
	})
}

func (r *Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": r.a, "b": r.b, "c": r.c}
}

func (r *Rossler) SetParam(n string, v float64) error {
	switch n {
	case "a":
		r.a = v
	case "b":
		r.b = v
	case "c":
		r.c = v
	default:
		return unknown(r.Name(), n)
	}
	return nil
}
