package physics

import (
	"math"

	"github.com/san-kum/rigsim/internal/autodiff"
)

// DoubleWell models a particle in the bistable potential A (x² - B)².
type DoubleWell struct {
	A, B, Mass, Damping float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{1.0, 1.0, 1.0, 0.1}
}

func (d *DoubleWell) Name() string            { return "doublewell" }
func (d *DoubleWell) StateDim() int           { return 2 }
func (d *DoubleWell) DefaultState() []float64 { return []float64{math.Sqrt(d.B) + 0.1, 0} }

var doubleWellParams = []string{"A", "B", "mass", "damping"}

func (d *DoubleWell) Field() (*autodiff.Graph, error) {
	return build(2, 2, doubleWellParams, d.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		x, v := s[0], s[1]
		force := p["A"].MulConst(4).Mul(x).Mul(x.Sqr().Sub(p["B"])).Add(p["damping"].Mul(v))
		out[0] = v
		out[1] = force.Neg().Div(p["mass"])
	})
}

func (d *DoubleWell) EnergyField() (*autodiff.Graph, error) {
	return build(2, 1, doubleWellParams, d.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		x, v := s[0], s[1]
		out[0] = p["mass"].Mul(v.Sqr()).MulConst(0.5).Add(p["A"].Mul(x.Sqr().Sub(p["B"]).Sqr()))
	})
}

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"A": d.A, "B": d.B, "mass": d.Mass, "damping": d.Damping}
}

func (d *DoubleWell) SetParam(n string, v float64) error {
	switch n {
	case "A":
		d.A = v
	case "B":
		d.B = v
	case "mass":
		d.Mass = v
	case "damping":
		d.Damping = v
	default:
		return unknown(d.Name(), n)
	}
	return nil
}
