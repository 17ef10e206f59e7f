package physics

import "github.com/san-kum/rigsim/internal/autodiff"

// VanDerPol implements the Van der Pol oscillator.
// State: [x, y] where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = μ(1 - x²)y - x
type VanDerPol struct {
	mu float64 // Nonlinearity parameter
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{
		mu: 1.0, // Classic value for limit cycle
	}
}

func (v *VanDerPol) Name() string            { return "vanderpol" }
func (v *VanDerPol) StateDim() int           { return 2 }
func (v *VanDerPol) DefaultState() []float64 { return []float64{2.0, 0.0} }

func (v *VanDerPol) Field() (*autodiff.Graph, error) {
	return build(2, 2, []string{"mu"}, v.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		x, y := s[0], s[1]
		out[0] = y
		out[1] = p["mu"].Mul(x.Sqr().Neg().AddConst(1)).Mul(y).Sub(x)
	})
}

func (v *VanDerPol) GetParams() map[string]float64 {
	return map[string]float64{
		"mu": v.mu,
	}
}

func (v *VanDerPol) SetParam(name string, value float64) error {
	if name != "mu" {
		return unknown(v.Name(), name)
	}
	v.mu = value
	return nil
}
