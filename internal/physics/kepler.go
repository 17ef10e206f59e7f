package physics

import "github.com/san-kum/rigsim/internal/autodiff"

// Kepler is the planar two-body problem in relative coordinates,
// r'' = -μ r |r|^{2e} with e = -3/2 for Newtonian gravity.
// State: [x, y, vx, vy]
type Kepler struct {
	Mu       float64
	Exponent float64
}

func NewKepler() *Kepler { return &Kepler{Mu: 1, Exponent: -1.5} }

func (k *Kepler) Name() string  { return "kepler" }
func (k *Kepler) StateDim() int { return 4 }

// DefaultState is the unit circular orbit.
func (k *Kepler) DefaultState() []float64 { return []float64{1, 0, 0, 1} }

var keplerParams = []string{"mu", "exponent"}

func (k *Kepler) Field() (*autodiff.Graph, error) {
	return build(4, 4, keplerParams, k.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		x, y := s[0], s[1]
		scale := p["mu"].Mul(x.Sqr().Add(y.Sqr()).Pow(p["exponent"])).Neg()
		out[0] = s[2]
		out[1] = s[3]
		out[2] = scale.Mul(x)
		out[3] = scale.Mul(y)
	})
}

// EnergyField returns |v|²/2 - μ/|r|.
func (k *Kepler) EnergyField() (*autodiff.Graph, error) {
	return build(4, 1, keplerParams, k.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		kinetic := s[2].Sqr().Add(s[3].Sqr()).MulConst(0.5)
		out[0] = kinetic.Sub(p["mu"].Div(s[0].Sqr().Add(s[1].Sqr()).Sqrt()))
	})
}

func (k *Kepler) GetParams() map[string]float64 {
	return map[string]float64{"mu": k.Mu, "exponent": k.Exponent}
}

func (k *Kepler) SetParam(name string, value float64) error {
	switch name {
	case "mu":
		k.Mu = value
	case "exponent":
		k.Exponent = value
	default:
		return unknown(k.Name(), name)
	}
	return nil
}
