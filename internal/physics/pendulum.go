package physics

import "github.com/san-kum/rigsim/internal/autodiff"

type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.81,
	}
}

func (p *Pendulum) Name() string            { return "pendulum" }
func (p *Pendulum) StateDim() int           { return 2 }
func (p *Pendulum) DefaultState() []float64 { return []float64{0.5, 0} }

var pendulumParams = []string{"mass", "length", "damping", "gravity"}

// Field returns θ' = ω, ω' = (-c ω - m g L sin θ) / (m L²).
func (p *Pendulum) Field() (*autodiff.Graph, error) {
	return build(2, 2, pendulumParams, p.GetParams(), func(_ autodiff.Node, x, out []autodiff.Node, v vars) {
		m, l := v["mass"], v["length"]
		torque := v["damping"].Mul(x[1]).Add(m.Mul(v["gravity"]).Mul(l).Mul(x[0].Sin()))
		out[0] = x[1]
		out[1] = torque.Neg().Div(m.Mul(l.Sqr()))
	})
}

// EnergyField returns m (L ω)²/2 + m g L (1 - cos θ).
func (p *Pendulum) EnergyField() (*autodiff.Graph, error) {
	return build(2, 1, pendulumParams, p.GetParams(), func(_ autodiff.Node, x, out []autodiff.Node, v vars) {
		m, l := v["mass"], v["length"]
		ke := m.Mul(l.Mul(x[1]).Sqr()).MulConst(0.5)
		pe := m.Mul(v["gravity"]).Mul(l).Mul(x[0].Cos().Neg().AddConst(1))
		out[0] = ke.Add(pe)
	})
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":    p.Mass,
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "length":
		p.Length = value
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	default:
		return unknown(p.Name(), name)
	}
	return nil
}
