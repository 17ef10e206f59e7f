package physics

import "github.com/san-kum/rigsim/internal/autodiff"

// CoupledPendulums implements two pendulums connected by a spring.
// State: [theta1, omega1, theta2, omega2]
type CoupledPendulums struct {
	l float64 // Pendulum length
	g float64 // Gravity
	k float64 // Spring constant (coupling strength)
	m float64 // Mass of each bob
}

func NewCoupledPendulums() *CoupledPendulums {
	return &CoupledPendulums{
		l: 1.0,
		g: 9.81,
		k: 20.0,
		m: 1.0,
	}
}

func (c *CoupledPendulums) Name() string            { return "coupled" }
func (c *CoupledPendulums) StateDim() int           { return 4 }
func (c *CoupledPendulums) DefaultState() []float64 { return []float64{0.5, 0.0, 0.0, 0.0} }

// Field uses a linear coupling k (θ2 - θ1) / m between the bobs.
func (c *CoupledPendulums) Field() (*autodiff.Graph, error) {
	return build(4, 4, []string{"l", "g", "k", "m"}, c.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		theta1, omega1, theta2, omega2 := s[0], s[1], s[2], s[3]
		coupling := p["k"].Mul(theta2.Sub(theta1)).Div(p["m"]).Div(p["l"])
		gl := p["g"].Div(p["l"])
		out[0] = omega1
		out[1] = coupling.Sub(gl.Mul(theta1.Sin()))
		out[2] = omega2
		out[3] = coupling.Add(gl.Mul(theta2.Sin())).Neg()
	})
}

func (c *CoupledPendulums) GetParams() map[string]float64 {
	return map[string]float64{
		"l": c.l,
		"g": c.g,
		"k": c.k,
		"m": c.m,
	}
}

func (c *CoupledPendulums) SetParam(name string, value float64) error {
	switch name {
	case "l":
		c.l = value
	case "g":
		c.g = value
	case "k":
		c.k = value
	case "m":
		c.m = value
	default:
		return unknown(c.Name(), name)
	}
	return nil
}
