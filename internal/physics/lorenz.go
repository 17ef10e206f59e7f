package physics

import "github.com/san-kum/rigsim/internal/autodiff"

type Lorenz struct{ sigma, rho, beta float64 }

func NewLorenz() *Lorenz                 { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }
func (l *Lorenz) Name() string            { return "lorenz" }
func (l *Lorenz) StateDim() int           { return 3 }
func (l *Lorenz) DefaultState() []float64 { return []float64{1.0, 1.0, 1.0} }

// Field builds the Lorenz attractor equations.
func (l *Lorenz) Field() (*autodiff.Graph, error) {
	return build(3, 3, []string{"sigma", "rho", "beta"}, l.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		out[0] = p["sigma"].Mul(s[1].Sub(s[0]))
		out[1] = s[0].Mul(p["rho"].Sub(s[2])).Sub(s[1])
		out[2] = s[0].Mul(s[1]).Sub(p["beta"].Mul(s[2]))
	})
}

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}

func (l *Lorenz) SetParam(n string, v float64) error {
	switch n {
	case "sigma":
		l.sigma = v
	case "rho":
		l.rho = v
	case "beta":
		l.beta = v
	default:
		return unknown(l.Name(), n)
	}
	return nil
}
