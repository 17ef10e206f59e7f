package physics

import "github.com/san-kum/rigsim/internal/autodiff"

// Duffing implements a nonlinear oscillator forced in time:
// x'' + δ x' + α x + β x³ = γ cos(ω t).
type Duffing struct {
	Alpha, Beta, Delta, Gamma, Omega float64
}

func NewDuffing() *Duffing {
	return &Duffing{-1.0, 1.0, 0.3, 0.5, 1.2}
}

func (d *Duffing) Name() string            { return "duffing" }
func (d *Duffing) StateDim() int           { return 2 }
func (d *Duffing) DefaultState() []float64 { return []float64{1.0, 0.0} }

var duffingParams = []string{"alpha", "beta", "delta", "gamma", "omega"}

func (d *Duffing) Field() (*autodiff.Graph, error) {
	return build(2, 2, duffingParams, d.GetParams(), func(t autodiff.Node, s, out []autodiff.Node, p vars) {
		x, v := s[0], s[1]
		restoring := p["delta"].Mul(v).Add(p["alpha"].Mul(x)).Add(p["beta"].Mul(x.PowInt(3)))
		out[0] = v
		out[1] = p["gamma"].Mul(p["omega"].Mul(t).Cos()).Sub(restoring)
	})
}

// EnergyField returns the energy of the unforced oscillator,
// v²/2 + α x²/2 + β x⁴/4.
func (d *Duffing) EnergyField() (*autodiff.Graph, error) {
	return build(2, 1, duffingParams, d.GetParams(), func(_ autodiff.Node, s, out []autodiff.Node, p vars) {
		x, v := s[0], s[1]
		x2 := x.Sqr()
		out[0] = v.Sqr().MulConst(0.5).Add(p["alpha"].Mul(x2).MulConst(0.5)).Add(p["beta"].Mul(x2.Sqr()).MulConst(0.25))
	})
}

func (d *Duffing) GetParams() map[string]float64 {
	return map[string]float64{"alpha": d.Alpha, "beta": d.Beta, "delta": d.Delta, "gamma": d.Gamma, "omega": d.Omega}
}

func (d *Duffing) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		d.Alpha = v
	case "beta":
		d.Beta = v
	case "delta":
		d.Delta = v
	case "gamma":
		d.Gamma = v
	case "omega":
		d.Omega = v
	default:
		return unknown(d.Name(), n)
	}
	return nil
}
