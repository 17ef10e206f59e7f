// Package physics provides vector fields for the validated solver.
//
// Each model implements [Model]: it reports its dimension, default initial
// state and parameters, and builds an expression graph of its right-hand
// side with the parameters as graph parameters:
//
//   - [Harmonic]: linear oscillator, the reference problem
//   - [Pendulum], [CoupledPendulums]: nonlinear pendulums
//   - [Lorenz], [Rossler]: chaotic attractors
//   - [VanDerPol], [Duffing], [DoubleWell]: nonlinear oscillators, Duffing forced in time
//   - [Kepler], [ThreeBody]: gravitational problems using fractional powers
//   - [RigidBody]: torque-free Euler equations
//   - [Decay]: scalar exponential decay
//
// Models with a conserved or monitored quantity also implement
// [Hamiltonian], whose energy graph lets a run check the enclosure against
// the initial energy:
//
//	m := physics.NewPendulum()
//	if h, ok := m.(physics.Hamiltonian); ok {
//	    e, _ := h.EnergyField()
//	    energy, _ := e.Eval(interval.Point(0), box)
//	}
package physics
