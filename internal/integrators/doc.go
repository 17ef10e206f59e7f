// Package integrators advances sets of initial conditions along the flow of
// an ODE. Taylor is the validated solver: each step finds an a priori
// enclosure, bounds the Lagrange remainder and moves a doubleton set. RK4
// is a plain point integrator used to compare against.
package integrators
