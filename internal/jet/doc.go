// Package jet implements truncated multivariate Taylor polynomials with
// interval coefficients.
//
//   - [Multiindex], [Multipointer]: two encodings of a monomial
//   - [Layout]: graded enumeration of the monomials up to a degree
//   - [Poly]: one truncated polynomial, closed under arithmetic and the
//     elementary functions
//   - [Jet]: the expansion of a vector-valued map, one Poly per output
//
// The series recurrences in series.go are shared with the ODE solver, which
// runs them in time with Poly-valued coefficients.
package jet
