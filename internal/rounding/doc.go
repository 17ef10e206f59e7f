// Package rounding provides IEEE-754 directed rounding for float64 without
// touching the floating-point unit's global rounding state.
//
// Every primitive computes the round-to-nearest result and an exact error
// term (TwoSum for sums, fused multiply-add residuals for products,
// quotients and square roots). The sign of the error decides whether the
// nearest result must be moved one ulp down or up, which yields exactly the
// result the hardware would produce in the requested mode.
//
//   - [Mode]: Nearest, Down and Up with Add, Sub, Mul, Div and Sqrt
//   - [Context]: a scoped, per-goroutine mode holder with guaranteed restore
//
// # Thread Safety
//
// [Mode] values are stateless and safe for concurrent use. A [Context] must
// not be shared between goroutines; give each solver its own.
package rounding
