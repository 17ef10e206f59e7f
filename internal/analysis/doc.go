// Package analysis characterizes integrations after the fact.
//
//   - [GrowthRate]: exponential growth rate of enclosure widths
//   - [LyapunovExponent]: largest Lyapunov exponent of point solutions
//   - [Spectrum]: power spectrum of a coordinate of the enclosure centers
//
// A growth rate well above the largest Lyapunov exponent means the
// enclosures wrap faster than the flow itself separates trajectories:
//
//	rate, _ := analysis.GrowthRate(times, widths)
//	lambda := analysis.LyapunovExponent(sys, x0, 0, 10, 1e-3, 1e-8)
//	if rate > lambda+1 {
//	    // try a higher order or the qr policy
//	}
package analysis
