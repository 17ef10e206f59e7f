package analysis

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum resamples values, sampled at increasing times, onto n uniform
// points by linear interpolation and returns the frequencies and powers
// of the first n/2 bins. The mean is removed first.
func Spectrum(times, values []float64, n int) (freqs, power []float64, err error) {
	if len(times) < 2 || len(times) != len(values) || n < 4 {
		return nil, nil, ErrTooFewSamples
	}
	t0, t1 := times[0], times[len(times)-1]
	if !(t1 > t0) {
		return nil, nil, ErrTooFewSamples
	}

	dt := (t1 - t0) / float64(n)
	grid := make([]float64, n)
	mean := 0.0
	for i := range grid {
		grid[i] = interpolate(times, values, t0+float64(i)*dt)
		mean += grid[i]
	}
	mean /= float64(n)
	for i := range grid {
		grid[i] -= mean
	}

	coeffs := fft.FFTReal(grid)
	freqs = make([]float64, n/2)
	power = make([]float64, n/2)
	for k := range power {
		freqs[k] = float64(k) / (t1 - t0)
		a := cmplx.Abs(coeffs[k])
		power[k] = a * a / float64(n)
	}
	return freqs, power, nil
}

// DominantFrequency returns the frequency of the strongest non-zero bin.
func DominantFrequency(freqs, power []float64) float64 {
	best, f := math.Inf(-1), 0.0
	for k := 1; k < len(power); k++ {
		if power[k] > best {
			best, f = power[k], freqs[k]
		}
	}
	return f
}

func interpolate(ts, vs []float64, t float64) float64 {
	i := sort.SearchFloat64s(ts, t)
	switch {
	case i == 0:
		return vs[0]
	case i >= len(ts):
		return vs[len(vs)-1]
	}
	a, b := ts[i-1], ts[i]
	if b == a {
		return vs[i]
	}
	return vs[i-1] + (vs[i]-vs[i-1])*(t-a)/(b-a)
}
