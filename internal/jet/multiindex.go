package jet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Multiindex stores the derivative order in each variable.
type Multiindex []int

// Multipointer lists variable indices in non-decreasing order; variable i
// appears as often as the derivative order in i.
type Multipointer []int

// NewMultipointer returns the canonical (sorted) multipointer of idx.
func NewMultipointer(idx ...int) Multipointer {
	mp := append(Multipointer(nil), idx...)
	sort.Ints(mp)
	return mp
}

// Module returns the total degree.
func (a Multiindex) Module() int {
	s := 0
	for _, k := range a {
		s += k
	}
	return s
}

// Add returns the coordinate-wise sum.
func (a Multiindex) Add(b Multiindex) Multiindex {
	r := make(Multiindex, len(a))
	for i := range a {
		r[i] = a[i] + b[i]
	}
	return r
}

// Factorial returns α! = ∏ α_i!.
func (a Multiindex) Factorial() float64 {
	f := 1.0
	for _, k := range a {
		f *= factorial(k)
	}
	return f
}

// ToMultipointer lists every variable as often as its order.
func (a Multiindex) ToMultipointer() Multipointer {
	mp := make(Multipointer, 0, a.Module())
	for i, k := range a {
		for j := 0; j < k; j++ {
			mp = append(mp, i)
		}
	}
	return mp
}

func (a Multiindex) String() string {
	parts := make([]string, len(a))
	for i, k := range a {
		parts[i] = strconv.Itoa(k)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

func (a Multiindex) key() string {
	var b strings.Builder
	for i, k := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(k))
	}
	return b.String()
}

// Module returns the total degree.
func (p Multipointer) Module() int { return len(p) }

// ToMultiindex counts the occurrences of each of the n variables.
func (p Multipointer) ToMultiindex(n int) (Multiindex, error) {
	mi := make(Multiindex, n)
	for _, v := range p {
		if v < 0 || v >= n {
			return nil, fmt.Errorf("jet: multipointer index %d outside %d variables", v, n)
		}
		mi[v]++
	}
	return mi, nil
}

// Factorial returns the product of the factorials of the run lengths, which
// equals the factorial of the corresponding multiindex.
func (p Multipointer) Factorial() float64 {
	f := 1.0
	run := 1
	for i := 1; i <= len(p); i++ {
		if i < len(p) && p[i] == p[i-1] {
			run++
			continue
		}
		f *= factorial(run)
		run = 1
	}
	return f
}

// Next advances p to the next multipointer of the same length over n
// variables in lexicographic order and reports whether one exists.
func (p Multipointer) Next(n int) bool {
	k := len(p)
	for i := k - 1; i >= 0; i-- {
		if p[i] < n-1 {
			p[i]++
			for j := i + 1; j < k; j++ {
				p[j] = p[i]
			}
			return true
		}
	}
	return false
}

// Sub selects the entries of p at the given positions.
func (p Multipointer) Sub(positions []int) Multipointer {
	r := make(Multipointer, len(positions))
	for i, pos := range positions {
		r[i] = p[pos]
	}
	return r
}

func factorial(k int) float64 {
	f := 1.0
	for i := 2; i <= k; i++ {
		f *= float64(i)
	}
	return f
}

// Binomial returns C(n, k) as a float64; exact for the orders used here.
func Binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1.0
	for i := 1; i <= k; i++ {
		r = r * float64(n-k+i) / float64(i)
	}
	return r
}
