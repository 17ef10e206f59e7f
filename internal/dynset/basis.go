package dynset

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rigsim/internal/interval"
	"github.com/san-kum/rigsim/internal/rounding"
)

// Policy selects how the remainder basis B is rebuilt after each move.
type Policy int

const (
	// QR uses an orthogonal basis of the propagated remainder directions.
	QR Policy = iota
	// Identity keeps B = I, which reduces the set to an interval box
	// remainder (no wrapping control).
	Identity
)

func (p Policy) String() string {
	if p == Identity {
		return "identity"
	}
	return "qr"
}

// ParsePolicy maps "qr" and "identity" to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "", "qr":
		return QR, true
	case "identity":
		return Identity, true
	}
	return QR, false
}

// basis returns a point matrix B close to an orthogonalization of mid(m)
// and an interval matrix enclosing B⁻¹.
//
// The approximate inverse Bᵀ is verified through E = I - Bᵀ·B: if ‖E‖ < 1
// the Neumann series gives ‖B⁻¹ - Bᵀ‖ <= ‖Bᵀ‖·‖E‖ / (1 - ‖E‖). When the
// check fails the identity basis is returned.
func basis(m interval.Matrix, policy Policy) (b, binv interval.Matrix) {
	n, _ := m.Dims()
	id := interval.Identity(n)
	if policy == Identity || !m.IsFinite() {
		return id, id
	}

	mid := mat.NewDense(n, n, m.Mid())

	// Columns sorted by decreasing norm, so the dominant direction leads.
	order := make([]int, n)
	norms := make([]float64, n)
	for j := range order {
		order[j] = j
		norms[j] = mat.Norm(mid.ColView(j), 2)
	}
	sort.SliceStable(order, func(a, c int) bool { return norms[order[a]] > norms[order[c]] })
	sorted := mat.NewDense(n, n, nil)
	for j, src := range order {
		sorted.SetCol(j, mat.Col(nil, src, mid))
	}

	var qr mat.QR
	qr.Factorize(sorted)
	var q mat.Dense
	qr.QTo(&q)

	bm := interval.NewMatrix(n, n)
	bt := interval.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := q.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return id, id
			}
			bm.Set(i, j, interval.Point(v))
			bt.Set(j, i, interval.Point(v))
		}
	}

	e := id.Sub(bt.Mul(bm)).Norm()
	if !(e < 1) {
		return id, id
	}
	up := rounding.Up
	rad := up.Div(up.Mul(bt.Norm(), e), rounding.Down.Sub(1, e))
	binv = interval.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			binv.Set(i, j, bt.At(i, j).Add(interval.Radius(rad)))
		}
	}
	return bm, binv
}
