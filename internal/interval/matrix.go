package interval

import (
	"math"

	"github.com/san-kum/rigsim/internal/rounding"
)

// Matrix is a dense row-major interval matrix.
type Matrix struct {
	rows, cols int
	data       []Interval
}

func NewMatrix(rows, cols int) Matrix {
	return Matrix{rows: rows, cols: cols, data: make([]Interval, rows*cols)}
}

func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = Point(1)
	}
	return m
}

// PointMatrix converts a row-major float matrix.
func PointMatrix(rows, cols int, xs []float64) Matrix {
	m := NewMatrix(rows, cols)
	for i, x := range xs {
		m.data[i] = Point(x)
	}
	return m
}

func (m Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

func (m Matrix) At(i, j int) Interval { return m.data[i*m.cols+j] }

func (m Matrix) Set(i, j int, v Interval) { m.data[i*m.cols+j] = v }

func (m Matrix) Clone() Matrix {
	return Matrix{rows: m.rows, cols: m.cols, data: append([]Interval(nil), m.data...)}
}

func (m Matrix) Row(i int) Vector {
	return append(Vector(nil), m.data[i*m.cols:(i+1)*m.cols]...)
}

func (m Matrix) Col(j int) Vector {
	v := make(Vector, m.rows)
	for i := range v {
		v[i] = m.At(i, j)
	}
	return v
}

func (m Matrix) Transpose() Matrix {
	t := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.Set(j, i, m.At(i, j))
		}
	}
	return t
}

func (m Matrix) Add(n Matrix) Matrix {
	r := NewMatrix(m.rows, m.cols)
	for i := range m.data {
		r.data[i] = m.data[i].Add(n.data[i])
	}
	return r
}

func (m Matrix) Sub(n Matrix) Matrix {
	r := NewMatrix(m.rows, m.cols)
	for i := range m.data {
		r.data[i] = m.data[i].Sub(n.data[i])
	}
	return r
}

// Scale multiplies every entry by s.
func (m Matrix) Scale(s Interval) Matrix {
	r := NewMatrix(m.rows, m.cols)
	for i := range m.data {
		r.data[i] = m.data[i].Mul(s)
	}
	return r
}

func (m Matrix) Mul(n Matrix) Matrix {
	r := NewMatrix(m.rows, n.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < n.cols; j++ {
			s := Point(0)
			for k := 0; k < m.cols; k++ {
				s = s.Add(m.At(i, k).Mul(n.At(k, j)))
			}
			r.Set(i, j, s)
		}
	}
	return r
}

func (m Matrix) MulVec(v Vector) Vector {
	r := make(Vector, m.rows)
	for i := 0; i < m.rows; i++ {
		s := Point(0)
		for k := 0; k < m.cols; k++ {
			s = s.Add(m.At(i, k).Mul(v[k]))
		}
		r[i] = s
	}
	return r
}

// Mid returns the row-major midpoint matrix.
func (m Matrix) Mid() []float64 {
	r := make([]float64, len(m.data))
	for i, x := range m.data {
		r[i] = x.Mid()
	}
	return r
}

// Split returns the midpoint matrix and the remainder with m ⊆ mid + rem.
func (m Matrix) Split() (mid, rem Matrix) {
	mid, rem = NewMatrix(m.rows, m.cols), NewMatrix(m.rows, m.cols)
	for i, x := range m.data {
		mid.data[i], rem.data[i] = x.Split()
	}
	return mid, rem
}

// Norm returns an upper bound of the induced max-norm (max row sum of magnitudes).
func (m Matrix) Norm() float64 {
	n := 0.0
	for i := 0; i < m.rows; i++ {
		s := 0.0
		for j := 0; j < m.cols; j++ {
			s = rounding.Up.Add(s, m.At(i, j).Mag())
		}
		n = math.Max(n, s)
	}
	return n
}

func (m Matrix) IsFinite() bool {
	for _, x := range m.data {
		if !x.IsFinite() {
			return false
		}
	}
	return true
}
