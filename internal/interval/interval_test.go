package interval

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func sample(r *rand.Rand, a Interval) float64 {
	return a.lo + r.Float64()*(a.hi-a.lo)
}

func randomInterval(r *rand.Rand, scale float64) Interval {
	x := (r.Float64()*2 - 1) * scale
	y := (r.Float64()*2 - 1) * scale
	return Must(math.Min(x, y), math.Max(x, y))
}

func TestNewRejectsInvalidBounds(t *testing.T) {
	if _, err := New(2, 1); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("New(2, 1) error = %v", err)
	}
	if _, err := New(math.NaN(), 1); !errors.Is(err, ErrInvalidBounds) {
		t.Errorf("New(NaN, 1) error = %v", err)
	}
}

func TestBinaryContainment(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	ops := []struct {
		name string
		iv   func(a, b Interval) (Interval, error)
		pt   func(x, y float64) float64
	}{
		{"add", func(a, b Interval) (Interval, error) { return a.Add(b), nil }, func(x, y float64) float64 { return x + y }},
		{"sub", func(a, b Interval) (Interval, error) { return a.Sub(b), nil }, func(x, y float64) float64 { return x - y }},
		{"mul", func(a, b Interval) (Interval, error) { return a.Mul(b), nil }, func(x, y float64) float64 { return x * y }},
		{"div", func(a, b Interval) (Interval, error) { return a.Div(b) }, func(x, y float64) float64 { return x / y }},
	}
	for _, op := range ops {
		for i := 0; i < 2000; i++ {
			a, b := randomInterval(r, 10), randomInterval(r, 10)
			res, err := op.iv(a, b)
			if err != nil {
				if op.name == "div" && b.ContainsZero() {
					continue
				}
				t.Fatalf("%s(%v, %v): %v", op.name, a, b, err)
			}
			x, y := sample(r, a), sample(r, b)
			// The nearest float result may leave the enclosure by at most
			// an ulp, so check against the endpoint operands as well.
			for _, p := range [][2]float64{{a.lo, b.lo}, {a.lo, b.hi}, {a.hi, b.lo}, {a.hi, b.hi}, {x, y}} {
				v := op.pt(p[0], p[1])
				if v < res.lo-math.Abs(v)*1e-15 || v > res.hi+math.Abs(v)*1e-15 {
					t.Fatalf("%s(%v, %v) = %v misses %v", op.name, a, b, res, v)
				}
			}
		}
	}
}

func TestUnaryContainment(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	ops := []struct {
		name string
		iv   func(a Interval) (Interval, error)
		pt   func(x float64) float64
		dom  func(a Interval) bool
	}{
		{"exp", func(a Interval) (Interval, error) { return a.Exp(), nil }, math.Exp, nil},
		{"sin", func(a Interval) (Interval, error) { return a.Sin(), nil }, math.Sin, nil},
		{"cos", func(a Interval) (Interval, error) { return a.Cos(), nil }, math.Cos, nil},
		{"atan", func(a Interval) (Interval, error) { return a.Atan(), nil }, math.Atan, nil},
		{"sqr", func(a Interval) (Interval, error) { return a.Sqr(), nil }, func(x float64) float64 { return x * x }, nil},
		{"log", Interval.Log, math.Log, func(a Interval) bool { return a.lo > 0 }},
		{"sqrt", Interval.Sqrt, math.Sqrt, func(a Interval) bool { return a.lo >= 0 }},
	}
	for _, op := range ops {
		for i := 0; i < 2000; i++ {
			a := randomInterval(r, 8)
			if op.dom != nil && !op.dom(a) {
				a = Must(math.Abs(a.lo)+1e-3, math.Abs(a.lo)+1e-3+a.Width())
			}
			res, err := op.iv(a)
			if err != nil {
				t.Fatalf("%s(%v): %v", op.name, a, err)
			}
			for _, x := range []float64{a.lo, a.hi, sample(r, a), a.Mid()} {
				v := op.pt(x)
				if !res.Contains(v) {
					t.Fatalf("%s(%v) = %v misses f(%v) = %v", op.name, a, res, x, v)
				}
			}
		}
	}
}

func TestTrigExtrema(t *testing.T) {
	tests := []struct {
		name string
		got  Interval
		lo   float64
		hi   float64
	}{
		{"cos over zero", Must(-0.5, 0.5).Cos(), math.Cos(0.5), 1},
		{"cos over pi", Must(3, 3.5).Cos(), -1, math.Cos(3.5)},
		{"sin over half pi", Must(1, 2).Sin(), math.Sin(1), 1},
		{"sin wide", Must(0, 7).Sin(), -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got.lo > tt.lo || tt.got.hi < tt.hi {
				t.Errorf("got %v, want superset of [%v, %v]", tt.got, tt.lo, tt.hi)
			}
			if tt.got.lo < -1 || tt.got.hi > 1 {
				t.Errorf("got %v outside [-1, 1]", tt.got)
			}
		})
	}
}

func TestUndefinedOperations(t *testing.T) {
	var ierr *Error
	if _, err := Point(1).Div(Must(-1, 1)); !errors.As(err, &ierr) || ierr.Op != "div" {
		t.Errorf("div by zero-containing interval: %v", err)
	}
	if _, err := Must(-1, 2).Log(); !errors.Is(err, ErrUndefined) {
		t.Errorf("log of non-positive: %v", err)
	}
	if _, err := Must(-1, 2).Sqrt(); !errors.Is(err, ErrUndefined) {
		t.Errorf("sqrt of negative: %v", err)
	}
	if _, err := Must(-1, 2).PowInterval(Point(0.5)); !errors.Is(err, ErrUndefined) {
		t.Errorf("fractional power of negative: %v", err)
	}
}

func TestHullContainsBoth(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		a, b := randomInterval(r, 100), randomInterval(r, 100)
		h := Hull(a, b)
		if !h.ContainsInterval(a) || !h.ContainsInterval(b) {
			t.Fatalf("hull(%v, %v) = %v", a, b, h)
		}
		if h.lo != math.Min(a.lo, b.lo) || h.hi != math.Max(a.hi, b.hi) {
			t.Fatalf("hull(%v, %v) = %v not minimal", a, b, h)
		}
	}
}

func TestIntersect(t *testing.T) {
	if _, ok := Intersect(Must(0, 1), Must(2, 3)); ok {
		t.Error("disjoint intervals intersect")
	}
	got, ok := Intersect(Must(0, 2), Must(1, 3))
	if !ok || !got.Equal(Must(1, 2)) {
		t.Errorf("intersect = %v, %v", got, ok)
	}
}

func TestSplit(t *testing.T) {
	a := Must(0.1, 0.7)
	m, r := a.Split()
	if !m.IsPoint() {
		t.Errorf("center %v not a point", m)
	}
	if !m.Add(r).ContainsInterval(a) {
		t.Errorf("%v + %v does not cover %v", m, r, a)
	}
	if !r.ContainsZero() {
		t.Errorf("remainder %v not zero-centred", r)
	}
}

func TestPiEnclosure(t *testing.T) {
	if !Pi().Contains(math.Pi) || Pi().Width() == 0 {
		t.Errorf("Pi() = %v", Pi())
	}
	if !TwoPi().Contains(2 * math.Pi) {
		t.Errorf("TwoPi() = %v", TwoPi())
	}
}

func TestPowIntegerSigns(t *testing.T) {
	tests := []struct {
		a    Interval
		n    int
		want Interval
	}{
		{Must(-2, 3), 2, Must(0, 9)},
		{Must(-2, 3), 3, Must(-8, 27)},
		{Must(-3, -2), 3, Must(-27, -8)},
		{Must(2, 4), -1, Must(0.25, 0.5)},
		{Must(-2, 3), 0, Point(1)},
	}
	for _, tt := range tests {
		got, err := tt.a.Pow(tt.n)
		if err != nil {
			t.Fatalf("%v^%d: %v", tt.a, tt.n, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("%v^%d = %v, want %v", tt.a, tt.n, got, tt.want)
		}
	}
	if _, err := Must(-1, 1).Pow(-2); !errors.Is(err, ErrUndefined) {
		t.Errorf("negative power over zero: %v", err)
	}
}
