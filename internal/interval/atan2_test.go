package interval

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestAtan2OriginIsUndefined(t *testing.T) {
	boxes := [][2]Interval{
		{Must(-1, 1), Must(-1, 1)},
		{Must(0, 1), Must(-1, 0)},
		{Point(0), Point(0)},
	}
	for _, b := range boxes {
		_, err := Atan2(b[0], b[1])
		var ierr *Error
		if !errors.As(err, &ierr) || ierr.Op != "atan2" {
			t.Errorf("Atan2(%v, %v) error = %v, want atan2 *Error", b[0], b[1], err)
		}
	}
}

func TestAtan2PointValues(t *testing.T) {
	tests := []struct {
		x, y float64
	}{
		{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
		{3, 0.2}, {-0.1, 5}, {-4, -0.3}, {2, -7},
	}
	for _, tt := range tests {
		got, err := Atan2(Point(tt.x), Point(tt.y))
		if err != nil {
			t.Fatalf("Atan2(%v, %v): %v", tt.x, tt.y, err)
		}
		want := math.Atan2(tt.y, tt.x)
		if !got.Contains(want) {
			t.Errorf("Atan2(%v, %v) = %v, want to contain %v", tt.x, tt.y, got, want)
		}
		if got.Width() > 1e-14 {
			t.Errorf("Atan2(%v, %v) = %v too wide", tt.x, tt.y, got)
		}
	}
}

func TestAtan2NegativeXAxisIsPi(t *testing.T) {
	got, err := Atan2(Point(-2), Point(0))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Contains(math.Pi) || got.lo < 3 {
		t.Errorf("angle of (-2, 0) = %v, want enclosure of π", got)
	}
}

func TestAtan2BoxesContainCornerAngles(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 3000; i++ {
		x, y := randomInterval(r, 4), randomInterval(r, 4)
		if x.ContainsZero() && y.ContainsZero() {
			continue
		}
		got, err := Atan2(x, y)
		if err != nil {
			t.Fatalf("Atan2(%v, %v): %v", x, y, err)
		}
		wraps := x.hi < 0 && y.ContainsZero()
		for j := 0; j < 8; j++ {
			px, py := sample(r, x), sample(r, y)
			if j < 4 {
				px, py = []float64{x.lo, x.hi}[j%2], []float64{y.lo, y.hi}[j/2]
			}
			if px == 0 && py == 0 {
				continue
			}
			a := math.Atan2(py, px)
			if wraps && a < 0 {
				a += 2 * math.Pi
			}
			if !got.Contains(a) {
				t.Fatalf("Atan2(%v, %v) = %v misses angle %v of (%v, %v)", x, y, got, a, px, py)
			}
		}
	}
}

func TestAtan2WrapAcrossNegativeAxis(t *testing.T) {
	got, err := Atan2(Must(-2, -1), Must(-0.5, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	a := math.Atan2(0.5, -1)
	b := math.Atan2(-0.5, -1) + 2*math.Pi
	if !got.Contains(a) || !got.Contains(b) || !got.Contains(math.Pi) {
		t.Errorf("wrap result %v, want to contain [%v, %v]", got, a, b)
	}
	if got.hi <= math.Pi || got.lo >= math.Pi {
		t.Errorf("wrap result %v does not straddle π", got)
	}
	if got.Width() > b-a+1e-12 {
		t.Errorf("wrap result %v wider than the box angle", got)
	}
}

func TestAtan2UpperHalfTouchingAxis(t *testing.T) {
	got, err := Atan2(Must(-2, -1), Must(0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got.hi > math.Pi+1e-12 || !got.Contains(math.Pi) {
		t.Errorf("Atan2 = %v, want upper bound π", got)
	}
}
