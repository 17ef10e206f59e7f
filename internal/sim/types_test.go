package sim

import (
	"testing"

	"github.com/san-kum/rigsim/internal/interval"
)

func TestGrid(t *testing.T) {
	box := interval.Vector{interval.Must(0, 1), interval.Must(-2, 2), interval.Point(5)}
	parts := Grid(box, 3)
	if len(parts) != 9 {
		t.Fatalf("expected 9 parts, got %d", len(parts))
	}
	hull := parts[0]
	for _, p := range parts[1:] {
		hull = interval.HullVector(hull, p)
	}
	for i := range box {
		if !hull[i].Equal(box[i]) {
			t.Errorf("coordinate %d: hull %s, want %s", i, hull[i], box[i])
		}
	}
	for _, p := range parts {
		if !p[2].Equal(interval.Point(5)) {
			t.Errorf("point coordinate was split: %s", p[2])
		}
	}
}

func TestGridNeighboursShareBounds(t *testing.T) {
	parts := Grid(interval.Vector{interval.Must(0.1, 0.7)}, 7)
	for i := 1; i < len(parts); i++ {
		if parts[i][0].Lo() != parts[i-1][0].Hi() {
			t.Errorf("gap between part %d and %d: %s %s", i-1, i, parts[i-1][0], parts[i][0])
		}
	}
}

func TestGridSinglePart(t *testing.T) {
	box := interval.BoxAround([]float64{1, 2}, 0.5)
	parts := Grid(box, 0)
	if len(parts) != 1 || !parts[0].ContainsVector(box) {
		t.Errorf("Grid(box, 0) = %v", parts)
	}
}
