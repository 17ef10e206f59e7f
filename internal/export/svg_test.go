package export

import (
	"strings"
	"testing"

	"github.com/san-kum/rigsim/internal/interval"
)

func TestProjectionSVG(t *testing.T) {
	boxes := []interval.Vector{
		interval.BoxAround([]float64{1, 0}, 0.1),
		interval.BoxAround([]float64{0, 1}, 0.1),
		interval.BoxAround([]float64{-1, 0}, 0.1),
		{interval.Point(0)},
	}
	svg := ProjectionSVG(boxes, 0, 1, 200, 100)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	// Background plus one rectangle per two-dimensional box.
	if n := strings.Count(svg, "<rect"); n != 4 {
		t.Errorf("rects = %d, want 4", n)
	}
	if strings.Count(svg, " L") != 2 {
		t.Error("expected a center path through three boxes")
	}

	if ProjectionSVG(boxes[3:], 0, 1, 200, 100) != "" {
		t.Error("expected no drawing for one-dimensional boxes")
	}
}

func TestTubeSVG(t *testing.T) {
	times := []interval.Interval{interval.Point(0), interval.Point(0.5), interval.Point(1)}
	boxes := []interval.Vector{
		{interval.Must(0.9, 1.1)},
		{interval.Must(0.4, 0.7)},
		{interval.Must(-0.2, 0.3)},
	}
	svg := TubeSVG(times, boxes, 0, 300, 100)
	if !strings.Contains(svg, " Z\"/>") {
		t.Fatalf("expected a closed band:\n%s", svg)
	}
	if n := strings.Count(svg, " L"); n != 5 {
		t.Errorf("segments = %d, want 5", n)
	}
	if TubeSVG(times[:1], boxes[:1], 0, 300, 100) != "" {
		t.Error("expected no drawing for one sample")
	}
}
