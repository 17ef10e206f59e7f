package tui

import (
	"math"

	"github.com/san-kum/rigsim/internal/interval"
)

// PhasePlane draws the projections of enclosures onto two coordinates.
// Older boxes are outlined, the latest is filled.
type PhasePlane struct {
	width, height int
	i, j          int
	boxes         [][2]interval.Interval
	limit         int
}

func NewPhasePlane(width, height, i, j int) *PhasePlane {
	return &PhasePlane{width: width, height: height, i: i, j: j, limit: 200}
}

// Add records the projection of box. Boxes of lower dimension than the
// projection are ignored.
func (p *PhasePlane) Add(box interval.Vector) {
	if p.i >= len(box) || p.j >= len(box) || !box.IsFinite() {
		return
	}
	p.boxes = append(p.boxes, [2]interval.Interval{box[p.i], box[p.j]})
	if len(p.boxes) > p.limit {
		p.boxes = p.boxes[1:]
	}
}

func (p *PhasePlane) Len() int { return len(p.boxes) }

// Render returns the canvas rows.
func (p *PhasePlane) Render() []string {
	canvas := make([][]rune, p.height)
	for y := range canvas {
		canvas[y] = make([]rune, p.width)
		for x := range canvas[y] {
			canvas[y][x] = ' '
		}
	}
	rows := func() []string {
		out := make([]string, len(canvas))
		for y, row := range canvas {
			out[y] = string(row)
		}
		return out
	}
	if len(p.boxes) == 0 {
		return rows()
	}

	xs, ys := p.boxes[0][0], p.boxes[0][1]
	for _, b := range p.boxes[1:] {
		xs, ys = interval.Hull(xs, b[0]), interval.Hull(ys, b[1])
	}
	sx := scale(xs, p.width)
	sy := scale(ys, p.height)

	for k, b := range p.boxes {
		x1, x2 := sx(b[0].Lo()), sx(b[0].Hi())
		// Screen rows grow downwards.
		y1, y2 := p.height-1-sy(b[1].Hi()), p.height-1-sy(b[1].Lo())
		if k == len(p.boxes)-1 {
			for y := y1; y <= y2; y++ {
				for x := x1; x <= x2; x++ {
					set(canvas, x, y, '█')
				}
			}
			continue
		}
		if x1 == x2 && y1 == y2 {
			set(canvas, x1, y1, '·')
			continue
		}
		drawLine(canvas, x1, y1, x2, y1, '─')
		drawLine(canvas, x1, y2, x2, y2, '─')
		drawLine(canvas, x1, y1, x1, y2, '│')
		drawLine(canvas, x2, y1, x2, y2, '│')
	}
	return rows()
}

// scale maps r onto the cells 0..n-1.
func scale(r interval.Interval, n int) func(float64) int {
	lo, w := r.Lo(), r.Width()
	return func(v float64) int {
		if w == 0 || math.IsInf(w, 0) {
			return n / 2
		}
		c := int((v - lo) / w * float64(n-1))
		return max(0, min(n-1, c))
	}
}

func set(canvas [][]rune, x, y int, c rune) {
	if y >= 0 && y < len(canvas) && x >= 0 && x < len(canvas[y]) {
		canvas[y][x] = c
	}
}

func drawLine(canvas [][]rune, x1, y1, x2, y2 int, c rune) {
	dx := intAbs(x2 - x1)
	dy := intAbs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		set(canvas, x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
