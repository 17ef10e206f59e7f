// Package export renders stored enclosures as SVG.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/rigsim/internal/interval"
)

// frame maps data ranges onto an SVG viewport with 10% padding.
type frame struct {
	minX, rangeX, minY, rangeY float64
	width, height              int
}

func newFrame(xs, ys interval.Interval, width, height int) frame {
	pad := func(r interval.Interval) (float64, float64) {
		w := r.Width()
		if w == 0 || math.IsInf(w, 0) {
			w = 1
		}
		return r.Lo() - w*0.1, w * 1.2
	}
	f := frame{width: width, height: height}
	f.minX, f.rangeX = pad(xs)
	f.minY, f.rangeY = pad(ys)
	return f
}

func (f frame) x(v float64) float64 { return (v - f.minX) / f.rangeX * float64(f.width) }
func (f frame) y(v float64) float64 {
	return float64(f.height) - (v-f.minY)/f.rangeY*float64(f.height)
}

func header(sb *strings.Builder, width, height int) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

// ProjectionSVG draws the projections of boxes onto coordinates i and j,
// with a path through their centers. It returns "" when no box has both
// coordinates.
func ProjectionSVG(boxes []interval.Vector, i, j, width, height int) string {
	var xs, ys []interval.Interval
	for _, b := range boxes {
		if i < len(b) && j < len(b) && b[i].IsFinite() && b[j].IsFinite() {
			xs, ys = append(xs, b[i]), append(ys, b[j])
		}
	}
	if len(xs) == 0 {
		return ""
	}
	hx, hy := xs[0], ys[0]
	for k := range xs {
		hx, hy = interval.Hull(hx, xs[k]), interval.Hull(hy, ys[k])
	}
	f := newFrame(hx, hy, width, height)

	var sb strings.Builder
	header(&sb, width, height)

	sb.WriteString(`<g fill="#00ff00" fill-opacity="0.15" stroke="#00ff00" stroke-width="0.5">
`)
	for k := range xs {
		x0, x1 := f.x(xs[k].Lo()), f.x(xs[k].Hi())
		y0, y1 := f.y(ys[k].Hi()), f.y(ys[k].Lo())
		sb.WriteString(fmt.Sprintf(`<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>
`, x0, y0, math.Max(x1-x0, 0.5), math.Max(y1-y0, 0.5)))
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<path fill="none" stroke="#ffffff" stroke-width="1" d="M`)
	for k := range xs {
		if k > 0 {
			sb.WriteString(" L")
		}
		sb.WriteString(fmt.Sprintf("%.2f,%.2f", f.x(xs[k].Mid()), f.y(ys[k].Mid())))
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// TubeSVG draws coordinate coord of boxes against times as a band between
// the lower and upper bounds. It returns "" for fewer than two samples.
func TubeSVG(times []interval.Interval, boxes []interval.Vector, coord, width, height int) string {
	var ts []float64
	var xs []interval.Interval
	for k, b := range boxes {
		if k < len(times) && coord < len(b) && b[coord].IsFinite() {
			ts, xs = append(ts, times[k].Mid()), append(xs, b[coord])
		}
	}
	if len(xs) < 2 {
		return ""
	}
	hx := xs[0]
	for _, x := range xs {
		hx = interval.Hull(hx, x)
	}
	ht := interval.Hull(interval.Point(ts[0]), interval.Point(ts[len(ts)-1]))
	f := newFrame(ht, hx, width, height)

	var sb strings.Builder
	header(&sb, width, height)

	sb.WriteString(`<path fill="#00ff00" fill-opacity="0.3" stroke="#00ff00" stroke-width="1" d="M`)
	for k := range xs {
		if k > 0 {
			sb.WriteString(" L")
		}
		sb.WriteString(fmt.Sprintf("%.2f,%.2f", f.x(ts[k]), f.y(xs[k].Hi())))
	}
	for k := len(xs) - 1; k >= 0; k-- {
		sb.WriteString(fmt.Sprintf(" L%.2f,%.2f", f.x(ts[k]), f.y(xs[k].Lo())))
	}
	sb.WriteString(` Z"/>
</svg>`)
	return sb.String()
}
