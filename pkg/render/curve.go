package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bbaird/floorplan/pkg/floorplan"
)

const (
	chartWidth  = 640.0
	chartHeight = 480.0
	chartMargin = 56.0
)

// CurveSVG draws a shape curve as an SVG staircase chart. Each point is a
// realizable (width, height) pair; the step outline between points shows
// the frontier of achievable shapes. The selected point, when given, is
// highlighted.
func CurveSVG(curve floorplan.Curve, selected *floorplan.Point) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		chartWidth, chartHeight, chartWidth, chartHeight)
	b.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")

	if len(curve) == 0 {
		b.WriteString(`<text x="50%" y="50%" text-anchor="middle" font-family="monospace">empty curve</text>` + "\n")
		b.WriteString("</svg>\n")
		return []byte(b.String())
	}

	maxW, maxH := 0.0, 0.0
	for _, p := range curve {
		if p.W > maxW {
			maxW = p.W
		}
		if p.H > maxH {
			maxH = p.H
		}
	}

	plotW := chartWidth - 2*chartMargin
	plotH := chartHeight - 2*chartMargin
	x := func(w float64) float64 { return chartMargin + w/maxW*plotW }
	y := func(h float64) float64 { return chartHeight - chartMargin - h/maxH*plotH }

	// Axes.
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n",
		chartMargin, chartHeight-chartMargin, chartWidth-chartMargin, chartHeight-chartMargin)
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/>`+"\n",
		chartMargin, chartMargin, chartMargin, chartHeight-chartMargin)
	fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family="monospace" font-size="13">width</text>`+"\n",
		chartWidth/2, chartHeight-chartMargin/3)
	fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family="monospace" font-size="13" transform="rotate(-90 %.1f %.1f)">height</text>`+"\n",
		chartMargin/3, chartHeight/2, chartMargin/3, chartHeight/2)

	// Staircase outline. Curves carry points in insertion order, so sort
	// by width first; each step then moves right then down.
	pts := sortByWidth(curve)
	var path strings.Builder
	fmt.Fprintf(&path, "M %.1f %.1f", x(pts[0].W), y(pts[0].H))
	for i := 1; i < len(pts); i++ {
		fmt.Fprintf(&path, " L %.1f %.1f", x(pts[i].W), y(pts[i-1].H))
		fmt.Fprintf(&path, " L %.1f %.1f", x(pts[i].W), y(pts[i].H))
	}
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="steelblue" stroke-width="2"/>`+"\n", path.String())

	for _, p := range pts {
		fill := "steelblue"
		r := 4.0
		if selected != nil && p.Equal(*selected) {
			fill = "crimson"
			r = 6.0
		}
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", x(p.W), y(p.H), r, fill)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" font-family="monospace" font-size="11">%.4g x %.4g</text>`+"\n",
			x(p.W)+8, y(p.H)-8, p.W, p.H)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

// sortByWidth returns a copy of the curve ordered by ascending width.
// On a Pareto frontier that also means descending height.
func sortByWidth(curve floorplan.Curve) floorplan.Curve {
	pts := make(floorplan.Curve, len(curve))
	copy(pts, curve)
	sort.Slice(pts, func(i, j int) bool { return pts[i].W < pts[j].W })
	return pts
}
