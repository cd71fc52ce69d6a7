// Package render produces visual output for evaluated slicing trees:
// Graphviz renderings of the tree itself, an SVG chart of a shape curve,
// and a PDF evaluation report. None of the outputs place cells on a
// plane; they visualize topology and the achievable-shape frontier only.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/bbaird/floorplan/pkg/floorplan"
)

// Options configures slicing-tree rendering.
type Options struct {
	// Detailed labels operator nodes with their selected dimensions and
	// area. When false, operators show only the cut kind.
	Detailed bool
}

// ToDOT converts a slicing tree to Graphviz DOT format. Operator nodes
// are drawn as circles labeled with the cut kind; leaves as boxes labeled
// with the cell name and, once the tree is evaluated, the realized
// dimensions from the selected configuration.
func ToDOT(root *floorplan.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph slicing {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=18, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	dims := realizedDims(root)
	id := 0
	var walk func(n *floorplan.Node) string
	walk = func(n *floorplan.Node) string {
		name := fmt.Sprintf("n%d", id)
		id++

		if n.IsLeaf() {
			label := string(n.Cell.Name)
			if d, ok := dims[n.Cell.Name]; ok {
				label = fmt.Sprintf("%s\n%.4g x %.4g", label, d.W, d.H)
			}
			fmt.Fprintf(&buf, "  %s [shape=box, style=\"rounded,filled\", fillcolor=white, label=%q];\n", name, label)
			return name
		}

		label := n.Cut.String()
		if opts.Detailed && n.Selected != nil {
			label = fmt.Sprintf("%s\n%.4g x %.4g = %.4g", label, n.Selected.W, n.Selected.H, n.Area)
		}
		fmt.Fprintf(&buf, "  %s [shape=circle, style=filled, fillcolor=lightgrey, label=%q];\n", name, label)

		right := walk(n.Right)
		left := walk(n.Left)
		fmt.Fprintf(&buf, "  %s -> %s;\n", name, right)
		fmt.Fprintf(&buf, "  %s -> %s;\n", name, left)
		return name
	}
	walk(root)

	buf.WriteString("}\n")
	return buf.String()
}

// realizedDims maps cell names to their chosen dimensions, or returns an
// empty map for an unevaluated tree.
func realizedDims(root *floorplan.Node) map[rune]floorplan.CellDims {
	dims := make(map[rune]floorplan.CellDims)
	if root.Selected == nil {
		return dims
	}
	for _, d := range root.Realize() {
		dims[d.Name] = d
	}
	return dims
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if format == graphviz.SVG {
		out = normalizeViewBox(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's svg element so the drawing starts
// at the origin and carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
