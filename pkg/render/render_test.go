package render

import (
	"bytes"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/bbaird/floorplan/pkg/floorplan"
	"github.com/bbaird/floorplan/pkg/results"
)

func evaluatedTree(t *testing.T) *floorplan.Node {
	t.Helper()
	lib := floorplan.NewLibrary()
	for _, name := range []rune{'1', '2', '3'} {
		c, err := floorplan.NewFixedCell(name, 4, 1)
		if err != nil {
			t.Fatalf("NewFixedCell(%c): %v", name, err)
		}
		if err := lib.Add(c); err != nil {
			t.Fatalf("Add(%c): %v", name, err)
		}
	}
	root, err := floorplan.Build("12V3H", lib)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root.Evaluate()
	return root
}

func TestToDOT(t *testing.T) {
	root := evaluatedTree(t)
	dot := ToDOT(root, Options{})

	if !strings.HasPrefix(dot, "digraph slicing {") {
		t.Fatalf("missing digraph header:\n%s", dot)
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Fatalf("missing closing brace:\n%s", dot)
	}
	for _, want := range []string{"shape=circle", "shape=box", `"V`, `"H`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	// Two operators and three leaves give four edges.
	if got := strings.Count(dot, "->"); got != 4 {
		t.Errorf("edge count = %d, want 4", got)
	}
}

func TestToDOTDetailed(t *testing.T) {
	root := evaluatedTree(t)
	dot := ToDOT(root, Options{Detailed: true})
	if !strings.Contains(dot, " = 16") {
		t.Errorf("detailed DOT should label the root with its area:\n%s", dot)
	}
}

func TestToDOTUnevaluated(t *testing.T) {
	lib := floorplan.NewLibrary()
	c, err := floorplan.NewCell('A', 4, 0.5)
	if err != nil {
		t.Fatalf("NewCell: %v", err)
	}
	if err := lib.Add(c); err != nil {
		t.Fatalf("Add: %v", err)
	}
	root, err := floorplan.Build("A", lib)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	dot := ToDOT(root, Options{})
	if !strings.Contains(dot, "shape=box") {
		t.Errorf("leaf node missing:\n%s", dot)
	}
}

func TestCurveSVG(t *testing.T) {
	root := evaluatedTree(t)
	svg := CurveSVG(root.Curve, root.Selected)

	s := string(svg)
	if !strings.HasPrefix(s, "<svg") || !strings.Contains(s, "</svg>") {
		t.Fatalf("not an svg document:\n%s", s)
	}
	if !strings.Contains(s, "crimson") {
		t.Errorf("selected point should be highlighted:\n%s", s)
	}
	if got := strings.Count(s, "<circle"); got != len(root.Curve) {
		t.Errorf("circle count = %d, want %d", got, len(root.Curve))
	}
}

// A free cell wider than tall derives its curve widest-first, so the
// staircase has to reorder points before plotting.
func TestCurveSVGPathAscendsInWidth(t *testing.T) {
	c, err := floorplan.NewCell('f', 8, 0.5)
	if err != nil {
		t.Fatalf("NewCell: %v", err)
	}
	curve := c.Curve()
	if len(curve) < 2 || curve[0].W <= curve[1].W {
		t.Fatalf("want a width-descending curve, got %v", curve)
	}

	svg := string(CurveSVG(curve, nil))
	m := regexp.MustCompile(`<path d="([^"]+)"`).FindStringSubmatch(svg)
	if m == nil {
		t.Fatalf("no path element:\n%s", svg)
	}

	coords := strings.Fields(strings.NewReplacer("M", "", "L", "").Replace(m[1]))
	prev := math.Inf(-1)
	for i := 0; i < len(coords); i += 2 {
		x, err := strconv.ParseFloat(coords[i], 64)
		if err != nil {
			t.Fatalf("parse x %q: %v", coords[i], err)
		}
		if x < prev {
			t.Fatalf("path runs leftward at x=%g: %s", x, m[1])
		}
		prev = x
	}
}

func TestSortByWidth(t *testing.T) {
	in := floorplan.Curve{{W: 4, H: 2}, {W: 2, H: 4}, {W: 3, H: 3}}
	out := sortByWidth(in)

	for i := 1; i < len(out); i++ {
		if out[i].W < out[i-1].W {
			t.Errorf("not sorted: %v", out)
		}
	}
	// Input order is untouched.
	if in[0].W != 4 {
		t.Errorf("input mutated: %v", in)
	}
}

func TestCurveSVGEmpty(t *testing.T) {
	svg := CurveSVG(nil, nil)
	if !strings.Contains(string(svg), "empty curve") {
		t.Errorf("empty curve placeholder missing:\n%s", svg)
	}
}

func TestReport(t *testing.T) {
	root := evaluatedTree(t)
	res := results.New("12V3H", root)

	pdf, err := Report(res, root.Curve, root.Selected)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, starts with %q", pdf[:min(8, len(pdf))])
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg" viewBox="0.00 0.00 120.00 80.25"><g/></svg>`)
	out := normalizeViewBox(in)
	s := string(out)
	if !strings.Contains(s, `viewBox="0 0 120.00 80.25"`) {
		t.Errorf("viewBox not normalized: %s", s)
	}
	if !strings.Contains(s, `width="120"`) || !strings.Contains(s, `height="80"`) {
		t.Errorf("explicit dimensions missing: %s", s)
	}
}
