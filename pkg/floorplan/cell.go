package floorplan

import (
	"math"

	"github.com/bbaird/floorplan/pkg/errors"
)

// Cell is one leaf module of a floorplan: a named rectangle with a fixed
// area and a preferred aspect ratio. Cells are immutable after
// construction and may be shared, read-only, across any number of trees.
type Cell struct {
	Name        rune    // unique single-character identifier
	Area        float64 // module area, > 0
	AspectRatio float64 // height/width target, > 0
	Fixed       bool    // true forbids rotating the cell

	curve Curve // derived shape curve, computed once
}

// NewCell creates a freely-orientable cell and derives its shape curve.
func NewCell(name rune, area, aspectRatio float64) (*Cell, error) {
	return newCell(name, area, aspectRatio, false)
}

// NewFixedCell creates a cell whose orientation cannot be changed.
// Its shape curve has exactly one point.
func NewFixedCell(name rune, area, aspectRatio float64) (*Cell, error) {
	return newCell(name, area, aspectRatio, true)
}

func newCell(name rune, area, aspectRatio float64, fixed bool) (*Cell, error) {
	if err := errors.ValidateCellName(string(name)); err != nil {
		return nil, err
	}
	if !(area > 0) || math.IsInf(area, 0) {
		return nil, errors.New(errors.ErrCodeInvalidCell, "cell %q: area must be positive, got %v", string(name), area)
	}
	if !(aspectRatio > 0) || math.IsInf(aspectRatio, 0) {
		return nil, errors.New(errors.ErrCodeInvalidCell, "cell %q: aspect ratio must be positive, got %v", string(name), aspectRatio)
	}

	c := &Cell{
		Name:        name,
		Area:        area,
		AspectRatio: aspectRatio,
		Fixed:       fixed,
	}
	c.curve = deriveCurve(area, aspectRatio, fixed)
	return c, nil
}

// deriveCurve computes a cell's shape curve from its area and aspect
// ratio: height = sqrt(ratio*area), width = area/height. Free cells also
// offer the rotated point; Insert drops it again for squares, keeping the
// frontier free of duplicates.
func deriveCurve(area, aspectRatio float64, fixed bool) Curve {
	h := math.Sqrt(aspectRatio * area)
	w := area / h
	curve := Curve{{W: w, H: h}}
	if !fixed {
		curve.Insert(Point{W: h, H: w})
	}
	return curve
}

// Curve returns the cell's derived shape curve. The returned slice is
// shared and must not be modified.
func (c *Cell) Curve() Curve { return c.curve }

// Library is a name-keyed collection of cells. It preserves insertion
// order for deterministic listing and is read-only once populated.
type Library struct {
	byName map[rune]*Cell
	order  []*Cell
}

// NewLibrary creates an empty cell library.
func NewLibrary() *Library {
	return &Library{byName: make(map[rune]*Cell)}
}

// Add inserts a cell into the library.
// Returns an INVALID_CELL error if a cell with the same name exists.
func (l *Library) Add(c *Cell) error {
	if _, ok := l.byName[c.Name]; ok {
		return errors.New(errors.ErrCodeInvalidCell, "duplicate cell name %q", string(c.Name))
	}
	l.byName[c.Name] = c
	l.order = append(l.order, c)
	return nil
}

// Lookup returns the cell with the given name, if present.
func (l *Library) Lookup(name rune) (*Cell, bool) {
	c, ok := l.byName[name]
	return c, ok
}

// Cells returns all cells in insertion order.
// The returned slice is shared and must not be modified.
func (l *Library) Cells() []*Cell { return l.order }

// Len returns the number of cells in the library.
func (l *Library) Len() int { return len(l.order) }
