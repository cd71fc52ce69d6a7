// Package floorplan evaluates the area cost of slicing floorplans.
//
// A slicing floorplan is a recursive partition of a rectangle by vertical
// and horizontal cuts. Its topology is encoded as a normalized polish
// expression (NPE): a postfix string over single-character cell names and
// the cut operators 'V' (side by side) and 'H' (stacked). "12V3H" places
// cells 1 and 2 next to each other and cell 3 below them.
//
// The package provides:
//   - [Validate]: structural validation of an NPE (unique operands, no
//     adjacent duplicate cuts, balloting property, full binary tree)
//   - [Build]: stack-based construction of a slicing tree from a valid
//     NPE and a [Library] of cells
//   - [Node.Evaluate]: bottom-up shape-curve evaluation yielding the
//     minimum achievable bounding area
//   - [Node.Realize]: reconstruction of each cell's chosen dimensions
//     from the selected curve point's back-references
//
// Each subtree carries a [Curve], the Pareto frontier of achievable
// (width, height) realizations. Merging two child curves under a cut
// operator combines every pair of child points and discards dominated
// results, so curve sizes stay small even for large floorplans.
//
// Cells are immutable once constructed and may be shared across
// concurrent evaluations of different expressions. A tree is built per
// evaluation and holds no state beyond it.
package floorplan
