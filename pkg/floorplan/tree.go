package floorplan

import "strings"

// Node is one node of a slicing tree: either a leaf borrowing a [Cell],
// or a cut operator owning exactly two children. Child names follow the
// postfix construction order (Right is the subtree pushed first, Left the
// one pushed after it), not geometric position.
//
// An operator node's Curve, Area, Selected and AspectRatio fields are
// populated by [Node.Evaluate]. Leaves carry their cell's curve from
// construction and are never recursed into.
type Node struct {
	Cut  Cut   // cut orientation; zero for leaves
	Cell *Cell // non-nil exactly for leaves

	Right, Left *Node
	parent      *Node // navigation only, never owning

	Curve       Curve
	Area        float64
	AspectRatio float64
	Selected    *Point // chosen realization, set by Evaluate
}

func newLeaf(c *Cell) *Node {
	curve := c.Curve()
	return &Node{
		Cell:        c,
		Curve:       curve,
		Area:        c.Area,
		AspectRatio: c.AspectRatio,
		// Both orientations of a free cell enclose the same area, so a
		// leaf's selection is fixed at construction.
		Selected: &curve[0],
	}
}

func newOperator(cut Cut, right, left *Node) *Node {
	n := &Node{Cut: cut, Right: right, Left: left}
	right.parent = n
	left.parent = n
	return n
}

// IsLeaf reports whether the node is an operand (cell) node.
func (n *Node) IsLeaf() bool { return n.Cell != nil }

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Evaluate computes the minimum achievable bounding area of the subtree
// and returns it. The walk is post-order: child operators are evaluated
// first (leaves already carry a complete curve), then the children's
// curves are merged under this node's cut and the minimum-area point is
// selected. Each node's curve is built exactly once per tree.
func (n *Node) Evaluate() float64 {
	if n.IsLeaf() {
		return n.Area
	}

	if !n.Right.IsLeaf() {
		n.Right.Evaluate()
	}
	if !n.Left.IsLeaf() {
		n.Left.Evaluate()
	}

	n.Curve = Merge(n.Right.Curve, n.Left.Curve, n.Cut)
	n.Selected = n.Curve.MinArea()
	n.Area = n.Selected.Area()
	n.AspectRatio = n.Selected.H / n.Selected.W
	return n.Area
}

// CellDims is the realized width and height chosen for one cell under
// the optimal configuration.
type CellDims struct {
	Name rune
	W, H float64
}

// Realize walks the selected point's back-references down to the leaves
// and returns each cell's chosen dimensions. The tree must have been
// evaluated. Cells are listed in expression (operand) order.
func (n *Node) Realize() []CellDims {
	dims := make([]CellDims, 0, n.NumCells())
	n.realize(n.Selected, &dims)
	return dims
}

// RealizeAt is like [Realize] but starts from the given point of the
// node's curve instead of the selected one, answering what every cell
// would look like under that alternative root shape.
func (n *Node) RealizeAt(p *Point) []CellDims {
	dims := make([]CellDims, 0, n.NumCells())
	n.realize(p, &dims)
	return dims
}

func (n *Node) realize(p *Point, dims *[]CellDims) {
	if n.IsLeaf() {
		*dims = append(*dims, CellDims{Name: n.Cell.Name, W: p.W, H: p.H})
		return
	}
	n.Right.realize(p.Right, dims)
	n.Left.realize(p.Left, dims)
}

// NumCells returns the number of leaves in the subtree.
func (n *Node) NumCells() int {
	if n.IsLeaf() {
		return 1
	}
	return n.Right.NumCells() + n.Left.NumCells()
}

// String renders the subtree as its normalized polish expression.
// Right subtrees are emitted before left ones, so an expression built by
// [Build] round-trips to the identical string.
func (n *Node) String() string {
	var b strings.Builder
	n.writeNPE(&b)
	return b.String()
}

func (n *Node) writeNPE(b *strings.Builder) {
	if n.IsLeaf() {
		b.WriteRune(n.Cell.Name)
		return
	}
	n.Right.writeNPE(b)
	n.Left.writeNPE(b)
	b.WriteByte(byte(n.Cut))
}
