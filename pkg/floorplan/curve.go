package floorplan

// Point is one achievable (width, height) realization of a subtree.
// For points produced by [Merge], Right and Left reference the child
// curve points the realization was combined from; both are nil on leaf
// points. Child curves are never mutated after evaluation, so the
// references stay valid for the lifetime of the tree.
type Point struct {
	W, H        float64
	Right, Left *Point
}

// Area returns the bounding area of the realization.
func (p Point) Area() float64 { return p.W * p.H }

// Equal reports whether two points have identical width and height.
// Comparison is exact, matching the tie-detection policy of the pruning
// algorithm; no epsilon is applied.
func (p Point) Equal(q Point) bool {
	return p.W == q.W && p.H == q.H
}

// Dominates reports whether p is no larger than q in both dimensions.
// A dominated point can never be part of an optimal realization and is
// discarded from the frontier.
func (p Point) Dominates(q Point) bool {
	return p.W <= q.W && p.H <= q.H
}

// Curve is the Pareto frontier of a subtree's achievable realizations:
// no point in a Curve dominates another. Point order within the curve
// carries no meaning beyond the deterministic tie-break in [Curve.MinArea].
type Curve []Point

// Insert offers a candidate point to the frontier and reports whether it
// was added. The candidate is rejected, without modifying the curve, if
// an equal point exists or any existing point dominates it. Otherwise
// every point the candidate dominates is removed and the candidate is
// appended. The resulting frontier is independent of insertion order:
// dominance is transitive and removal is idempotent.
func (c *Curve) Insert(cand Point) bool {
	for _, p := range *c {
		if p.Equal(cand) || p.Dominates(cand) {
			return false
		}
	}

	kept := (*c)[:0]
	for _, p := range *c {
		if !cand.Dominates(p) {
			kept = append(kept, p)
		}
	}
	*c = append(kept, cand)
	return true
}

// Merge combines the curves of two sibling subtrees under a cut operator.
// Every pair (r, l) of child points yields one candidate:
//
//	V (side by side): width = r.W + l.W, height = max(r.H, l.H)
//	H (stacked):      width = max(r.W, l.W), height = r.H + l.H
//
// Each candidate records back-references to the child points it combines
// and is offered to [Curve.Insert], so the result is a strict Pareto
// frontier.
func Merge(right, left Curve, cut Cut) Curve {
	out := make(Curve, 0, len(right)+len(left))
	for i := range right {
		r := &right[i]
		for j := range left {
			l := &left[j]
			cand := Point{Right: r, Left: l}
			if cut == CutV {
				cand.W = r.W + l.W
				cand.H = max(r.H, l.H)
			} else {
				cand.W = max(r.W, l.W)
				cand.H = r.H + l.H
			}
			out.Insert(cand)
		}
	}
	return out
}

// MinArea returns a pointer to the curve point with the smallest bounding
// area, or nil for an empty curve. Ties go to the earliest point in slice
// order (strict less-than scan), which makes the selection deterministic
// even though the frontier itself is unordered.
func (c Curve) MinArea() *Point {
	if len(c) == 0 {
		return nil
	}
	best := 0
	bestArea := c[0].Area()
	for i := 1; i < len(c); i++ {
		if a := c[i].Area(); a < bestArea {
			best = i
			bestArea = a
		}
	}
	return &c[best]
}
