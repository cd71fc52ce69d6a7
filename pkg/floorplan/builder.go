package floorplan

import (
	"github.com/bbaird/floorplan/pkg/errors"
)

// Build constructs a slicing tree from a normalized polish expression and
// a cell library. The expression is validated first; Build then performs
// a single left-to-right scan with a node stack:
//
//   - operand: look up the cell by name and push a leaf
//   - operator: pop two nodes (the most recently pushed becomes Left, the
//     one before it Right) and push the new operator node
//
// Exactly one node must remain at the end; that node is the root.
// Stack-discipline violations are reported as MALFORMED_TREE even though
// they are unreachable after a successful validation, since validity and
// constructibility are logically distinct properties.
func Build(npe string, lib *Library) (*Node, error) {
	if err := Validate(npe); err != nil {
		return nil, err
	}

	var stack []*Node
	for _, r := range npe {
		if IsOperator(r) {
			if len(stack) < 2 {
				return nil, errors.New(errors.ErrCodeMalformedTree,
					"operator %q has fewer than two subtrees", r)
			}
			left := stack[len(stack)-1]
			right := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, newOperator(Cut(r), right, left))
			continue
		}

		cell, ok := lib.Lookup(r)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownCell,
				"no cell named %q in library", r)
		}
		stack = append(stack, newLeaf(cell))
	}

	if len(stack) != 1 {
		return nil, errors.New(errors.ErrCodeMalformedTree,
			"expression left %d roots on the stack", len(stack))
	}
	return stack[0], nil
}

// Cost builds the slicing tree for npe and returns its minimum bounding
// area. It is the one-shot form of [Build] followed by [Node.Evaluate].
func Cost(npe string, lib *Library) (float64, error) {
	root, err := Build(npe, lib)
	if err != nil {
		return 0, err
	}
	return root.Evaluate(), nil
}
