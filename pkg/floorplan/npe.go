package floorplan

import (
	"github.com/bbaird/floorplan/pkg/errors"
)

// Cut identifies the orientation of a cut operator.
type Cut byte

const (
	// CutV places the two child floorplans side by side.
	CutV Cut = 'V'
	// CutH stacks the two child floorplans vertically.
	CutH Cut = 'H'
)

// String returns "V" or "H".
func (c Cut) String() string { return string(byte(c)) }

// IsOperator reports whether r is a cut operator character.
func IsOperator(r rune) bool { return r == 'V' || r == 'H' }

// Validate checks a normalized polish expression against the structural
// grammar. It returns nil when all of the following hold:
//
//   - every character is an operand name or a cut operator (lexical check)
//   - no operand appears twice
//   - no two adjacent characters are the same operator ("VV", "HH")
//   - the balloting property holds at every prefix: operands seen so far
//     strictly outnumber operators
//   - operators == operands - 1 at the end (full binary tree)
//
// The balloting property is re-checked after every character, not only at
// the end: a prefix violation means no tree can be constructed even if
// the final counts happen to match.
func Validate(npe string) error {
	if err := errors.ValidateExpressionAlphabet(npe); err != nil {
		return err
	}

	runes := []rune(npe)
	operands, operators := 0, 0
	seen := make(map[rune]bool, len(runes))

	for i, r := range runes {
		if IsOperator(r) {
			if i+1 < len(runes) && runes[i+1] == r {
				return errors.New(errors.ErrCodeInvalidExpression,
					"adjacent duplicate operator %q at position %d", r, i)
			}
			operators++
		} else {
			if seen[r] {
				return errors.New(errors.ErrCodeInvalidExpression,
					"operand %q appears more than once", r)
			}
			seen[r] = true
			operands++
		}
		if operands <= operators {
			return errors.New(errors.ErrCodeInvalidExpression,
				"balloting property violated at position %d", i)
		}
	}

	if operators != operands-1 {
		return errors.New(errors.ErrCodeInvalidExpression,
			"expression is not a full binary tree: %d operands, %d operators", operands, operators)
	}
	return nil
}

// IsValid reports whether npe is a structurally valid normalized polish
// expression.
func IsValid(npe string) bool { return Validate(npe) == nil }
