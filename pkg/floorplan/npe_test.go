package floorplan

import (
	"testing"

	"github.com/bbaird/floorplan/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		npe   string
		valid bool
	}{
		{"TwoOperands", "12V", true},
		{"ThreeOperands", "12V3V", true},
		{"MixedCuts", "12V3H", true},
		{"DeepNesting", "12H34V56H78VHVH", true},
		{"BalancedNesting", "12H34VH", true},
		{"OriginalVertical", "12V3V4V5V6V7V8V9VaVbVcVdVeVfVgViVjVkVlV", true},
		{"OriginalOther", "213546H7VHVa8V9HcVHgHibdHkVHfeHVlHVjHVH", true},
		{"SingleOperand", "1", true},
		{"Empty", "", false},
		{"OperatorFirst", "VAB", false},
		{"OperatorCatchesUp", "1V2V", false},
		{"DuplicateOperand", "AAB", false},
		{"DuplicateOperandSpread", "A1VA2VV", false},
		{"AdjacentDuplicateOperator", "AB12VVH", false},
		{"AdjacentDuplicateH", "AB12HHV", false},
		{"TooFewOperators", "AB12V", false},
		{"OperatorOnly", "V", false},
		{"BadCharacter", "A*BV", false},
		{"NonASCII", "AßV", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.npe)
			if got := err == nil; got != tt.valid {
				t.Errorf("Validate(%q) = %v, want valid=%v", tt.npe, err, tt.valid)
			}
			if got := IsValid(tt.npe); got != tt.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tt.npe, got, tt.valid)
			}
			if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidExpression {
				t.Errorf("Validate(%q) code = %s, want INVALID_EXPRESSION", tt.npe, errors.GetCode(err))
			}
		})
	}
}

// The balloting property must be enforced per prefix, not just through
// final counts: "1V2V" has matching totals at the end of a longer valid
// expression but dies at position 1.
func TestValidatePrefixBalloting(t *testing.T) {
	err := Validate("1V2V")
	if err == nil {
		t.Fatal("Validate(\"1V2V\") = nil, want prefix balloting error")
	}
}

func TestValidateRoundTrip(t *testing.T) {
	// Any expression that builds must re-validate from the tree's printer.
	lib := testLibrary(t)
	for _, npe := range []string{"12V", "12V3H", "12H34VH", "123VH", "12V34H5VH"} {
		root, err := Build(npe, lib)
		if err != nil {
			t.Fatalf("Build(%q): %v", npe, err)
		}
		if got := root.String(); got != npe {
			t.Errorf("String() = %q, want %q", got, npe)
		}
		if err := Validate(root.String()); err != nil {
			t.Errorf("re-validate %q: %v", root.String(), err)
		}
	}
}
