package floorplan

import (
	"testing"

	"github.com/bbaird/floorplan/pkg/errors"
)

func TestBuild(t *testing.T) {
	lib := testLibrary(t)

	tests := []struct {
		name     string
		npe      string
		wantErr  errors.Code
		wantCell int
	}{
		{"Pair", "12V", "", 2},
		{"Nested", "12V34H5VH", "", 5},
		{"SingleLeaf", "1", "", 1},
		{"InvalidExpression", "1V2V", errors.ErrCodeInvalidExpression, 0},
		{"UnknownCell", "1zV", errors.ErrCodeUnknownCell, 0},
		{"Empty", "", errors.ErrCodeInvalidExpression, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Build(tt.npe, lib)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Build(%q) = nil error, want %s", tt.npe, tt.wantErr)
				}
				if got := errors.GetCode(err); got != tt.wantErr {
					t.Errorf("Build(%q) code = %s, want %s", tt.npe, got, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build(%q): %v", tt.npe, err)
			}
			if got := root.NumCells(); got != tt.wantCell {
				t.Errorf("NumCells = %d, want %d", got, tt.wantCell)
			}
		})
	}
}

// The most recently pushed subtree becomes Left, the one before it Right.
func TestBuildChildOrder(t *testing.T) {
	lib := testLibrary(t)
	root, err := Build("12V", lib)
	if err != nil {
		t.Fatal(err)
	}
	if root.Cut != CutV {
		t.Errorf("root cut = %q, want V", root.Cut)
	}
	if root.Right.Cell == nil || root.Right.Cell.Name != '1' {
		t.Errorf("right child = %v, want cell 1", root.Right.Cell)
	}
	if root.Left.Cell == nil || root.Left.Cell.Name != '2' {
		t.Errorf("left child = %v, want cell 2", root.Left.Cell)
	}
}

// A failed build must not leave a usable partial tree.
func TestBuildFailsAtomically(t *testing.T) {
	lib := testLibrary(t)
	root, err := Build("12V9V", lib) // 9 is not in the library
	if err == nil {
		t.Fatal("expected unknown-cell error")
	}
	if root != nil {
		t.Errorf("Build returned partial tree %v alongside error", root)
	}
}

func TestCost(t *testing.T) {
	lib := testLibrary(t)

	area, err := Cost("12V", lib)
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if area != 12 {
		t.Errorf("Cost = %v, want 12", area)
	}

	if _, err := Cost("VV", lib); err == nil {
		t.Error("Cost accepted an invalid expression")
	}
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary()
	c, err := NewCell('a', 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := lib.Add(c); err != nil {
		t.Fatal(err)
	}

	if err := lib.Add(c); err == nil {
		t.Error("Add accepted a duplicate name")
	} else if errors.GetCode(err) != errors.ErrCodeInvalidCell {
		t.Errorf("duplicate Add code = %s, want INVALID_CELL", errors.GetCode(err))
	}

	if _, ok := lib.Lookup('a'); !ok {
		t.Error("Lookup('a') missed")
	}
	if _, ok := lib.Lookup('b'); ok {
		t.Error("Lookup('b') found a ghost")
	}
	if lib.Len() != 1 {
		t.Errorf("Len = %d, want 1", lib.Len())
	}
}

func TestNewCell(t *testing.T) {
	tests := []struct {
		name    string
		cell    rune
		area    float64
		ratio   float64
		wantErr bool
	}{
		{"Valid", 'a', 4, 1, false},
		{"ZeroArea", 'a', 0, 1, true},
		{"NegativeArea", 'a', -4, 1, true},
		{"ZeroRatio", 'a', 4, 0, true},
		{"ReservedV", 'V', 4, 1, true},
		{"ReservedH", 'H', 4, 1, true},
		{"Punctuation", '*', 4, 1, true},
		// Non-ASCII letters can never appear in a valid expression.
		{"NonASCIILetter", 'ß', 4, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCell(tt.cell, tt.area, tt.ratio)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCell(%q, %v, %v) error = %v, wantErr %v",
					tt.cell, tt.area, tt.ratio, err, tt.wantErr)
			}
		})
	}
}
