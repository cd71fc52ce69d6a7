package cells

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bbaird/floorplan/pkg/errors"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{
			name:    "Basic",
			input:   "1 4 1\n2 4 4\n",
			wantLen: 2,
		},
		{
			name:    "BlankLinesSkipped",
			input:   "\n1 4 1\n\n2 4 4\n\n",
			wantLen: 2,
		},
		{
			name:    "TabsAndSpaces",
			input:   "a\t2.5  0.5\n",
			wantLen: 1,
		},
		{
			name:    "Empty",
			input:   "",
			wantLen: 0,
		},
		{
			name:    "MissingField",
			input:   "1 4\n",
			wantErr: true,
		},
		{
			name:    "BadArea",
			input:   "1 huge 1\n",
			wantErr: true,
		},
		{
			name:    "BadRatio",
			input:   "1 4 tall\n",
			wantErr: true,
		},
		{
			name:    "ReservedName",
			input:   "V 4 1\n",
			wantErr: true,
		},
		{
			name:    "DuplicateName",
			input:   "1 4 1\n1 2 2\n",
			wantErr: true,
		},
		{
			name:    "NegativeArea",
			input:   "1 -4 1\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, err := ParseText(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseText: %v", err)
			}
			if lib.Len() != tt.wantLen {
				t.Errorf("library has %d cells, want %d", lib.Len(), tt.wantLen)
			}
		})
	}
}

func TestParseTOML(t *testing.T) {
	input := `
[[cell]]
name = "1"
area = 4.0
aspect_ratio = 1.0

[[cell]]
name = "2"
area = 4.0
aspect_ratio = 4.0
fixed = true
`
	lib, err := ParseTOML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}
	if lib.Len() != 2 {
		t.Fatalf("library has %d cells, want 2", lib.Len())
	}

	c, ok := lib.Lookup('2')
	if !ok {
		t.Fatal("cell 2 missing")
	}
	if !c.Fixed {
		t.Error("cell 2 should be fixed")
	}
	if len(c.Curve()) != 1 {
		t.Errorf("fixed cell curve has %d points, want 1", len(c.Curve()))
	}

	if _, err := ParseTOML(strings.NewReader("cell = 12")); err == nil {
		t.Error("ParseTOML accepted malformed input")
	}
}

func TestParseJSON(t *testing.T) {
	input := `{"cells": [
		{"name": "a", "area": 4, "aspect_ratio": 1},
		{"name": "b", "area": 2, "aspect_ratio": 0.5, "fixed": true}
	]}`
	lib, err := ParseJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if lib.Len() != 2 {
		t.Fatalf("library has %d cells, want 2", lib.Len())
	}

	if _, err := ParseJSON(strings.NewReader("[]")); err == nil {
		t.Error("ParseJSON accepted a bare array")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("Text", func(t *testing.T) {
		path := write("cells.txt", "1 4 1\n2 4 4\n")
		lib, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if lib.Len() != 2 {
			t.Errorf("library has %d cells, want 2", lib.Len())
		}
	})

	t.Run("TOML", func(t *testing.T) {
		path := write("cells.toml", "[[cell]]\nname = \"x\"\narea = 1.0\naspect_ratio = 1.0\n")
		lib, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if _, ok := lib.Lookup('x'); !ok {
			t.Error("cell x missing")
		}
	})

	t.Run("JSON", func(t *testing.T) {
		path := write("cells.json", `{"cells":[{"name":"y","area":1,"aspect_ratio":1}]}`)
		lib, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		if _, ok := lib.Lookup('y'); !ok {
			t.Error("cell y missing")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(dir, "nope.txt"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if errors.GetCode(err) != errors.ErrCodeFileNotFound {
			t.Errorf("code = %s, want FILE_NOT_FOUND", errors.GetCode(err))
		}
	})
}

func TestMarshalStable(t *testing.T) {
	lib1, err := ParseText(strings.NewReader("b 2 1\na 4 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	lib2, err := ParseText(strings.NewReader("a 4 1\nb 2 1\n"))
	if err != nil {
		t.Fatal(err)
	}

	m1, err := Marshal(lib1)
	if err != nil {
		t.Fatal(err)
	}
	m2, err := Marshal(lib2)
	if err != nil {
		t.Fatal(err)
	}
	if string(m1) != string(m2) {
		t.Errorf("Marshal not order-independent:\n%s\n%s", m1, m2)
	}
}

func TestRoundTrip(t *testing.T) {
	lib, err := ParseText(strings.NewReader("1 4 1\n2 4 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	m := FromLibrary(lib)
	lib2, err := m.Library()
	if err != nil {
		t.Fatalf("Library: %v", err)
	}
	if lib2.Len() != lib.Len() {
		t.Errorf("round trip lost cells: %d vs %d", lib2.Len(), lib.Len())
	}
}
