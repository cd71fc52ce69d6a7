// Package cells loads floorplan cell definitions from external sources.
//
// Three formats are supported:
//
//   - plain text: one cell per line, "name area aspectRatio" separated by
//     whitespace (the historical input format)
//   - TOML manifests with [[cell]] tables
//   - JSON manifests (also the wire format of the HTTP API)
//
// All loaders produce a [floorplan.Library]. Orientation defaults to
// free; only the manifest formats can mark a cell fixed.
package cells

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bbaird/floorplan/pkg/errors"
	"github.com/bbaird/floorplan/pkg/floorplan"
)

// Spec is the serialized form of one cell definition.
type Spec struct {
	Name        string  `toml:"name" json:"name" bson:"name"`
	Area        float64 `toml:"area" json:"area" bson:"area"`
	AspectRatio float64 `toml:"aspect_ratio" json:"aspect_ratio" bson:"aspect_ratio"`
	Fixed       bool    `toml:"fixed,omitempty" json:"fixed,omitempty" bson:"fixed,omitempty"`
}

// Manifest is a collection of cell definitions.
type Manifest struct {
	Cells []Spec `toml:"cell" json:"cells" bson:"cells"`
}

// Library converts the manifest into a cell library, validating every
// definition on the way.
func (m Manifest) Library() (*floorplan.Library, error) {
	lib := floorplan.NewLibrary()
	for _, s := range m.Cells {
		if err := errors.ValidateCellName(s.Name); err != nil {
			return nil, err
		}
		name := []rune(s.Name)[0]

		var (
			cell *floorplan.Cell
			err  error
		)
		if s.Fixed {
			cell, err = floorplan.NewFixedCell(name, s.Area, s.AspectRatio)
		} else {
			cell, err = floorplan.NewCell(name, s.Area, s.AspectRatio)
		}
		if err != nil {
			return nil, err
		}
		if err := lib.Add(cell); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// FromLibrary converts a library back into its manifest form, preserving
// insertion order.
func FromLibrary(lib *floorplan.Library) Manifest {
	m := Manifest{Cells: make([]Spec, 0, lib.Len())}
	for _, c := range lib.Cells() {
		m.Cells = append(m.Cells, Spec{
			Name:        string(c.Name),
			Area:        c.Area,
			AspectRatio: c.AspectRatio,
			Fixed:       c.Fixed,
		})
	}
	return m
}

// ParseText reads the whitespace-separated text format: one cell per
// line, "name area aspectRatio". Blank lines are skipped.
func ParseText(r io.Reader) (*floorplan.Library, error) {
	var m Manifest
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, errors.New(errors.ErrCodeInvalidManifest,
				"line %d: expected \"name area aspectRatio\", got %q", lineNo, line)
		}
		area, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "line %d: bad area %q", lineNo, fields[1])
		}
		ratio, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "line %d: bad aspect ratio %q", lineNo, fields[2])
		}
		m.Cells = append(m.Cells, Spec{Name: fields[0], Area: area, AspectRatio: ratio})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "reading cell definitions")
	}
	return m.Library()
}

// ParseTOML reads a TOML manifest with [[cell]] tables.
func ParseTOML(r io.Reader) (*floorplan.Library, error) {
	var m Manifest
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decoding TOML manifest")
	}
	return m.Library()
}

// ParseJSON reads a JSON manifest ({"cells": [...]}).
func ParseJSON(r io.Reader) (*floorplan.Library, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "decoding JSON manifest")
	}
	return m.Library()
}

// ReadFile loads a cell library from a file, choosing the parser by
// extension: .toml and .json get the manifest parsers, anything else is
// treated as the plain text format.
func ReadFile(path string) (*floorplan.Library, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cell file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "opening %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(f)
	case ".json":
		return ParseJSON(f)
	default:
		return ParseText(f)
	}
}

// Marshal renders a library as canonical JSON: cells sorted by name,
// no indentation. The output is stable for identical libraries and is
// what cache keys are derived from.
func Marshal(lib *floorplan.Library) ([]byte, error) {
	m := FromLibrary(lib)
	sort.Slice(m.Cells, func(i, j int) bool { return m.Cells[i].Name < m.Cells[j].Name })

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding library")
	}
	return buf.Bytes(), nil
}
