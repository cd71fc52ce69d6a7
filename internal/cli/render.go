package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bbaird/floorplan/pkg/cells"
	"github.com/bbaird/floorplan/pkg/floorplan"
	"github.com/bbaird/floorplan/pkg/pipeline"
	"github.com/bbaird/floorplan/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	cellsFile string
	output    string   // output file (single format) or base path (multiple)
	formats   []string // output formats: dot, svg, png, pdf, json
	detailed  bool     // label operator nodes with dimensions and area
	curve     bool     // also write the root shape curve chart
	noCache   bool
	refresh   bool
}

// renderCommand creates the render command for generating tree and curve
// visualizations.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{cellsFile: defaultCellsFile}

	cmd := &cobra.Command{
		Use:   "render <expression>",
		Short: "Render the slicing tree to DOT, SVG, PNG, or PDF",
		Long: `Render the slicing tree of an expression.

The tree is drawn with Graphviz: operator nodes show the cut kind, leaves
show the cell and its realized dimensions. With --curve, the root shape
curve is also written as an SVG staircase chart.

Examples:
  floorplan render 12V3H -c cells.toml
  floorplan render 12V3H -f svg,pdf -o out/plan
  floorplan render 12V3H --detailed --curve`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.cellsFile, "cells", "c", opts.cellsFile, "cell manifest file (toml, json, or text)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label operator nodes with dimensions and area")
	cmd.Flags().BoolVar(&opts.curve, "curve", false, "also write the root shape curve chart")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, npe string, opts *renderOpts) error {
	manifest, err := loadManifest(opts.cellsFile)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sp := newSpinner(cmd.Context(), "rendering "+npe)
	sp.Start()
	res, err := runner.Execute(cmd.Context(), pipeline.Options{
		NPE:      npe,
		Manifest: manifest,
		Refresh:  opts.refresh,
		Formats:  opts.formats,
		Detailed: opts.detailed,
	})
	sp.Stop()
	if err != nil {
		return err
	}

	base := basePath(opts.output, npe)
	for _, format := range opts.formats {
		data, ok := res.Artifacts[format]
		if !ok {
			continue
		}
		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := writeArtifact(path, data); err != nil {
			return err
		}
		printFile(path)
	}

	if opts.curve {
		if err := c.writeCurve(npe, manifest, base); err != nil {
			return err
		}
	}

	printStats(res.Stats.NumCells, res.Stats.CurveSize, res.CacheInfo.RenderHit)
	return nil
}

// writeCurve renders the root shape curve chart next to the tree outputs.
func (c *CLI) writeCurve(npe string, manifest cells.Manifest, base string) error {
	lib, err := manifest.Library()
	if err != nil {
		return err
	}
	root, err := floorplan.Build(npe, lib)
	if err != nil {
		return err
	}
	root.Evaluate()

	path := base + "_curve.svg"
	if err := writeArtifact(path, render.CurveSVG(root.Curve, root.Selected)); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// basePath derives the base output path from the output flag and the
// expression. If output is empty, the expression itself is used. If
// output carries a known format extension, that extension is stripped.
func basePath(output, npe string) string {
	if output == "" {
		return npe
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout if path
// is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}
