// Package pipeline provides the evaluate and render stages shared by the
// CLI and the HTTP API.
//
// The pipeline takes a normalized Polish expression and a cell manifest,
// evaluates the slicing tree to find the minimum-area configuration, and
// optionally renders the tree and its shape curve to output artifacts.
// Centralizing this logic keeps caching behavior identical across entry
// points.
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    NPE:      "12V3H",
//	    Manifest: manifest,
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bbaird/floorplan/pkg/cells"
	"github.com/bbaird/floorplan/pkg/errors"
	"github.com/bbaird/floorplan/pkg/results"
)

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for a pipeline run.
// The struct supports JSON serialization for API requests.
type Options struct {
	// Evaluate options
	NPE      string         `json:"npe"`
	Manifest cells.Manifest `json:"manifest"`
	Refresh  bool           `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Evaluation is the minimum-area evaluation result.
	Evaluation *results.Result

	// LibraryHash is the content hash of the cell manifest.
	LibraryHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NumCells   int
	CurveSize  int
	EvalTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	EvalHit   bool // Whether the evaluation came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: dot, svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForEvaluate(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForEvaluate checks required fields for evaluation.
func (o *Options) ValidateForEvaluate() error {
	if o.NPE == "" {
		return errors.New(errors.ErrCodeInvalidInput, "expression is required")
	}
	if len(o.Manifest.Cells) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one cell is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
