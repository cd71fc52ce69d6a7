package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bbaird/floorplan/pkg/cache"
	"github.com/bbaird/floorplan/pkg/cells"
	"github.com/bbaird/floorplan/pkg/errors"
	"github.com/bbaird/floorplan/pkg/floorplan"
	"github.com/bbaird/floorplan/pkg/render"
	"github.com/bbaird/floorplan/pkg/results"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete evaluate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	lib, err := opts.Manifest.Library()
	if err != nil {
		return nil, err
	}
	libHash, err := libraryHash(lib)
	if err != nil {
		return nil, err
	}

	result := &Result{
		LibraryHash: libHash,
		Artifacts:   make(map[string][]byte),
	}

	evalStart := time.Now()
	eval, evalHit, err := r.EvaluateWithCacheInfo(ctx, opts, lib, libHash)
	if err != nil {
		return nil, err
	}
	result.Evaluation = eval
	result.Stats.EvalTime = time.Since(evalStart)
	result.Stats.NumCells = len(eval.Cells)
	result.Stats.CurveSize = eval.CurveSize
	result.CacheInfo.EvalHit = evalHit

	r.Logger.Info("evaluated expression",
		"npe", opts.NPE,
		"area", eval.Area,
		"curve", eval.CurveSize,
		"cached", evalHit,
		"duration", result.Stats.EvalTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, opts, lib, libHash, eval)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// EvaluateWithCacheInfo evaluates the expression with caching and returns
// cache hit info.
func (r *Runner) EvaluateWithCacheInfo(ctx context.Context, opts Options, lib *floorplan.Library, libHash string) (*results.Result, bool, error) {
	if err := opts.ValidateForEvaluate(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.CostKey(opts.NPE, libHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached results.Result
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil
			}
			// A corrupt entry falls through to recompute.
		}
	}

	root, err := floorplan.Build(opts.NPE, lib)
	if err != nil {
		return nil, false, err
	}
	root.Evaluate()
	eval := results.New(opts.NPE, root)

	if data, err := json.Marshal(eval); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultTTL)
	}

	return eval, false, nil
}

// Evaluate is a convenience wrapper that resolves the library itself and
// discards cache hit info.
func (r *Runner) Evaluate(ctx context.Context, opts Options) (*results.Result, error) {
	if err := opts.ValidateForEvaluate(); err != nil {
		return nil, err
	}
	lib, err := opts.Manifest.Library()
	if err != nil {
		return nil, err
	}
	libHash, err := libraryHash(lib)
	if err != nil {
		return nil, err
	}
	eval, _, err := r.EvaluateWithCacheInfo(ctx, opts, lib, libHash)
	return eval, err
}

// RenderWithCacheInfo renders the requested formats with caching and
// returns cache hit info. The JSON format is serialized from the
// evaluation directly; the graphical formats rebuild and re-evaluate the
// tree, which is cheap relative to rendering.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, opts Options, lib *floorplan.Library, libHash string, eval *results.Result) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	artifacts := make(map[string][]byte)
	allCached := true
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.RenderKey(opts.NPE, libHash, format)
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := r.renderAll(opts, lib, eval)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.RenderKey(opts.NPE, libHash, format)
		_ = r.Cache.Set(ctx, cacheKey, data, cache.DefaultTTL)
	}

	return rendered, false, nil
}

func (r *Runner) renderAll(opts Options, lib *floorplan.Library, eval *results.Result) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	var root *floorplan.Node
	tree := func() (*floorplan.Node, error) {
		if root != nil {
			return root, nil
		}
		n, err := floorplan.Build(opts.NPE, lib)
		if err != nil {
			return nil, err
		}
		n.Evaluate()
		root = n
		return root, nil
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := json.MarshalIndent(eval, "", "  ")
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize evaluation")
			}
			artifacts[FormatJSON] = append(data, '\n')

		case FormatDOT:
			n, err := tree()
			if err != nil {
				return nil, err
			}
			artifacts[FormatDOT] = []byte(render.ToDOT(n, render.Options{Detailed: opts.Detailed}))

		case FormatSVG:
			n, err := tree()
			if err != nil {
				return nil, err
			}
			dot := render.ToDOT(n, render.Options{Detailed: opts.Detailed})
			data, err := render.RenderSVG(dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
			}
			artifacts[FormatSVG] = data

		case FormatPNG:
			n, err := tree()
			if err != nil {
				return nil, err
			}
			dot := render.ToDOT(n, render.Options{Detailed: opts.Detailed})
			data, err := render.RenderPNG(dot)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
			}
			artifacts[FormatPNG] = data

		case FormatPDF:
			n, err := tree()
			if err != nil {
				return nil, err
			}
			data, err := render.Report(eval, n.Curve, n.Selected)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render pdf")
			}
			artifacts[FormatPDF] = data
		}
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func libraryHash(lib *floorplan.Library) (string, error) {
	data, err := cells.Marshal(lib)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}
