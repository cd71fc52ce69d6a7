package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bbaird/floorplan/pkg/pipeline"
	"github.com/bbaird/floorplan/pkg/results"
)

// costOpts holds the command-line flags for the cost command.
type costOpts struct {
	cellsFile string // cell manifest path
	exprFile  string // file with one expression per line
	noCache   bool   // disable the evaluation cache
	refresh   bool   // recompute even when cached
	save      bool   // store results in the history
}

// costCommand creates the cost command for evaluating expressions.
// Multiple expressions can be given; each is evaluated independently
// against the same cell library and the best one is highlighted.
func (c *CLI) costCommand() *cobra.Command {
	opts := costOpts{cellsFile: defaultCellsFile}

	cmd := &cobra.Command{
		Use:   "cost [expression...]",
		Short: "Evaluate expressions and report the minimum bounding area",
		Long: `Evaluate normalized Polish expressions against a cell library.

Each expression is parsed into a slicing tree, the shape curves of the
cells are combined bottom-up, and the minimum achievable bounding area
is reported.

Examples:
  floorplan cost 12V3H -c cells.toml
  floorplan cost 12V3H 13V2H --cells cells.txt
  floorplan cost --file candidates.txt --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCost(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.cellsFile, "cells", "c", opts.cellsFile, "cell manifest file (toml, json, or text)")
	cmd.Flags().StringVar(&opts.exprFile, "file", "", "file with one expression per line")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the evaluation cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&opts.save, "save", false, "store results in the history")

	return cmd
}

func (c *CLI) runCost(cmd *cobra.Command, args []string, opts *costOpts) error {
	exprs, err := readExpressions(args, opts.exprFile)
	if err != nil {
		return err
	}

	manifest, err := loadManifest(opts.cellsFile)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var store results.Store
	if opts.save {
		dir, err := historyDir()
		if err != nil {
			return err
		}
		store, err = results.NewFileStore(dir)
		if err != nil {
			return err
		}
		defer store.Close(cmd.Context())
	}

	prog := newProgress(c.Logger)
	var best *results.Result
	for _, npe := range exprs {
		res, err := runner.Execute(cmd.Context(), pipeline.Options{
			NPE:      npe,
			Manifest: manifest,
			Refresh:  opts.refresh,
			Formats:  []string{pipeline.FormatJSON},
		})
		if err != nil {
			return err
		}
		eval := res.Evaluation

		printKeyValue("NPE:", eval.NPE)
		printKeyValue("Cost:", fmt.Sprintf("%.6g (%.6g x %.6g)", eval.Area, eval.Width, eval.Height))
		printStats(res.Stats.NumCells, res.Stats.CurveSize, res.CacheInfo.EvalHit)

		if store != nil {
			if err := store.Put(cmd.Context(), eval); err != nil {
				return err
			}
			printDetail("saved as %s", eval.ID)
		}

		if best == nil || eval.Area < best.Area {
			best = eval
		}
	}
	prog.done(fmt.Sprintf("Evaluated %d expressions", len(exprs)))

	if len(exprs) > 1 {
		printSuccess("Best: %s with area %s",
			StyleHighlight.Render(best.NPE), StyleNumber.Render(fmt.Sprintf("%.6g", best.Area)))
	}
	return nil
}
