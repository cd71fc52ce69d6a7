package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bbaird/floorplan/pkg/pipeline"
)

// planOpts holds the command-line flags for the plan command.
type planOpts struct {
	cellsFile string
	noCache   bool
	refresh   bool
}

// planCommand creates the plan command, which reports the best
// configuration in detail: the chosen root shape and the dimensions every
// cell takes in it.
func (c *CLI) planCommand() *cobra.Command {
	opts := planOpts{cellsFile: defaultCellsFile}

	cmd := &cobra.Command{
		Use:   "plan <expression>",
		Short: "Show the realized cell dimensions of the best configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.cellsFile, "cells", "c", opts.cellsFile, "cell manifest file (toml, json, or text)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the evaluation cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

func (c *CLI) runPlan(cmd *cobra.Command, npe string, opts *planOpts) error {
	manifest, err := loadManifest(opts.cellsFile)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

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

	fmt.Println(StyleTitle.Render("Floorplan " + eval.NPE))
	printKeyValue("Area:", fmt.Sprintf("%.6g", eval.Area))
	printKeyValue("Bounding box:", fmt.Sprintf("%.6g x %.6g", eval.Width, eval.Height))
	printKeyValue("Aspect ratio:", fmt.Sprintf("%.4g", eval.AspectRatio))
	printStats(res.Stats.NumCells, res.Stats.CurveSize, res.CacheInfo.EvalHit)
	fmt.Println()

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, 0, len(eval.Cells))
	for _, cell := range eval.Cells {
		rows = append(rows, []string{
			cell.Name,
			fmt.Sprintf("%.6g", cell.W),
			fmt.Sprintf("%.6g", cell.H),
			fmt.Sprintf("%.6g", cell.W*cell.H),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Cell", "Width", "Height", "Area").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	return nil
}
