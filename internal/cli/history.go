package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bbaird/floorplan/pkg/results"
)

// historyCommand creates the history command for inspecting saved results.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect saved evaluation results",
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyDeleteCommand())

	return cmd
}

func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved results, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			list, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("History is empty")
				return nil
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			rows := make([][]string, 0, len(list))
			for _, r := range list {
				rows = append(rows, []string{
					shortID(r.ID),
					r.NPE,
					fmt.Sprintf("%.6g", r.Area),
					fmt.Sprintf("%.6g x %.6g", r.Width, r.Height),
					r.CreatedAt.Local().Format("Jan 2 15:04"),
				})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "NPE", "Area", "Shape", "When").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return StyleValue
				})
			fmt.Println(t.Render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum results to list (0 for all)")

	return cmd
}

func (c *CLI) historyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one saved result in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			r, err := resolveResult(cmd, store, args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Result " + r.ID))
			printKeyValue("NPE:", r.NPE)
			printKeyValue("Area:", fmt.Sprintf("%.6g", r.Area))
			printKeyValue("Bounding box:", fmt.Sprintf("%.6g x %.6g", r.Width, r.Height))
			printKeyValue("Aspect ratio:", fmt.Sprintf("%.4g", r.AspectRatio))
			printKeyValue("Curve size:", fmt.Sprintf("%d", r.CurveSize))
			printKeyValue("Created:", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			for _, cell := range r.Cells {
				printDetail("%s: %.6g x %.6g", cell.Name, cell.W, cell.H)
			}
			return nil
		},
	}
}

func (c *CLI) historyDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one saved result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			r, err := resolveResult(cmd, store, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), r.ID); err != nil {
				return err
			}
			printSuccess("Deleted %s", r.ID)
			return nil
		},
	}
}

func openHistory() (results.Store, error) {
	dir, err := historyDir()
	if err != nil {
		return nil, err
	}
	return results.NewFileStore(dir)
}

// resolveResult looks up a result by full or prefix ID.
func resolveResult(cmd *cobra.Command, store results.Store, id string) (*results.Result, error) {
	if r, err := store.Get(cmd.Context(), id); err == nil {
		return r, nil
	}

	list, err := store.List(cmd.Context(), 0)
	if err != nil {
		return nil, err
	}
	var match *results.Result
	for _, r := range list {
		if len(id) >= 4 && len(r.ID) >= len(id) && r.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("ambiguous id prefix %q", id)
			}
			match = r
		}
	}
	if match == nil {
		return nil, results.ErrNotFound
	}
	return match, nil
}

// shortID abbreviates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
