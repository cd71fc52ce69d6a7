package cli

import (
	"github.com/spf13/cobra"

	"github.com/bbaird/floorplan/pkg/errors"
	"github.com/bbaird/floorplan/pkg/floorplan"
)

// validateCommand creates the validate command for checking expressions.
func (c *CLI) validateCommand() *cobra.Command {
	var exprFile string

	cmd := &cobra.Command{
		Use:   "validate [expression...]",
		Short: "Check expressions for structural validity",
		Long: `Check that expressions are valid normalized Polish expressions:
unique operands, no adjacent identical cut operators, and more operands
than operators in every prefix.

The command exits non-zero if any expression is invalid.

Examples:
  floorplan validate 12V3H
  floorplan validate --file candidates.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			exprs, err := readExpressions(args, exprFile)
			if err != nil {
				return err
			}

			invalid := 0
			for _, npe := range exprs {
				if err := floorplan.Validate(npe); err != nil {
					printError("%s: %s", npe, errors.UserMessage(err))
					invalid++
					continue
				}
				printSuccess("%s", npe)
			}

			if invalid > 0 {
				return errors.New(errors.ErrCodeInvalidExpression,
					"%d of %d expressions invalid", invalid, len(exprs))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&exprFile, "file", "", "file with one expression per line")

	return cmd
}
