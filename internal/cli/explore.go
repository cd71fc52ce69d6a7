package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bbaird/floorplan/pkg/floorplan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command, an interactive browser for
// the root shape curve. Every point of the curve is a realizable shape;
// selecting one shows what each cell looks like under it.
func (c *CLI) exploreCommand() *cobra.Command {
	var cellsFile string

	cmd := &cobra.Command{
		Use:   "explore <expression>",
		Short: "Browse the root shape curve interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := loadManifest(cellsFile)
			if err != nil {
				return err
			}
			lib, err := manifest.Library()
			if err != nil {
				return err
			}
			root, err := floorplan.Build(args[0], lib)
			if err != nil {
				return err
			}
			root.Evaluate()

			model := newCurveModel(args[0], root)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&cellsFile, "cells", "c", defaultCellsFile, "cell manifest file (toml, json, or text)")

	return cmd
}

// CurveModel is the bubbletea model for interactive curve browsing.
type CurveModel struct {
	NPE    string
	Root   *floorplan.Node
	Cursor int
	Height int
	Offset int
}

func newCurveModel(npe string, root *floorplan.Node) CurveModel {
	cursor := 0
	for i := range root.Curve {
		if root.Selected != nil && root.Curve[i].Equal(*root.Selected) {
			cursor = i
			break
		}
	}
	return CurveModel{
		NPE:    npe,
		Root:   root,
		Cursor: cursor,
		Height: 15,
	}
}

func (m CurveModel) Init() tea.Cmd {
	return nil
}

func (m CurveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Root.Curve)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor = 0
			m.Offset = 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CurveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Shape Curve " + m.NPE))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Root.Curve) {
		end = len(m.Root.Curve)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Root.Curve[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		best := ""
		if m.Root.Selected != nil && p.Equal(*m.Root.Selected) {
			best = "min"
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%.6g", p.W),
			fmt.Sprintf("%.6g", p.H),
			fmt.Sprintf("%.6g", p.Area()),
			best,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Width", "Height", "Area", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return StyleValue
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Root.Curve))))

	return b.String()
}

// detailView shows the per-cell dimensions of the highlighted shape.
func (m CurveModel) detailView() string {
	if m.Cursor >= len(m.Root.Curve) {
		return ""
	}
	p := &m.Root.Curve[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleDim.Render("  cells: "))
	for i, d := range m.Root.RealizeAt(p) {
		if i > 0 {
			b.WriteString(StyleDim.Render("  "))
		}
		b.WriteString(StyleHighlight.Render(string(d.Name)))
		b.WriteString(StyleDim.Render(fmt.Sprintf(" %.4g x %.4g", d.W, d.H)))
	}
	return b.String()
}
