// Package cli implements the floorplan command-line interface.
//
// This package provides commands for validating normalized Polish
// expressions, evaluating slicing trees against a cell library, rendering
// trees and shape curves, and managing the evaluation cache and result
// history. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - validate: Check expressions for structural validity
//   - cost: Evaluate expressions and report the minimum area
//   - plan: Show the realized cell dimensions of the best configuration
//   - render: Generate DOT, SVG, PNG, or PDF output
//   - explore: Browse the root shape curve interactively
//   - history: Inspect saved evaluation results
//   - serve: Run the HTTP evaluation API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bbaird/floorplan/pkg/buildinfo"
	"github.com/bbaird/floorplan/pkg/cache"
	"github.com/bbaird/floorplan/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "floorplan"

	// defaultCellsFile is the manifest consulted when --cells is not given.
	defaultCellsFile = "cells.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "floorplan",
		Short:        "Floorplan evaluates slicing-tree area costs",
		Long:         `Floorplan is a CLI tool for evaluating slicing floorplans described by normalized Polish expressions. It builds the slicing tree, combines cell shape curves bottom-up, and reports the minimum achievable bounding area.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.costCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/floorplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// historyDir returns the result history directory using XDG standard
// (~/.local/share/floorplan/results/).
func historyDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "results"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "results"), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
