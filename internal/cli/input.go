package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/bbaird/floorplan/pkg/cells"
	"github.com/bbaird/floorplan/pkg/errors"
)

// loadManifest reads a cell manifest from path. The format is chosen by
// file extension (.toml, .json, or plain text).
func loadManifest(path string) (cells.Manifest, error) {
	lib, err := cells.ReadFile(path)
	if err != nil {
		return cells.Manifest{}, err
	}
	return cells.FromLibrary(lib), nil
}

// readExpressions collects expressions from command arguments and,
// optionally, from a file with one expression per line. Blank lines and
// lines starting with '#' are skipped.
func readExpressions(args []string, file string) ([]string, error) {
	exprs := append([]string(nil), args...)

	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open expression file %q", file)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			exprs = append(exprs, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read expression file %q", file)
		}
	}

	if len(exprs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no expressions given (pass them as arguments or via --file)")
	}
	return exprs, nil
}
