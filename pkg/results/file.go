package results

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bbaird/floorplan/pkg/errors"
)

// FileStore persists one JSON file per result in a directory. It backs
// the CLI's evaluation history.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Get retrieves a result by ID.
func (s *FileStore) Get(ctx context.Context, id string) (*Result, error) {
	if err := errors.ValidateResultID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Put stores a result.
func (s *FileStore) Put(ctx context.Context, r *Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(r.ID), data, 0o644)
}

// List returns results newest first.
func (s *FileStore) List(ctx context.Context, limit int) ([]*Result, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	out := make([]*Result, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		r, err := s.Get(ctx, strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			// Unreadable entries are skipped, not fatal.
			continue
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a result.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateResultID(id); err != nil {
		return err
	}
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
