package results

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps results in memory. Safe for concurrent use; contents
// are lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]*Result
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[string]*Result)}
}

// Get retrieves a result by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

// Put stores a result.
func (s *MemoryStore) Put(ctx context.Context, r *Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[r.ID] = r
	return nil
}

// List returns results newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Result, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a result.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
