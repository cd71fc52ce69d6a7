// Package cache provides pluggable caching for evaluation results and
// rendered artifacts.
//
// Backends:
//   - [FileCache]: directory of JSON entries for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: no-op, used when caching is disabled
//
// Keys are derived by a [Keyer] from the polish expression and a content
// hash of the cell library, so editing either invalidates naturally.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the expiry applied to cached entries when callers pass 0.
// Evaluations are deterministic, so the TTL exists only to bound disk use.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL; ttl <= 0 means DefaultTTL.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// CostKey identifies an evaluation: one expression against one
	// library (content-hashed).
	CostKey(npe, libHash string) string

	// RenderKey identifies a rendered artifact for an evaluation.
	RenderKey(npe, libHash, format string) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// CostKey generates a key for an evaluation result.
func (k *DefaultKeyer) CostKey(npe, libHash string) string {
	return hashKey("cost", npe, libHash)
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(npe, libHash, format string) string {
	return hashKey("render", npe, libHash, format)
}
