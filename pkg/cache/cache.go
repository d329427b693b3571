// Package cache provides result caching for computed bases.
//
// Completion runs are pure functions of the problem data and the run
// options, which makes their results ideal cache entries: the key is a
// content hash, the value is the serialized result, and invalidation is
// never needed beyond an optional TTL. Three backends cover the usual
// deployments: FileCache for the CLI, RedisCache for shared service
// replicas, and NullCache to disable caching entirely.
package cache

import (
	"context"
	"time"
)

// TTLBasis bounds how long computed bases stay cached. Results never go
// stale, the TTL only bounds storage growth.
const TTLBasis = 30 * 24 * time.Hour

// Cache stores serialized results under content-hash keys.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A positive ttl expires the entry, zero keeps
	// it until deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// BasisKeyOpts are the run options that influence a computed basis and
// therefore belong in its cache key. Options that only steer the run,
// like the interreduction frequency, stay out: the reduced basis is
// unique regardless.
type BasisKeyOpts struct {
	Algorithm   string `json:"algorithm"`
	ModuleOrder string `json:"module_order,omitempty"`
}

// Keyer builds cache keys for computed bases.
type Keyer interface {
	// BasisKey identifies a basis by the problem content hash and the
	// options that influence the result.
	BasisKey(problemHash string, opts BasisKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a "basis:" prefix over a
// SHA-256 of the problem hash and options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// BasisKey generates the key for a computed basis.
func (k *DefaultKeyer) BasisKey(problemHash string, opts BasisKeyOpts) string {
	return hashKey("basis", problemHash, opts)
}
