// Package cache stores validation reports keyed by asset content hash, so
// re-validating an unchanged file is a lookup instead of a full graph walk.
// Backends: an in-process LRU tier, a file tier for persistence across CLI
// invocations, and a null backend for disabling caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// Implementations must treat an expired entry as a miss.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for the things the CLI caches.
type Keyer interface {
	// ReportKey generates the key for a validation report of an asset with
	// the given content hash.
	ReportKey(assetHash string, opts ReportKeyOpts) string
}

// ReportKeyOpts captures everything besides the asset bytes that changes a
// validation result. Reports produced by different tool versions or
// strictness levels must not collide.
type ReportKeyOpts struct {
	ToolVersion string
	Strict      bool
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ReportKey generates a key of the form report:hash(asset, version, strict).
func (k *DefaultKeyer) ReportKey(assetHash string, opts ReportKeyOpts) string {
	return hashKey("report", assetHash, opts.ToolVersion, opts.Strict)
}
