// Package cache stores layout results and rendered artifacts.
//
// A [Cache] is a byte store with expiring entries. [FileCache] serves the
// CLI and [RedisCache] the HTTP service running as several instances.
// [SQLiteCache] keeps everything in one database file, and [NullCache]
// is used when caching is disabled. Keys come
// from a [Keyer] so that the same input and options always map to the
// same entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored data. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the backend.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies the layout of an input diagram under options.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendering of a layout result.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the options that change a layout result.
type LayoutKeyOpts struct {
	Direction string `json:"direction,omitempty"`
	// Options is a hash of the remaining layout options.
	Options string `json:"options,omitempty"`
}

// ArtifactKeyOpts holds the options that change a rendering.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style,omitempty"`
}

// DefaultKeyer hashes the key parts with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
