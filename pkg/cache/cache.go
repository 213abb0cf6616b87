// Package cache provides content-addressed caching for pipeline stages.
//
// Arrangements, layouts, and rendered artifacts are all pure functions
// of their inputs, so they cache under keys derived from hashing those
// inputs. Backends are pluggable: a file cache for CLI usage, an
// in-memory cache for tests and single-process servers, a Redis cache
// for shared deployments, and a null cache to disable caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache TTLs per stage. Everything here is deterministic, so the TTLs
// exist only to bound disk/memory growth, not for correctness.
const (
	// TTLArrangement is the lifetime of cached placement results.
	TTLArrangement = 30 * 24 * time.Hour

	// TTLLayout is the lifetime of cached resolution results.
	TTLLayout = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with TTL support.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// ArrangementKeyOpts are the placement inputs that affect an
// arrangement's identity beyond the span-preference list itself.
type ArrangementKeyOpts struct {
	FixedTracks int
	Flow        string
	SpanPolicy  string
}

// LayoutKeyOpts are the sizing inputs that affect a layout's identity
// beyond the arrangement it resolves.
type LayoutKeyOpts struct {
	Width  float64
	Height float64
	Mode   string
	Flow   string
}

// ArtifactKeyOpts are the render inputs that affect an artifact's
// identity beyond the layout it renders.
type ArtifactKeyOpts struct {
	Format    string
	Labels    bool
	Scale     float64
	TextWidth int
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// ArrangementKey generates a key for a placement result.
	// prefsHash is the content hash of the span-preference list.
	ArrangementKey(prefsHash string, opts ArrangementKeyOpts) string

	// LayoutKey generates a key for a resolution result.
	// arrangementHash is the content hash of the serialized arrangement;
	// tracksHash covers the per-track sizing rules and intrinsic sizes.
	LayoutKey(arrangementHash, tracksHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArrangementKey generates a key for a placement result.
func (k *DefaultKeyer) ArrangementKey(prefsHash string, opts ArrangementKeyOpts) string {
	return hashKey("arrangement", prefsHash, opts)
}

// LayoutKey generates a key for a resolution result.
func (k *DefaultKeyer) LayoutKey(arrangementHash, tracksHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", arrangementHash, tracksHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
