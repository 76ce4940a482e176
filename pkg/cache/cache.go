// Package cache stores encoded generation results and rendered artifacts.
//
// A [Cache] is a byte store with expiration. Backends are [FileCache] for
// local CLI use, [RedisCache] and [MongoCache] for shared deployments, and
// [NullCache] when caching is disabled. A [Keyer] derives the keys: results
// are keyed by the grammar's content hash plus every generation option, and
// artifacts by the hash of the result they render.
package cache

import (
	"context"
	"time"
)

// Default lifetimes for cached entries. Results are deterministic for a
// grammar and option set, so the TTLs only bound disk usage.
const (
	TTLResult   = 7 * 24 * time.Hour
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is a key/value store for encoded results and artifacts.
//
// Get reports a miss with ok == false and a nil error. Errors are reserved for
// backend failures; callers treat them as misses.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// ResultKeyOpts holds the generation options that change a result.
type ResultKeyOpts struct {
	Depth       int    `json:"depth"`
	Derivations bool   `json:"derivations"`
	Repetition  string `json:"repetition"`
	LowMemory   bool   `json:"low_memory"`
}

// ArtifactKeyOpts holds the rendering options that change an artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ResultKey returns the key of a generation result for the grammar with
	// content hash grammarHash.
	ResultKey(grammarHash string, opts ResultKeyOpts) string

	// ArtifactKey returns the key of a rendering of the result with content
	// hash resultHash.
	ArtifactKey(resultHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey returns "result:<sha256>" over the grammar hash and options.
func (DefaultKeyer) ResultKey(grammarHash string, opts ResultKeyOpts) string {
	return hashKey("result", grammarHash, opts)
}

// ArtifactKey returns "artifact:<sha256>" over the result hash and options.
func (DefaultKeyer) ArtifactKey(resultHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", resultHash, opts)
}
