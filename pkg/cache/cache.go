// Package cache stores generation results between runs.
//
// A [Cache] is a byte store with per-entry expiry. Three backends exist:
// [FileCache] for the CLI, [RedisCache] for the server, and [NullCache] when
// caching is disabled. Keys come from a [Keyer] so callers never build key
// strings by hand.
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries. Generation is deterministic for a given word list
// and options, so entries only expire to bound disk and memory use.
const (
	TTLGrids  = 7 * 24 * time.Hour
	TTLRender = 24 * time.Hour
)

// Cache is a key/value store for serialized results.
// Get reports a miss with (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// GridsKey identifies the ranked grids for a word list.
	GridsKey(words []string, opts GridsKeyOpts) string
	// RenderKey identifies one rendered output of a cached result.
	RenderKey(gridsKey, format string) string
}

// GridsKeyOpts holds the options that change a generation result.
type GridsKeyOpts struct {
	ResultLimit    int  `json:"result_limit"`
	IterationLimit int  `json:"iteration_limit"`
	FirstSeedOnly  bool `json:"first_seed_only"`
}

// DefaultKeyer hashes its inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GridsKey hashes the word list and options. The word order is part of the
// key: it decides the search order, so it changes which grids survive an
// iteration limit, and reports echo the words as given.
func (DefaultKeyer) GridsKey(words []string, opts GridsKeyOpts) string {
	return hashKey("grids", words, opts)
}

// RenderKey derives a render key from a grids key.
func (DefaultKeyer) RenderKey(gridsKey, format string) string {
	return "render:" + format + ":" + gridsKey
}
