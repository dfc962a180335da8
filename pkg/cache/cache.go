// Package cache memoises path transformations for the lifetime of a rule list.
//
// A PathCache is filled lazily: the first lookup of a path computes its
// title, later lookups in the same epoch return the stored value. Invalidate
// starts a new epoch and must be called whenever the rules change.
package cache

import (
	"github.com/arthur-debert/pathtitle/pkg/logging"
)

// Resolver computes the uncached value for a path
type Resolver func(path string) (string, error)

// PathCache maps raw paths to transformed paths.
// It is not safe for concurrent use.
type PathCache struct {
	resolve Resolver
	entries map[string]string
	epoch   uint64
}

// New creates an empty cache that fills itself with resolve
func New(resolve Resolver) *PathCache {
	return &PathCache{
		resolve: resolve,
		entries: make(map[string]string),
	}
}

// Get returns the transformed path, computing it on first use.
// Failed lookups are not stored and will be retried.
func (c *PathCache) Get(path string) (string, error) {
	if v, ok := c.entries[path]; ok {
		return v, nil
	}

	v, err := c.resolve(path)
	if err != nil {
		return "", err
	}
	c.entries[path] = v

	logger := logging.GetLogger("cache")
	logger.Trace().
		Str("path", path).
		Str("title", v).
		Uint64("epoch", c.epoch).
		Msg("Cached path")
	return v, nil
}

// Invalidate drops every entry and starts a new epoch
func (c *PathCache) Invalidate() {
	if len(c.entries) > 0 {
		logger := logging.GetLogger("cache")
		logger.Debug().
			Int("entries", len(c.entries)).
			Uint64("epoch", c.epoch).
			Msg("Invalidating path cache")
	}
	c.entries = make(map[string]string)
	c.epoch++
}

// Len returns the number of cached paths
func (c *PathCache) Len() int {
	return len(c.entries)
}

// Epoch returns how many times the cache has been invalidated
func (c *PathCache) Epoch() uint64 {
	return c.epoch
}
