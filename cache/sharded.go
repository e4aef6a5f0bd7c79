// Package cache provides a sharded, content-keyed cache for static GPU
// resources. Entries are pinned: a static mesh buffer is uploaded once per
// distinct content key and outlives all individual draws, so there is no
// eviction. The cache guarantees at-most-one create per key even under
// concurrent first use.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// Default configuration constants.
const (
	// DefaultShardCount is the number of shards for reduced lock
	// contention. Must be a power of 2 for fast modulo via bitwise AND.
	DefaultShardCount = 16

	// shardMask is used for fast shard selection (DefaultShardCount - 1).
	shardMask = DefaultShardCount - 1
)

// Hasher is a function that computes a hash for a key.
// Used by Sharded for shard selection.
type Hasher[K any] func(K) uint64

// StringHasher computes FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Uint64Hasher returns the key itself as the hash (identity hash).
func Uint64Hasher(u uint64) uint64 {
	return u
}

// Sharded is a thread-safe, sharded cache of pinned entries.
//
// Features:
//   - 16 shards for reduced lock contention
//   - At-most-one create per key, even when requested concurrently
//   - Failed creates leave no partial state behind
//   - Atomic statistics for monitoring
type Sharded[K comparable, V any] struct {
	shards [DefaultShardCount]*shard[K, V]
	hasher Hasher[K]

	// Statistics (atomic for zero-allocation reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

// shard is a single shard of the cache.
// Each shard has its own mutex for reduced contention.
type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// NewSharded creates a new sharded cache.
//
// The hasher function is used to compute hash values for shard selection.
// Use StringHasher or Uint64Hasher for common key types.
func NewSharded[K comparable, V any](hasher Hasher[K]) *Sharded[K, V] {
	c := &Sharded[K, V]{hasher: hasher}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{entries: make(map[K]V)}
	}
	return c
}

// getShard returns the shard for a given key.
// Uses bitwise AND for fast modulo (only works with power-of-2 shard count).
func (c *Sharded[K, V]) getShard(key K) *shard[K, V] {
	hash := c.hasher(key)
	return c.shards[hash&shardMask]
}

// Get retrieves a cached value by key.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.getShard(key)
	s.mu.RLock()
	value, ok := s.entries[key]
	s.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return value, ok
}

// GetOrCreate returns the cached value for key, creating it with create on
// first use. This is the preferred access method: it guarantees create runs
// at most once per key, with later concurrent requesters observing the
// first requester's result.
//
// create runs with the shard lock held to prevent a thundering herd; keep
// it bounded (buffer upload, not arbitrary work). If create fails, nothing
// is cached and the error is returned to this caller only; a later request
// for the same key will retry.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	s := c.getShard(key)

	// Fast path: read lock only.
	s.mu.RLock()
	value, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return value, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check after acquiring the write lock; another goroutine may
	// have created the entry meanwhile.
	if value, ok := s.entries[key]; ok {
		c.hits.Add(1)
		return value, nil
	}

	c.misses.Add(1)

	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	s.entries[key] = value
	return value, nil
}

// Set stores a value in the cache, replacing any existing entry.
//
// The value is stored as-is (not copied). Callers should not modify it
// after caching.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.getShard(key)
	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Sharded[K, V]) Delete(key K) bool {
	s := c.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// Range calls fn for every cached entry until fn returns false. Used by
// owners to release the underlying resources on teardown. The shard lock
// is held during each call; fn must not call back into the cache.
func (c *Sharded[K, V]) Range(fn func(key K, value V) bool) {
	for _, s := range c.shards {
		s.mu.RLock()
		for k, v := range s.entries {
			if !fn(k, v) {
				s.mu.RUnlock()
				return
			}
		}
		s.mu.RUnlock()
	}
}

// Clear removes all entries from the cache.
func (c *Sharded[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[K]V)
		s.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

// Stats returns current cache statistics.
// This operation is mostly lock-free (atomic counters).
func (c *Sharded[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:     c.Len(),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}

// ResetStats resets all statistics counters to zero.
func (c *Sharded[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
}
