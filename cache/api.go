package cache

import (
	"context"
	"time"
)

// Cache is a bounded in-memory key/value cache with TTL expiry.
// All methods are safe for concurrent use by multiple goroutines.
//
// Expected misses (absent or expired keys) are reported through the boolean
// result, never as errors; only construction can fail.
type Cache[K comparable, V any] interface {
	// Get returns the value for k and a presence flag. On hit it updates
	// the entry's access metadata. An expired entry is a miss and is
	// removed on sight.
	Get(k K) (V, bool)

	// Set inserts or fully replaces k→v using DefaultTTL (if any).
	// If the insert pushes the store over MaxEntries, the configured
	// policy evicts the overflow before Set returns.
	Set(k K, v V)

	// SetWithTTL is Set with a per-entry TTL override.
	// A non-positive ttl disables expiration for this entry.
	SetWithTTL(k K, v V, ttl time.Duration)

	// SetAnnotated is Set with free-form metadata attached to the entry.
	// The cache core never reads the annotations; Inspect returns them.
	// ttl semantics match SetWithTTL.
	SetAnnotated(k K, v V, ttl time.Duration, metadata map[string]string)

	// Add inserts k→v only if k is not present (no update), using
	// DefaultTTL. Returns false if the key already exists.
	Add(k K, v V) bool

	// Delete removes k if present and reports whether an entry was
	// removed. Deleting an absent key is a no-op and touches no counters.
	Delete(k K) bool

	// Clear removes all entries. Lifetime hit/miss/eviction/set counters
	// are kept; they describe behavior, not current contents.
	Clear()

	// Len returns the number of resident entries.
	Len() int

	// Contains reports whether k holds a live entry. Like Get it treats
	// expired entries as absent and removes them, but it does not touch
	// access metadata or hit/miss counters.
	Contains(k K) bool

	// Inspect returns a copy of the entry stored under k for TTL and
	// metadata inspection. Same expiry semantics as Contains; no access
	// bookkeeping happens.
	Inspect(k K) (Entry[V], bool)

	// Stats returns a point-in-time snapshot of the cache counters.
	Stats() Stats

	// Cleanup removes every expired entry and returns how many were
	// removed. Safe to call at any time; the background sweeper calls it
	// on its schedule.
	Cleanup() int

	// GetOrLoad returns the value for k, loading it via Options.Loader on
	// miss. Concurrent loads for the same key are coalesced. If no Loader
	// was configured, returns ErrNoLoader.
	GetOrLoad(ctx context.Context, k K) (V, error)

	// Close cancels the background sweeper and releases storage. Further
	// operations are ignored. Close is idempotent.
	Close() error
}
