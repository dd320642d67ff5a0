// Package policy defines the eviction-policy contract shared by all
// strategies: a pure selection function over a snapshot of entry metadata.
//
// A policy never touches cache storage. The cache builds a []Candidate
// snapshot under its lock, asks the policy which keys to drop, and performs
// the actual removals itself. This keeps every strategy stateless and makes
// eviction order reproducible.
package policy

import "time"

// Candidate is the per-entry metadata a policy is allowed to see.
// Seq is the cache-assigned insertion sequence; strategies use it to break
// ties so that equal sort keys evict in insertion order (oldest first).
type Candidate[K comparable] struct {
	Key          K
	CreatedAt    time.Time
	LastAccessed time.Time
	AccessCount  uint64
	// Size is the best-effort byte estimate produced by the cache's Sizer.
	// Zero when no Sizer is configured.
	Size int64
	Seq  uint64
}

// Policy selects eviction victims from a snapshot of resident entries.
//
// Select must return at most n keys, most-evictable first. It is called
// with the cache lock held, so implementations must not call back into
// the cache. LRU/LFU/FIFO/SizeBased are deterministic; Random is not.
type Policy[K comparable] interface {
	// Select returns up to n keys to evict.
	Select(cands []Candidate[K], n int) []K

	// Name returns the stable identifier of the strategy ("lru", "lfu", ...).
	Name() string
}
