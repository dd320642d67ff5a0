// Package cache provides a generic, bounded in-memory key/value cache with
// per-entry TTL, pluggable eviction policies, exact hit/miss accounting,
// and an optional background sweeper for expired entries.
//
// Design
//
//   - Concurrency: one exclusive mutex guards the whole store. Reads are
//     writes here (every successful Get bumps AccessCount and LastAccessed),
//     so an RWMutex would not buy anything and could tear the two updates
//     apart. All operations, including the eviction a Set may trigger, run
//     to completion inside the critical section.
//
//   - Storage: a single map[K]*Entry[V]. There is no sharding: the capacity
//     bound is exact (Len() <= MaxEntries after every Set) and eviction is
//     deterministic over the whole key set, neither of which per-shard
//     budgets can guarantee.
//
//   - Policies: eviction is pluggable via the policy package. The cache
//     snapshots entry metadata under its lock, asks the policy for victims,
//     and removes them itself. LRU is the default; LFU, FIFO, Random and
//     SizeBased ship in policy subpackages.
//
//   - TTL: entries carry an absolute expiry deadline. Expired entries are
//     logically absent: Get and Contains treat them as misses and remove
//     them on sight. A sweeper goroutine (Options.CleanupInterval) also
//     removes them eagerly; Cleanup can be called manually at any time.
//
//   - Statistics: Stats() returns a point-in-time snapshot. Hits, misses,
//     sets and policy evictions are counted under the lock, so they are
//     exact. Clear() drops entries but keeps the lifetime counters: they
//     describe behavior, not contents.
//
//   - GetOrLoad: coalesces concurrent loads for the same key using
//     singleflight. If Loader is nil, GetOrLoad returns ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals when
//     EnableMetrics is set. Plug the metrics/prom adapter to export them.
//
// Basic usage
//
//	c, err := cache.New[string, []byte](cache.Options[string, []byte]{
//	    MaxEntries: 10_000,
//	})
//	if err != nil {
//	    // only configuration defects fail construction
//	}
//	defer c.Close()
//
//	c.Set("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//
// With TTL and a sweeper
//
//	c, _ := cache.New[string, string](cache.Options[string, string]{
//	    MaxEntries:      1024,
//	    DefaultTTL:      5 * time.Minute,
//	    CleanupInterval: time.Minute, // 0 disables the sweeper
//	})
//	c.SetWithTTL("tmp", "v", 200*time.Millisecond) // per-key override
//
// With an alternative policy
//
//	c, _ := cache.New[string, string](cache.Options[string, string]{
//	    MaxEntries: 2000,
//	    Policy:     lfu.New[string](),
//	})
package cache
