package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kvcraft/unicache/internal/singleflight"
	"github.com/kvcraft/unicache/policy"
	"github.com/kvcraft/unicache/policy/lru"
)

var (
	// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
	ErrNoLoader = errors.New("cache: no Loader provided")

	// ErrZeroMaxEntries is returned by New when MaxEntries is not positive.
	ErrZeroMaxEntries = errors.New("cache: MaxEntries must be > 0")

	// ErrSizerRequired is returned by New when the SizeBased policy is
	// configured without a Sizer to estimate entry sizes with.
	ErrSizerRequired = errors.New("cache: size_based policy requires a Sizer")
)

// store is the single-lock cache implementation behind the Cache interface.
type store[K comparable, V any] struct {
	// ---- guarded by mu ----
	mu      sync.Mutex
	entries map[K]*Entry[V]

	// Lifetime counters. Kept under mu so hit/miss accounting stays exact
	// and hits never race the entry metadata they accompany.
	hits      uint64
	misses    uint64
	evictions uint64
	sets      uint64

	memBytes int64  // running Sizer estimate of resident values
	seq      uint64 // insertion sequence for deterministic tie-breaking

	// ---- immutable after New ----
	createdAt   time.Time
	maxMemBytes int64 // 0 = no byte budget
	sizeBased   bool

	opt     Options[K, V]
	metrics Metrics
	log     logrus.FieldLogger

	sweeper *sweeper[K, V]

	closed    atomic.Bool
	closeOnce sync.Once

	// singleflight group coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]
}

// New constructs a cache with the provided Options.
//
// Only configuration defects fail: MaxEntries <= 0 (ErrZeroMaxEntries), a
// SizeBased policy without a Sizer (ErrSizerRequired), and negative
// intervals/budgets. Expected misses at runtime are never errors.
func New[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	if opt.Policy == nil {
		opt.Policy = lru.New[K]()
	}
	if opt.Sizer == nil {
		opt.Sizer = DefaultSizer[V]
	}

	metrics := opt.Metrics
	if metrics == nil || !opt.EnableMetrics {
		metrics = NoopMetrics{}
	}
	log := opt.Logger
	if log == nil {
		log = logrus.StandardLogger().WithField("component", "cache")
	}

	c := &store[K, V]{
		entries:     make(map[K]*Entry[V], opt.MaxEntries),
		createdAt:   time.Now(),
		maxMemBytes: opt.MaxMemoryMB * 1024 * 1024,
		sizeBased:   opt.Policy.Name() == "size_based",
		opt:         opt,
		metrics:     metrics,
		log:         log,
	}
	if opt.Clock != nil {
		c.createdAt = opt.Clock.Now()
	}
	if opt.CleanupInterval > 0 {
		c.sweeper = newSweeper(c, opt.CleanupInterval)
	}
	return c, nil
}

// ---- Cache[K,V] implementation ----

// Get returns the value for k and updates the entry's access metadata.
// Expired entries are misses and are removed on sight: they are logically
// absent even before the sweeper catches them.
func (c *store[K, V]) Get(k K) (V, bool) {
	var zero V
	if c.closed.Load() {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		c.misses++
		c.metrics.Miss()
		return zero, false
	}
	now := c.now()
	if e.expiredAt(now) {
		c.removeEntryLocked(k, e, EvictTTL)
		c.misses++
		c.metrics.Miss()
		return zero, false
	}

	// Both access fields move together under mu: no reader can observe
	// one updated and not the other.
	e.AccessCount++
	e.LastAccessed = now

	c.hits++
	c.metrics.Hit()
	return e.Value, true
}

// Set inserts or fully replaces k→v, using DefaultTTL if set. A replaced
// entry is rebuilt from scratch; no metadata survives the overwrite.
func (c *store[K, V]) Set(k K, v V) {
	c.put(k, v, c.opt.DefaultTTL, nil)
}

// SetWithTTL inserts or replaces k→v with a per-entry TTL.
// A non-positive ttl disables expiration for this entry.
func (c *store[K, V]) SetWithTTL(k K, v V, ttl time.Duration) {
	c.put(k, v, ttl, nil)
}

// SetAnnotated is Set with free-form metadata attached to the entry. The
// cache core never reads the annotations; Inspect returns them.
func (c *store[K, V]) SetAnnotated(k K, v V, ttl time.Duration, metadata map[string]string) {
	c.put(k, v, ttl, metadata)
}

// Add inserts k→v only if absent, using DefaultTTL if set.
// Returns false if the key already exists (no update is performed).
func (c *store[K, V]) Add(k K, v V) bool {
	if c.closed.Load() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[k]; exists {
		return false
	}
	c.insertLocked(k, v, c.opt.DefaultTTL, nil)
	c.sets++
	c.metrics.Set()
	c.enforceLimitsLocked()
	return true
}

func (c *store[K, V]) put(k K, v V, ttl time.Duration, metadata map[string]string) {
	if c.closed.Load() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.insertLocked(k, v, ttl, metadata)
	c.sets++
	c.metrics.Set()

	// Eviction runs synchronously as part of the same critical section,
	// so Len() <= MaxEntries holds the moment put returns.
	c.enforceLimitsLocked()
}

// Delete removes k if present and reports whether an entry was removed.
// Deleting an absent key alters no counters.
func (c *store[K, V]) Delete(k K) bool {
	if c.closed.Load() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return false
	}
	delete(c.entries, k)
	c.memBytes -= e.size
	// An explicit Delete is not an eviction; the policy did not choose it.
	return true
}

// Clear removes all entries but keeps the lifetime hit/miss/eviction/set
// counters: they describe behavior over the cache's life, not its current
// contents, and resetting them would break metrics continuity.
func (c *store[K, V]) Clear() {
	if c.closed.Load() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*Entry[V], c.opt.MaxEntries)
	c.memBytes = 0
	c.metrics.Size(0, 0)
}

// Len returns the number of resident entries, expired ones included until
// they are swept or touched.
func (c *store[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Contains reports whether k holds a live entry. Expired entries are
// removed on sight, like in Get, but no access bookkeeping or hit/miss
// accounting happens.
func (c *store[K, V]) Contains(k K) bool {
	if c.closed.Load() {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return false
	}
	if e.expiredAt(c.now()) {
		c.removeEntryLocked(k, e, EvictTTL)
		return false
	}
	return true
}

// Inspect returns a copy of the entry stored under k, for debugging and
// TTL/metadata inspection. Same expiry semantics as Contains.
func (c *store[K, V]) Inspect(k K) (Entry[V], bool) {
	if c.closed.Load() {
		return Entry[V]{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return Entry[V]{}, false
	}
	if e.expiredAt(c.now()) {
		c.removeEntryLocked(k, e, EvictTTL)
		return Entry[V]{}, false
	}
	cp := *e
	if e.Metadata != nil {
		cp.Metadata = make(map[string]string, len(e.Metadata))
		for mk, mv := range e.Metadata {
			cp.Metadata[mk] = mv
		}
	}
	return cp, true
}

// Stats returns a point-in-time snapshot. The hit ratio is recomputed from
// the counters on every call, never cached.
func (c *store[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	mem := c.memBytes
	if mem < 0 {
		mem = 0
	}
	return Stats{
		TotalEntries:     uint64(len(c.entries)),
		TotalHits:        c.hits,
		TotalMisses:      c.misses,
		TotalEvictions:   c.evictions,
		TotalSets:        c.sets,
		HitRatio:         hitRatio(c.hits, c.misses),
		MemoryUsageBytes: uint64(mem),
		UptimeSeconds:    c.now().Sub(c.createdAt).Seconds(),
		CreatedAt:        c.createdAt,
	}
}

// Cleanup removes every expired entry and returns how many were removed.
// Safe to call at any time, from the sweeper or manually.
func (c *store[K, V]) Cleanup() int {
	if c.closed.Load() {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if e.expiredAt(now) {
			c.removeEntryLocked(k, e, EvictTTL)
			removed++
		}
	}
	if removed > 0 {
		c.metrics.Size(len(c.entries), c.memBytes)
	}
	return removed
}

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key (singleflight).
func (c *store[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	// fast path
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return c.sf.Do(ctx, k, func() (V, error) {
		// double-check after flight join
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err == nil {
			c.Set(k, v)
		}
		return v, err
	})
}

// Close cancels the background sweeper before tearing down storage, so no
// cleanup tick can race a torn-down map. Idempotent; further operations on
// a closed cache are ignored.
func (c *store[K, V]) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		if c.sweeper != nil {
			c.sweeper.close()
		}
		c.mu.Lock()
		c.entries = make(map[K]*Entry[V])
		c.memBytes = 0
		c.mu.Unlock()
	})
	return nil
}

// -------------------- internals (mu held) --------------------

func (c *store[K, V]) now() time.Time {
	if c.opt.Clock != nil {
		return c.opt.Clock.Now()
	}
	return time.Now()
}

// insertLocked builds a fresh entry and installs it, replacing any previous
// entry under the same key wholesale.
func (c *store[K, V]) insertLocked(k K, v V, ttl time.Duration, metadata map[string]string) {
	now := c.now()
	e := &Entry[V]{
		Value:        v,
		CreatedAt:    now,
		LastAccessed: now,
		size:         c.opt.Sizer(v),
	}
	if ttl > 0 {
		e.TTL = ttl
		e.ExpiresAt = now.Add(ttl)
	}
	if len(metadata) > 0 {
		e.Metadata = make(map[string]string, len(metadata))
		for mk, mv := range metadata {
			e.Metadata[mk] = mv
		}
	}
	c.seq++
	e.seq = c.seq

	if old, ok := c.entries[k]; ok {
		c.memBytes -= old.size
	}
	c.entries[k] = e
	c.memBytes += e.size
}

// removeEntryLocked deletes the entry, updates bookkeeping and notifies the
// metrics sink and the OnEvict callback. Policy and byte-budget removals
// count as evictions; TTL removals are sweep work, not eviction.
func (c *store[K, V]) removeEntryLocked(k K, e *Entry[V], reason EvictReason) {
	delete(c.entries, k)
	c.memBytes -= e.size
	if reason == EvictPolicy || reason == EvictCapacity {
		c.evictions++
	}
	c.metrics.Evict(reason)
	if cb := c.opt.OnEvict; cb != nil {
		// Called under the lock; callbacks must stay lightweight.
		cb(k, e.Value, reason)
	}
}

// enforceLimitsLocked evicts until both the entry-count bound and, for the
// SizeBased policy, the byte budget are satisfied.
func (c *store[K, V]) enforceLimitsLocked() {
	if over := len(c.entries) - c.opt.MaxEntries; over > 0 {
		c.evictLocked(over, EvictPolicy)
	}
	if c.sizeBased && c.maxMemBytes > 0 {
		for c.memBytes > c.maxMemBytes && len(c.entries) > 0 {
			c.evictLocked(1, EvictCapacity)
		}
	}
	c.metrics.Size(len(c.entries), c.memBytes)
}

// evictLocked snapshots entry metadata, asks the policy for n victims and
// removes them.
func (c *store[K, V]) evictLocked(n int, reason EvictReason) {
	cands := make([]policy.Candidate[K], 0, len(c.entries))
	for k, e := range c.entries {
		cands = append(cands, policy.Candidate[K]{
			Key:          k,
			CreatedAt:    e.CreatedAt,
			LastAccessed: e.LastAccessed,
			AccessCount:  e.AccessCount,
			Size:         e.size,
			Seq:          e.seq,
		})
	}
	victims := c.opt.Policy.Select(cands, n)
	if len(victims) < n {
		// Structurally impossible while the construction-time checks
		// hold; surfaced loudly rather than silently under-evicting.
		c.log.WithFields(logrus.Fields{
			"policy": c.opt.Policy.Name(),
			"want":   n,
			"got":    len(victims),
		}).Error("cache: policy selected fewer eviction victims than required")
	}
	for _, k := range victims {
		if e, ok := c.entries[k]; ok {
			c.removeEntryLocked(k, e, reason)
		}
	}
}
