package cache

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictPolicy: removed by the active eviction policy to satisfy the
	// MaxEntries bound.
	EvictPolicy EvictReason = iota
	// EvictTTL: expired by TTL (lazy removal on access, or the sweep).
	EvictTTL
	// EvictCapacity: removed to satisfy the MaxMemoryMB budget.
	EvictCapacity
)

// Metrics exposes cache-level observability hooks. Calls are made with the
// cache lock held; implementations must be fast and must not call back into
// the cache. A NoopMetrics implementation is used when Options.Metrics is
// nil or EnableMetrics is false.
type Metrics interface {
	Hit()
	Miss()
	Set()
	Evict(reason EvictReason)
	Size(entries int, bytes int64)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                      {}
func (NoopMetrics) Miss()                     {}
func (NoopMetrics) Set()                      {}
func (NoopMetrics) Evict(EvictReason)         {}
func (NoopMetrics) Size(entries int, _ int64) {}

var _ Metrics = NoopMetrics{}
