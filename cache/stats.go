package cache

import "time"

// Stats is a point-in-time snapshot of a cache's counters. Producing a
// snapshot never mutates them.
type Stats struct {
	// TotalEntries is the number of live entries at snapshot time.
	TotalEntries uint64

	// Lifetime counters. Clear() does not reset them.
	TotalHits      uint64
	TotalMisses    uint64
	TotalEvictions uint64
	TotalSets      uint64

	// HitRatio is TotalHits / (TotalHits + TotalMisses), or 0 when no
	// lookups happened yet. It is always recomputed from the counters.
	HitRatio float64

	// MemoryUsageBytes is the running sum of the per-entry Sizer
	// estimates. Best-effort, not authoritative.
	MemoryUsageBytes uint64

	// UptimeSeconds is the time since the cache was constructed.
	UptimeSeconds float64

	// CreatedAt is when the cache was constructed.
	CreatedAt time.Time
}

// hitRatio computes the ratio from raw counters, guarding the zero
// denominator.
func hitRatio(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
