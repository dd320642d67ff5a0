package cache

import "time"

// Entry is the atomic unit of storage: the payload plus the metadata the
// eviction policies and the sweeper decide on. Entries are created only by
// Set/Add, mutated only by Get (access bookkeeping), and destroyed by
// Delete, Clear, eviction, or the expiry sweep.
type Entry[V any] struct {
	Value V

	// CreatedAt is set once at insertion and never changes.
	CreatedAt time.Time

	// LastAccessed and AccessCount are updated together under the cache
	// lock on every successful Get.
	LastAccessed time.Time
	AccessCount  uint64

	// ExpiresAt is the absolute expiry deadline derived from the TTL at
	// insertion. The zero time means the entry never expires.
	ExpiresAt time.Time

	// TTL is the time-to-live this entry was created with, retained for
	// inspection. Zero means none was requested.
	TTL time.Duration

	// Metadata holds free-form annotations. The cache core never reads it.
	Metadata map[string]string

	// seq is the insertion sequence number used for deterministic
	// tie-breaking during eviction.
	seq uint64

	// size is the byte estimate computed at insertion.
	size int64
}

// expiredAt reports whether the entry is logically absent at the given
// instant. The deadline itself counts as expired.
func (e *Entry[V]) expiredAt(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !e.ExpiresAt.After(now)
}
