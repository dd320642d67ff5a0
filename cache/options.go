package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kvcraft/unicache/policy"
)

// Clock provides the time source; override it in tests for deterministic
// TTL behavior. Nil means time.Now.
type Clock interface{ Now() time.Time }

// Options configures the cache behavior. Sane defaults are applied in New:
//   - nil Policy  => LRU
//   - nil Metrics (or EnableMetrics false) => NoopMetrics
//   - nil Logger  => logrus standard logger
//   - nil Sizer   => DefaultSizer (statistics only)
type Options[K comparable, V any] struct {
	// MaxEntries is the entry count limit. Must be > 0; New fails
	// otherwise. Eviction keeps Len() <= MaxEntries after every Set.
	MaxEntries int

	// DefaultTTL applies to Set/Add when no per-entry TTL is provided.
	// Zero means entries never expire by default.
	DefaultTTL time.Duration

	// Policy is the eviction strategy consulted on overflow. Nil => LRU.
	Policy policy.Policy[K]

	// EnableMetrics wires Options.Metrics into the hot path. Internal
	// counters (Stats) are always exact regardless of this flag.
	EnableMetrics bool

	// MaxMemoryMB is a soft byte budget over the Sizer estimates. It is
	// advisory unless the SizeBased policy is active, in which case the
	// cache evicts largest-first until the estimate fits.
	MaxMemoryMB int64

	// CompressionThresholdKB signals to callers above which estimated
	// entry size they may want to compress values before caching. The
	// cache core does not act on it.
	CompressionThresholdKB int64

	// CleanupInterval is the background sweep period. Zero disables the
	// sweeper; Cleanup can still be called manually.
	CleanupInterval time.Duration

	// Sizer estimates the in-cache byte footprint of a value. Required
	// when Policy is SizeBased; otherwise it only feeds the
	// MemoryUsageBytes statistic (DefaultSizer is used when nil).
	Sizer func(v V) int64

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called for every eviction and expiry removal, with the
	// cache lock held; keep callbacks lightweight.
	OnEvict func(k K, v V, reason EvictReason)

	// Metrics receives observability signals when EnableMetrics is set.
	Metrics Metrics

	// Logger is used by the background sweeper. Nil => logrus standard
	// logger with a "component" field.
	Logger logrus.FieldLogger

	// Clock overrides the time source (tests). Nil => time.Now.
	Clock Clock
}

// validate reports the first configuration defect, if any. Only these
// defects can fail construction; everything at runtime is a non-error.
func (o *Options[K, V]) validate() error {
	if o.MaxEntries <= 0 {
		return ErrZeroMaxEntries
	}
	if o.Policy != nil && o.Policy.Name() == "size_based" && o.Sizer == nil {
		return ErrSizerRequired
	}
	if o.CleanupInterval < 0 {
		return fmt.Errorf("cache: CleanupInterval must be >= 0, got %v", o.CleanupInterval)
	}
	if o.MaxMemoryMB < 0 {
		return fmt.Errorf("cache: MaxMemoryMB must be >= 0, got %d", o.MaxMemoryMB)
	}
	return nil
}

// DefaultSizer is the fallback byte estimator used for the memory usage
// statistic: byte/string lengths where they are cheap to obtain, a flat 64
// bytes otherwise. It is deliberately rough; the estimate is best-effort,
// not authoritative.
func DefaultSizer[V any](v V) int64 {
	switch x := any(v).(type) {
	case string:
		return int64(len(x))
	case []byte:
		return int64(len(x))
	case fmt.Stringer:
		return int64(len(x.String()))
	default:
		return 64
	}
}
