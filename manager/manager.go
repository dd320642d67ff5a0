// Package manager multiplexes several independently configured caches
// behind one coordination point. It owns three presets (diagnostics,
// explanations, performance samples), derives composite keys for the
// structured accessors, and aggregates statistics across all of them.
package manager

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/kvcraft/unicache/cache"
)

const (
	cacheDiagnostic  = "diagnostic"
	cacheExplanation = "explanation"
	cachePerformance = "performance"
)

// Options configures a Manager.
type Options struct {
	// Config supplies the per-cache presets. Zero value is not usable;
	// start from DefaultConfig or LoadConfig.
	Config Config

	// Logger receives janitor and lifecycle events. Defaults to the
	// standard logrus logger.
	Logger logrus.FieldLogger

	// Metrics, when non-nil, is called once per owned cache to obtain
	// its metrics sink. Lets a Prometheus adapter label each cache.
	Metrics func(name string) cache.Metrics
}

// GlobalStats is the cross-cache rollup plus the per-cache breakdown.
type GlobalStats struct {
	PerCache       map[string]cache.Stats
	TotalHits      uint64
	TotalMisses    uint64
	TotalEvictions uint64
}

// Manager owns a fixed set of named caches. All accessors are safe for
// concurrent use. Each child cache is owned exclusively; no cache is
// shared between two accessors.
type Manager struct {
	diagnostics  cache.Cache[string, DiagnosticResult]
	explanations cache.Cache[string, Explanation]
	performance  cache.Cache[string, any]

	log       logrus.FieldLogger
	janitor   *cron.Cron
	closeOnce sync.Once
}

// New builds the three preset caches from opt.Config and, when a janitor
// schedule is configured, starts the periodic cross-cache cleanup.
func New(opt Options) (*Manager, error) {
	if err := opt.Config.Validate(); err != nil {
		return nil, err
	}
	log := opt.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "cache-manager")

	metricsFor := opt.Metrics
	if metricsFor == nil {
		metricsFor = func(string) cache.Metrics { return nil }
	}

	diag, err := newCache[DiagnosticResult](cacheDiagnostic, opt.Config.Diagnostic, log, metricsFor(cacheDiagnostic))
	if err != nil {
		return nil, err
	}
	expl, err := newCache[Explanation](cacheExplanation, opt.Config.Explanation, log, metricsFor(cacheExplanation))
	if err != nil {
		diag.Close()
		return nil, err
	}
	perf, err := newCache[any](cachePerformance, opt.Config.Performance, log, metricsFor(cachePerformance))
	if err != nil {
		diag.Close()
		expl.Close()
		return nil, err
	}

	m := &Manager{
		diagnostics:  diag,
		explanations: expl,
		performance:  perf,
		log:          log,
	}
	if sched := opt.Config.JanitorSchedule; sched != "" {
		if err := m.startJanitor(sched); err != nil {
			m.Close()
			return nil, err
		}
	}
	return m, nil
}

func newCache[V any](name string, cc CacheConfig, log logrus.FieldLogger, metrics cache.Metrics) (cache.Cache[string, V], error) {
	pol, err := policyByName(cc.EvictionPolicy)
	if err != nil {
		return nil, fmt.Errorf("cache %s: %w", name, err)
	}
	c, err := cache.New(cache.Options[string, V]{
		MaxEntries:             cc.MaxEntries,
		DefaultTTL:             cc.defaultTTL(),
		Policy:                 pol,
		CleanupInterval:        cc.cleanupInterval(),
		MaxMemoryMB:            cc.MaxMemoryMB,
		CompressionThresholdKB: cc.CompressionThresholdKB,
		EnableMetrics:          cc.EnableMetrics,
		Metrics:                metrics,
		Sizer:                  cache.DefaultSizer[V],
		Logger:                 log.WithField("cache", name),
	})
	if err != nil {
		return nil, fmt.Errorf("cache %s: %w", name, err)
	}
	return c, nil
}

// startJanitor schedules the cross-cache expiry sweep, supplementing the
// per-cache sweepers with one manager-level pass that logs totals.
func (m *Manager) startJanitor(schedule string) error {
	j := cron.New()
	_, err := j.AddFunc(schedule, func() {
		if n := m.CleanupExpired(); n > 0 {
			m.log.WithField("removed", n).Debug("janitor removed expired entries")
		}
	})
	if err != nil {
		return fmt.Errorf("janitor schedule %q: %w", schedule, err)
	}
	j.Start()
	m.janitor = j
	return nil
}

// GetDiagnostic returns the cached result for a structurally identical
// request, if present and unexpired.
func (m *Manager) GetDiagnostic(req DiagnosticRequest) (DiagnosticResult, bool) {
	return m.diagnostics.Get(diagnosticKey(req))
}

// SetDiagnostic caches the result under the request's composite key.
// A per-request CacheTTL overrides the preset default.
func (m *Manager) SetDiagnostic(req DiagnosticRequest, res DiagnosticResult) {
	if req.CacheTTL > 0 {
		m.diagnostics.SetWithTTL(diagnosticKey(req), res, req.CacheTTL)
		return
	}
	m.diagnostics.Set(diagnosticKey(req), res)
}

// GetExplanation returns the cached explanation for an error code.
func (m *Manager) GetExplanation(errorCode string) (Explanation, bool) {
	return m.explanations.Get(explanationKey(errorCode))
}

// SetExplanation caches an explanation. A positive ttl overrides the
// preset default.
func (m *Manager) SetExplanation(errorCode string, e Explanation, ttl time.Duration) {
	if ttl > 0 {
		m.explanations.SetWithTTL(explanationKey(errorCode), e, ttl)
		return
	}
	m.explanations.Set(explanationKey(errorCode), e)
}

// GetPerformance returns a cached performance sample.
func (m *Manager) GetPerformance(key string) (any, bool) {
	return m.performance.Get(key)
}

// SetPerformance caches a performance sample. A positive ttl overrides
// the preset default.
func (m *Manager) SetPerformance(key string, data any, ttl time.Duration) {
	if ttl > 0 {
		m.performance.SetWithTTL(key, data, ttl)
		return
	}
	m.performance.Set(key, data)
}

// ClearAll empties every owned cache. Lifetime counters survive.
func (m *Manager) ClearAll() {
	m.diagnostics.Clear()
	m.explanations.Clear()
	m.performance.Clear()
}

// CleanupExpired sweeps every owned cache and returns the total removed.
func (m *Manager) CleanupExpired() int {
	return m.diagnostics.Cleanup() + m.explanations.Cleanup() + m.performance.Cleanup()
}

// GlobalStats sums hits, misses and evictions across all owned caches
// and returns each cache's stats individually.
func (m *Manager) GlobalStats() GlobalStats {
	per := map[string]cache.Stats{
		cacheDiagnostic:  m.diagnostics.Stats(),
		cacheExplanation: m.explanations.Stats(),
		cachePerformance: m.performance.Stats(),
	}
	g := GlobalStats{PerCache: per}
	for _, s := range per {
		g.TotalHits += s.TotalHits
		g.TotalMisses += s.TotalMisses
		g.TotalEvictions += s.TotalEvictions
	}
	return g
}

// Close stops the janitor, then closes every owned cache. Idempotent.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		if m.janitor != nil {
			<-m.janitor.Stop().Done()
		}
		m.diagnostics.Close()
		m.explanations.Close()
		m.performance.Close()
		m.log.Debug("cache manager closed")
	})
}
