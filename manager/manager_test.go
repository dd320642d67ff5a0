package manager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	// Fast TTLs keep expiry-related tests quick; presets themselves are
	// covered in config_test.go.
	cfg.Performance.DefaultTTLSeconds = 1
	m, err := New(Options{Config: cfg})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func TestDiagnosticRoundTrip(t *testing.T) {
	m := newTestManager(t)

	req := DiagnosticRequest{
		WorkspacePath:       "/home/dev/project",
		IncludeExplanations: true,
	}
	res := DiagnosticResult{
		WorkspacePath: req.WorkspacePath,
		Diagnostics:   []Diagnostic{{File: "main.go", Line: 10, Code: "E0425", Message: "cannot find value"}},
	}

	_, ok := m.GetDiagnostic(req)
	require.False(t, ok, "empty cache should miss")

	m.SetDiagnostic(req, res)
	got, ok := m.GetDiagnostic(req)
	require.True(t, ok)
	assert.Equal(t, res, got)
}

func TestDiagnosticKeyDeterminism(t *testing.T) {
	m := newTestManager(t)

	// Two structurally identical requests, distinct instances.
	reqA := DiagnosticRequest{WorkspacePath: "/ws", IncludeExplanations: true, IncludeSuggestedFixes: true}
	reqB := DiagnosticRequest{WorkspacePath: "/ws", IncludeExplanations: true, IncludeSuggestedFixes: true}
	require.Equal(t, diagnosticKey(reqA), diagnosticKey(reqB))

	m.SetDiagnostic(reqA, DiagnosticResult{Metadata: map[string]string{"run": "1"}})
	m.SetDiagnostic(reqB, DiagnosticResult{Metadata: map[string]string{"run": "2"}})

	// Overwrite, not duplicate.
	got, ok := m.GetDiagnostic(reqA)
	require.True(t, ok)
	assert.Equal(t, "2", got.Metadata["run"])
	assert.EqualValues(t, 1, m.GlobalStats().PerCache[cacheDiagnostic].TotalEntries)
}

func TestDiagnosticKeyFieldSensitivity(t *testing.T) {
	base := DiagnosticRequest{WorkspacePath: "/ws"}

	flipped := base
	flipped.IncludeExplanations = true
	assert.NotEqual(t, diagnosticKey(base), diagnosticKey(flipped))

	otherWS := base
	otherWS.WorkspacePath = "/other"
	assert.NotEqual(t, diagnosticKey(base), diagnosticKey(otherWS))

	withTTL := base
	withTTL.CacheTTL = 30 * time.Second
	assert.NotEqual(t, diagnosticKey(base), diagnosticKey(withTTL))

	// Timeout is an execution knob, not part of the cached identity.
	withTimeout := base
	withTimeout.Timeout = time.Minute
	assert.Equal(t, diagnosticKey(base), diagnosticKey(withTimeout))
}

func TestExplanationTTLOverride(t *testing.T) {
	m := newTestManager(t)

	m.SetExplanation("E0425", Explanation{ErrorCode: "E0425", Title: "unresolved name"}, 50*time.Millisecond)

	got, ok := m.GetExplanation("E0425")
	require.True(t, ok)
	assert.Equal(t, "unresolved name", got.Title)

	time.Sleep(80 * time.Millisecond)
	_, ok = m.GetExplanation("E0425")
	assert.False(t, ok, "override TTL should beat the 24h preset")
}

func TestPerformanceRoundTrip(t *testing.T) {
	m := newTestManager(t)

	m.SetPerformance("parse_latency_ms", 12.5, 0)
	got, ok := m.GetPerformance("parse_latency_ms")
	require.True(t, ok)
	assert.Equal(t, 12.5, got)
}

func TestClearAll(t *testing.T) {
	m := newTestManager(t)

	m.SetDiagnostic(DiagnosticRequest{WorkspacePath: "/ws"}, DiagnosticResult{})
	m.SetExplanation("E1", Explanation{ErrorCode: "E1"}, 0)
	m.SetPerformance("p", 1, 0)

	m.ClearAll()

	g := m.GlobalStats()
	for name, s := range g.PerCache {
		assert.Zero(t, s.TotalEntries, "cache %s not cleared", name)
	}
	// Lifetime counters survive a clear.
	assert.EqualValues(t, 3, g.PerCache[cacheDiagnostic].TotalSets+
		g.PerCache[cacheExplanation].TotalSets+
		g.PerCache[cachePerformance].TotalSets)
}

func TestGlobalStatsRollup(t *testing.T) {
	m := newTestManager(t)

	req := DiagnosticRequest{WorkspacePath: "/ws"}
	m.SetDiagnostic(req, DiagnosticResult{})
	m.GetDiagnostic(req)       // hit
	m.GetExplanation("absent") // miss
	m.GetPerformance("absent") // miss

	g := m.GlobalStats()
	require.Len(t, g.PerCache, 3)
	assert.EqualValues(t, 1, g.TotalHits)
	assert.EqualValues(t, 2, g.TotalMisses)

	var hits, misses, evictions uint64
	for _, s := range g.PerCache {
		hits += s.TotalHits
		misses += s.TotalMisses
		evictions += s.TotalEvictions
	}
	assert.Equal(t, hits, g.TotalHits, "rollup must equal the per-cache sum")
	assert.Equal(t, misses, g.TotalMisses)
	assert.Equal(t, evictions, g.TotalEvictions)
}

func TestCleanupExpired(t *testing.T) {
	m := newTestManager(t)

	m.SetPerformance("p1", 1, 20*time.Millisecond)
	m.SetPerformance("p2", 2, 20*time.Millisecond)
	m.SetExplanation("E1", Explanation{ErrorCode: "E1"}, 0) // 24h preset

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 2, m.CleanupExpired())
	assert.Equal(t, 0, m.CleanupExpired(), "second sweep finds nothing")

	_, ok := m.GetExplanation("E1")
	assert.True(t, ok, "unexpired entry swept")
}

func TestJanitorRuns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JanitorSchedule = "@every 1s"
	m, err := New(Options{Config: cfg})
	require.NoError(t, err)
	defer m.Close()

	m.SetPerformance("p", 1, 10*time.Millisecond)

	// No reads: only the janitor can reclaim the entry inside the test
	// window (the per-cache sweeper fires every 60s).
	require.Eventually(t, func() bool {
		return m.GlobalStats().PerCache[cachePerformance].TotalEntries == 0
	}, 3*time.Second, 50*time.Millisecond)
}

func TestBadJanitorSchedule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JanitorSchedule = "not a schedule"
	_, err := New(Options{Config: cfg})
	require.Error(t, err)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Explanation.MaxEntries = 0
	_, err := New(Options{Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "explanation")
}

func TestCloseIdempotent(t *testing.T) {
	m, err := New(Options{Config: DefaultConfig()})
	require.NoError(t, err)
	m.Close()
	m.Close()
}
