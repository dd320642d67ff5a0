package manager

import "time"

// DiagnosticRequest describes one diagnostics computation. The manager
// derives the cache key from these fields; callers never supply raw keys.
type DiagnosticRequest struct {
	WorkspacePath         string
	IncludeExplanations   bool
	IncludeSuggestedFixes bool
	CacheTTL              time.Duration // optional override, 0 = preset default
	Timeout               time.Duration
}

// Diagnostic is a single finding inside a DiagnosticResult.
type Diagnostic struct {
	File     string
	Line     int
	Column   int
	Severity string
	Code     string
	Message  string
	Source   string
}

// DiagnosticResult is the cached output of a diagnostics run.
type DiagnosticResult struct {
	WorkspacePath string
	Diagnostics   []Diagnostic
	Explanations  map[string]Explanation
	ComputedAt    time.Time
	Metadata      map[string]string
}

// Explanation is a long-lived reference document for an error code.
type Explanation struct {
	ErrorCode     string
	Title         string
	Description   string
	Examples      []string
	Solutions     []string
	RelatedErrors []string
	Severity      string
	Category      string
}
