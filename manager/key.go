package manager

import (
	"time"

	"github.com/kvcraft/unicache/internal/keyhash"
)

// diagnosticKey derives the composite cache key for a diagnostic request.
// The key depends only on field values, so two structurally identical
// requests always map to the same entry. Key derivation lives here and
// nowhere else; callers cannot reach the diagnostic cache with ad-hoc keys.
func diagnosticKey(req DiagnosticRequest) string {
	fields := []string{
		req.WorkspacePath,
		keyhash.Bool(req.IncludeExplanations),
		keyhash.Bool(req.IncludeSuggestedFixes),
	}
	if req.CacheTTL > 0 {
		fields = append(fields, keyhash.Uint(uint64(req.CacheTTL/time.Second)))
	}
	return "diagnostic:" + req.WorkspacePath + ":" + keyhash.Digest(fields...)
}

// explanationKey namespaces explanation entries by error code.
func explanationKey(errorCode string) string {
	return "explanation:" + errorCode
}
