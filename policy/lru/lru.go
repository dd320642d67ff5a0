// Package lru implements the Least-Recently-Used eviction policy.
package lru

import (
	"sort"

	"github.com/kvcraft/unicache/policy"
)

type lru[K comparable] struct{}

// New returns a policy that evicts the entries with the oldest
// LastAccessed timestamps first.
func New[K comparable]() policy.Policy[K] { return lru[K]{} }

// Select sorts candidates by LastAccessed ascending and returns the first n
// keys. Equal access times are broken by insertion sequence, oldest first,
// so eviction order is reproducible.
func (lru[K]) Select(cands []policy.Candidate[K], n int) []K {
	if n <= 0 || len(cands) == 0 {
		return nil
	}
	sort.Slice(cands, func(i, j int) bool {
		if !cands[i].LastAccessed.Equal(cands[j].LastAccessed) {
			return cands[i].LastAccessed.Before(cands[j].LastAccessed)
		}
		return cands[i].Seq < cands[j].Seq
	})
	if n > len(cands) {
		n = len(cands)
	}
	keys := make([]K, n)
	for i := 0; i < n; i++ {
		keys[i] = cands[i].Key
	}
	return keys
}

func (lru[K]) Name() string { return "lru" }
