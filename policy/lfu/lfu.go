// Package lfu implements the Least-Frequently-Used eviction policy.
package lfu

import (
	"sort"

	"github.com/kvcraft/unicache/policy"
)

type lfu[K comparable] struct{}

// New returns a policy that evicts the entries with the smallest
// AccessCount first.
func New[K comparable]() policy.Policy[K] { return lfu[K]{} }

// Select sorts candidates by AccessCount ascending and returns the first n
// keys. Equal counts are broken by insertion sequence, oldest first.
func (lfu[K]) Select(cands []policy.Candidate[K], n int) []K {
	if n <= 0 || len(cands) == 0 {
		return nil
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].AccessCount != cands[j].AccessCount {
			return cands[i].AccessCount < cands[j].AccessCount
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

func (lfu[K]) Name() string { return "lfu" }
