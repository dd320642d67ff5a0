// Package fifo implements the First-In-First-Out eviction policy.
package fifo

import (
	"sort"

	"github.com/kvcraft/unicache/policy"
)

type fifo[K comparable] struct{}

// New returns a policy that evicts the oldest-inserted entries first,
// regardless of how often or how recently they were read.
func New[K comparable]() policy.Policy[K] { return fifo[K]{} }

// Select sorts candidates by CreatedAt ascending and returns the first n
// keys. Equal creation times are broken by insertion sequence.
func (fifo[K]) Select(cands []policy.Candidate[K], n int) []K {
	if n <= 0 || len(cands) == 0 {
		return nil
	}
	sort.Slice(cands, func(i, j int) bool {
		if !cands[i].CreatedAt.Equal(cands[j].CreatedAt) {
			return cands[i].CreatedAt.Before(cands[j].CreatedAt)
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

func (fifo[K]) Name() string { return "fifo" }
