// Package random implements uniform random eviction.
package random

import (
	"math/rand"
	"sync"
	"time"

	"github.com/kvcraft/unicache/policy"
)

type random[K comparable] struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a policy that evicts uniformly selected entries without
// replacement, seeded from the wall clock.
func New[K comparable]() policy.Policy[K] {
	return NewSeeded[K](time.Now().UnixNano())
}

// NewSeeded returns a random policy with a fixed seed so that tests can
// reproduce a particular eviction sequence.
func NewSeeded[K comparable](seed int64) policy.Policy[K] {
	return &random[K]{rng: rand.New(rand.NewSource(seed))}
}

// Select picks n distinct victims via a partial Fisher-Yates shuffle over a
// copy of the candidate slice.
func (r *random[K]) Select(cands []policy.Candidate[K], n int) []K {
	if n <= 0 || len(cands) == 0 {
		return nil
	}
	if n > len(cands) {
		n = len(cands)
	}

	idx := make([]int, len(cands))
	for i := range idx {
		idx[i] = i
	}

	r.mu.Lock()
	for i := 0; i < n; i++ {
		j := i + r.rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	r.mu.Unlock()

	keys := make([]K, n)
	for i := 0; i < n; i++ {
		keys[i] = cands[idx[i]].Key
	}
	return keys
}

func (*random[K]) Name() string { return "random" }
