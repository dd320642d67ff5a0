// Package sizebased implements size-aware eviction: the largest entries go
// first, so a handful of removals reclaims the most memory.
//
// The policy relies on the byte estimates the cache computes via its Sizer
// option; a cache configured with this policy and no Sizer refuses to
// construct, since every candidate would report size zero and selection
// would degenerate to insertion order.
package sizebased

import (
	"sort"

	"github.com/kvcraft/unicache/policy"
)

type sizeBased[K comparable] struct{}

// New returns a policy that evicts entries in descending order of their
// estimated serialized size.
func New[K comparable]() policy.Policy[K] { return sizeBased[K]{} }

// Select sorts candidates by Size descending and returns the first n keys.
// Equal sizes are broken by insertion sequence, oldest first.
func (sizeBased[K]) Select(cands []policy.Candidate[K], n int) []K {
	if n <= 0 || len(cands) == 0 {
		return nil
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].Size != cands[j].Size {
			return cands[i].Size > cands[j].Size
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

func (sizeBased[K]) Name() string { return "size_based" }
