// Package singleflight coalesces concurrent calls for the same key so the
// underlying work runs at most once while everyone shares the result.
package singleflight

import (
	"context"
	"sync"
)

// flight is one in-progress call. The leader publishes val/err and then
// closes ready; the close is the happens-before edge followers rely on.
type flight[V any] struct {
	ready chan struct{}
	val   V
	err   error
}

// Group deduplicates concurrent Do calls by key. The zero value is ready
// to use.
type Group[K comparable, V any] struct {
	mu       sync.Mutex
	inflight map[K]*flight[V]
}

// Do executes fn once per key among concurrent callers. The first caller
// for a key becomes the leader and runs fn; the rest wait for the shared
// result. A follower whose ctx is cancelled unblocks with ctx.Err(), but
// the leader's fn keeps running; thread ctx into fn if the work itself
// must be cancellable.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (V, error) {
	g.mu.Lock()
	if g.inflight == nil {
		g.inflight = make(map[K]*flight[V])
	}
	if f, ok := g.inflight[key]; ok {
		g.mu.Unlock()

		select {
		case <-f.ready:
			return f.val, f.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	f := &flight[V]{ready: make(chan struct{})}
	g.inflight[key] = f
	g.mu.Unlock()

	// Leader path: run fn outside the lock, publish, wake followers.
	f.val, f.err = fn()
	close(f.ready)

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return f.val, f.err
}
