package cache

import "time"

// sweeper is the background task that eagerly removes expired entries.
// It is bound 1:1 to its cache and fires every Options.CleanupInterval.
// A panicking sweep is logged and the schedule keeps running; only Close
// cancels future ticks. In-flight Get/Set calls are never interrupted.
type sweeper[K comparable, V any] struct {
	c      *store[K, V]
	ticker *time.Ticker
	stop   chan struct{}
	done   chan struct{}
}

func newSweeper[K comparable, V any](c *store[K, V], interval time.Duration) *sweeper[K, V] {
	s := &sweeper[K, V]{
		c:      c,
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *sweeper[K, V]) run() {
	defer close(s.done)
	for {
		select {
		case <-s.ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

// sweep executes one cleanup tick. A failure is recovered and logged so the
// next tick still fires; it must never reach the cache's callers.
func (s *sweeper[K, V]) sweep() {
	defer func() {
		if r := recover(); r != nil {
			s.c.log.WithField("panic", r).Error("cache: sweep tick failed, schedule continues")
		}
	}()
	if removed := s.c.Cleanup(); removed > 0 {
		s.c.log.WithField("removed", removed).Debug("cache: sweep removed expired entries")
	}
}

// close cancels future ticks and waits for an in-flight sweep to finish,
// so teardown never races a running cleanup.
func (s *sweeper[K, V]) close() {
	s.ticker.Stop()
	close(s.stop)
	<-s.done
}
