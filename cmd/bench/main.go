// Synthetic workload driver for comparing eviction policies.
//
// Runs a configurable mix of reads and writes over a Zipf-distributed key
// space and prints throughput plus the cache's own statistics. Optionally
// exposes pprof and Prometheus metrics while running.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/kvcraft/unicache/cache"
	"github.com/kvcraft/unicache/metrics/prom"
	"github.com/kvcraft/unicache/policy"
	"github.com/kvcraft/unicache/policy/fifo"
	"github.com/kvcraft/unicache/policy/lfu"
	"github.com/kvcraft/unicache/policy/lru"
	"github.com/kvcraft/unicache/policy/random"
	"github.com/kvcraft/unicache/policy/sizebased"
)

var (
	policyName = flag.String("policy", "lru", "eviction policy: lru|lfu|fifo|random|size_based")
	maxEntries = flag.Int("entries", 100_000, "cache capacity")
	keySpace   = flag.Uint64("keys", 1_000_000, "distinct keys in the workload")
	workers    = flag.Int("workers", 8, "concurrent workers")
	duration   = flag.Duration("duration", 10*time.Second, "benchmark duration")
	writeRatio = flag.Float64("writes", 0.25, "fraction of operations that are writes")
	zipfS      = flag.Float64("zipf", 1.1, "Zipf skew (s > 1)")
	httpAddr   = flag.String("http", "", "serve pprof and /metrics on this address (empty = off)")
)

func pickPolicy(name string) (policy.Policy[uint64], error) {
	switch name {
	case "lru":
		return lru.New[uint64](), nil
	case "lfu":
		return lfu.New[uint64](), nil
	case "fifo":
		return fifo.New[uint64](), nil
	case "random":
		return random.New[uint64](), nil
	case "size_based":
		return sizebased.New[uint64](), nil
	default:
		return nil, fmt.Errorf("unknown policy %q", name)
	}
}

func main() {
	flag.Parse()

	pol, err := pickPolicy(*policyName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	opt := cache.Options[uint64, []byte]{
		MaxEntries:      *maxEntries,
		Policy:          pol,
		CleanupInterval: time.Second,
		Sizer:           func(v []byte) int64 { return int64(len(v)) },
	}
	if *httpAddr != "" {
		reg := prometheus.NewRegistry()
		opt.EnableMetrics = true
		opt.Metrics = prom.New(reg, "unicache", "bench", prometheus.Labels{"policy": *policyName})
		http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			logrus.WithField("addr", *httpAddr).Info("bench: serving pprof and metrics")
			logrus.Fatal(http.ListenAndServe(*httpAddr, nil))
		}()
	}

	c, err := cache.New(opt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer c.Close()

	value := make([]byte, 128)
	deadline := time.Now().Add(*duration)

	var wg sync.WaitGroup
	ops := make([]uint64, *workers)
	for w := 0; w < *workers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(w) + 1))
			zipf := rand.NewZipf(rng, *zipfS, 1, *keySpace-1)
			for time.Now().Before(deadline) {
				k := zipf.Uint64()
				if rng.Float64() < *writeRatio {
					c.Set(k, value)
				} else {
					c.Get(k)
				}
				ops[w]++
			}
		}()
	}
	wg.Wait()

	var total uint64
	for _, n := range ops {
		total += n
	}
	s := c.Stats()
	fmt.Printf("policy=%s workers=%d duration=%s\n", *policyName, *workers, *duration)
	fmt.Printf("ops=%d (%.0f ops/s)\n", total, float64(total)/duration.Seconds())
	fmt.Printf("entries=%d hits=%d misses=%d evictions=%d hit_ratio=%.4f mem=%dB\n",
		s.TotalEntries, s.TotalHits, s.TotalMisses, s.TotalEvictions, s.HitRatio, s.MemoryUsageBytes)
}
