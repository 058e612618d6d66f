// Package collector drives dataset providers through the registry,
// assembling their results into the aggregate trait database. Providers
// run sequentially, a cache short-circuits repeat downloads, and one
// broken source never aborts the rest of the run.
package collector

import (
	"log"
	"time"

	"golang.org/x/time/rate"

	"traitbase/internal/cache"
	"traitbase/internal/provider"
)

// DefaultDelay is the politeness pause between consecutive network
// fetches. It is a deliberate rate limit toward shared remote services
// and is never applied when an entry is served from the cache.
const DefaultDelay = 5 * time.Second

// Collector fetches per-dataset results and aggregates them.
type Collector struct {
	registry *provider.Registry
	cache    *cache.Cache
	delay    time.Duration
}

// Option configures a Collector.
type Option func(*Collector)

// WithCache makes the collector consult and populate a cache.
func WithCache(c *cache.Cache) Option {
	return func(col *Collector) { col.cache = c }
}

// WithDelay overrides the politeness delay between network fetches.
// A zero delay disables the pause.
func WithDelay(d time.Duration) Option {
	return func(col *Collector) { col.delay = d }
}

// New creates a collector over a provider registry.
func New(registry *provider.Registry, opts ...Option) *Collector {
	col := &Collector{registry: registry, delay: DefaultDelay}
	for _, opt := range opts {
		opt(col)
	}
	return col
}

// limiter spaces out network fetches. Burst 1 means the first fetch goes
// immediately and each further one waits out the configured delay.
func (c *Collector) limiter() *rate.Limiter {
	if c.delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(c.delay), 1)
}

func (c *Collector) fromCache(name string) (res *resultWithSource, ok bool) {
	if c.cache == nil {
		return nil, false
	}
	cached, hit, err := c.cache.Get(name)
	if err != nil {
		// A corrupt entry is not fatal; refetch instead.
		log.Printf("Cache read for %s failed, refetching: %v", name, err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	return &resultWithSource{result: cached, fromCache: true}, true
}
