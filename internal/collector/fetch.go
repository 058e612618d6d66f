package collector

import (
	"context"
	"fmt"
	"time"

	"traitbase/internal/cache"
	"traitbase/internal/domain"
	"traitbase/internal/provider"
)

// FetchOptions configures the top-level entry point.
type FetchOptions struct {
	// CacheDir enables the on-disk cache when non-empty.
	CacheDir string
	// Providers restricts the run to a subset of identifiers. Empty
	// means every registered provider.
	Providers []string
	// Delay is the politeness pause between network fetches.
	// Zero means DefaultDelay; use a negative value to disable it.
	Delay time.Duration
	// Registry overrides the provider set, defaulting to the built-in
	// datasets.
	Registry *provider.Registry
}

// Fetch is the orchestration entry point: it builds a collector from the
// options and assembles the trait database in one call.
func Fetch(ctx context.Context, opts FetchOptions) (*domain.Database, *Report, error) {
	registry := opts.Registry
	if registry == nil {
		registry = provider.Builtin()
	}

	delay := opts.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	collectorOpts := []Option{WithDelay(delay)}

	if opts.CacheDir != "" {
		c, err := cache.New(opts.CacheDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open cache: %w", err)
		}
		collectorOpts = append(collectorOpts, WithCache(c))
	}

	return New(registry, collectorOpts...).Collect(ctx, opts.Providers...)
}
