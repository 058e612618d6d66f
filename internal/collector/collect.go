package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"traitbase/internal/domain"
)

// Report describes one collection run: which providers contributed, from
// where, and which failed. It is advisory output, not part of the data.
type Report struct {
	RunID     string
	Started   time.Time
	Finished  time.Time
	Providers []ProviderReport
}

// ProviderReport is the per-provider outcome of a run.
type ProviderReport struct {
	Name               string
	FromCache          bool
	Failed             bool
	Err                string
	NumericRecords     int
	CategoricalRecords int
}

// Failures returns the reports of providers that failed.
func (r *Report) Failures() []ProviderReport {
	var out []ProviderReport
	for _, p := range r.Providers {
		if p.Failed {
			out = append(out, p)
		}
	}
	return out
}

type resultWithSource struct {
	result    *domain.Result
	fromCache bool
}

// Collect assembles the trait database from the requested providers, or
// from every registered provider when names is empty. Unknown identifiers
// fail the whole run before any provider is invoked. An individual
// provider failure is logged, recorded in the report, and skipped; the
// remaining providers still run. Every contributed record is tagged with
// its provider identifier before aggregation.
func (c *Collector) Collect(ctx context.Context, names ...string) (*domain.Database, *Report, error) {
	resolved, err := c.registry.ResolveAll(names)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{RunID: uuid.NewString(), Started: time.Now()}
	limiter := c.limiter()

	var results []domain.Result
	for _, p := range resolved {
		pr := ProviderReport{Name: p.Name}

		entry, ok := c.fromCache(p.Name)
		if !ok {
			// Politeness pause between consecutive network fetches.
			if err := limiter.Wait(ctx); err != nil {
				return nil, nil, fmt.Errorf("waiting before %s: %w", p.Name, err)
			}
			log.Printf("Fetching dataset: %s", p.Name)
			res, err := p.Fetch(ctx)
			if err != nil {
				log.Printf("Provider %s failed, continuing without it: %v", p.Name, err)
				pr.Failed = true
				pr.Err = err.Error()
				report.Providers = append(report.Providers, pr)
				continue
			}
			if c.cache != nil {
				if err := c.cache.Put(p.Name, res); err != nil {
					log.Printf("Cache write for %s failed: %v", p.Name, err)
				}
			}
			entry = &resultWithSource{result: res}
		}

		entry.result.Tag(p.Name)
		pr.FromCache = entry.fromCache
		pr.NumericRecords = len(entry.result.Numeric)
		pr.CategoricalRecords = len(entry.result.Categorical)
		report.Providers = append(report.Providers, pr)
		results = append(results, *entry.result)
	}

	report.Finished = time.Now()
	return domain.Aggregate(results), report, nil
}
