package collector

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"traitbase/internal/cache"
	"traitbase/internal/domain"
	"traitbase/internal/provider"
)

// countingProvider returns a provider that records how often it ran.
func countingProvider(res *domain.Result, count *int) provider.Func {
	return func(ctx context.Context) (*domain.Result, error) {
		*count++
		clone := *res
		return &clone, nil
	}
}

func failingProvider(err error) provider.Func {
	return func(ctx context.Context) (*domain.Result, error) {
		return nil, err
	}
}

func numericResult(species string, value float64) *domain.Result {
	return &domain.Result{Numeric: []domain.Numeric{
		{Species: species, Variable: "height", Value: value},
	}}
}

func TestCollectTagsRecords(t *testing.T) {
	reg := provider.NewRegistry()
	var calls int
	reg.Register("x", countingProvider(numericResult("quercus_robur", 12), &calls))

	db, report, err := New(reg, WithDelay(0)).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(db.Numeric) != 1 || db.Numeric[0].Dataset != "x" {
		t.Fatalf("records not tagged: %+v", db.Numeric)
	}
	if report.RunID == "" {
		t.Fatal("report is missing a run id")
	}
	if len(report.Providers) != 1 || report.Providers[0].NumericRecords != 1 {
		t.Fatalf("unexpected report: %+v", report.Providers)
	}
}

func TestCollectIsolatesProviderFailure(t *testing.T) {
	reg := provider.NewRegistry()
	var calls int
	reg.Register("broken", failingProvider(errors.New("remote gone")))
	reg.Register("working", countingProvider(numericResult("quercus_ilex", 8), &calls))

	db, report, err := New(reg, WithDelay(0)).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect should not fail on a provider error: %v", err)
	}

	if len(db.Numeric) != 1 || db.Numeric[0].Dataset != "working" {
		t.Fatalf("expected only the working provider's records: %+v", db.Numeric)
	}
	failures := report.Failures()
	if len(failures) != 1 || failures[0].Name != "broken" || failures[0].Err != "remote gone" {
		t.Fatalf("unexpected failures: %+v", failures)
	}
}

func TestCollectUnknownProviderAbortsBeforeInvocation(t *testing.T) {
	reg := provider.NewRegistry()
	var calls int
	reg.Register("known", countingProvider(numericResult("a", 1), &calls))

	_, _, err := New(reg, WithDelay(0)).Collect(context.Background(), "known", "ghost")
	var unknown *provider.UnknownProviderError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want UnknownProviderError", err)
	}
	if !reflect.DeepEqual(unknown.Names, []string{"ghost"}) {
		t.Fatalf("unknown names = %v", unknown.Names)
	}
	if calls != 0 {
		t.Fatalf("no provider should have been invoked, got %d calls", calls)
	}
}

func TestCollectUsesCacheOnSecondRun(t *testing.T) {
	reg := provider.NewRegistry()
	var calls int
	reg.Register("x", countingProvider(numericResult("quercus_robur", 12), &calls))

	store, err := cache.New(t.TempDir())
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	col := New(reg, WithDelay(0), WithCache(store))

	first, _, err := col.Collect(context.Background())
	if err != nil {
		t.Fatalf("first Collect: %v", err)
	}
	second, report, err := col.Collect(context.Background())
	if err != nil {
		t.Fatalf("second Collect: %v", err)
	}

	if calls != 1 {
		t.Fatalf("provider invoked %d times, want exactly once", calls)
	}
	if !report.Providers[0].FromCache {
		t.Fatal("second run should be served from the cache")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached database differs: %+v != %+v", first, second)
	}
}

func TestCollectDelaySpacesNetworkFetches(t *testing.T) {
	reg := provider.NewRegistry()
	var calls int
	reg.Register("a", countingProvider(numericResult("a", 1), &calls))
	reg.Register("b", countingProvider(numericResult("b", 2), &calls))
	reg.Register("c", countingProvider(numericResult("c", 3), &calls))

	delay := 20 * time.Millisecond
	start := time.Now()
	if _, _, err := New(reg, WithDelay(delay)).Collect(context.Background()); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	// First fetch is immediate; the two that follow each wait the delay.
	if elapsed := time.Since(start); elapsed < 2*delay {
		t.Fatalf("run took %v, want at least %v", elapsed, 2*delay)
	}
}

func TestCollectDelaySkippedOnCacheHits(t *testing.T) {
	reg := provider.NewRegistry()
	var calls int
	reg.Register("a", countingProvider(numericResult("a", 1), &calls))
	reg.Register("b", countingProvider(numericResult("b", 2), &calls))

	store, err := cache.New(t.TempDir())
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	delay := 200 * time.Millisecond
	col := New(reg, WithDelay(delay), WithCache(store))

	if _, _, err := col.Collect(context.Background()); err != nil {
		t.Fatalf("warm-up Collect: %v", err)
	}

	start := time.Now()
	if _, _, err := col.Collect(context.Background()); err != nil {
		t.Fatalf("cached Collect: %v", err)
	}
	if elapsed := time.Since(start); elapsed >= delay {
		t.Fatalf("cached run took %v, politeness delay should not apply", elapsed)
	}
}

func TestCollectCancelledContext(t *testing.T) {
	reg := provider.NewRegistry()
	var calls int
	reg.Register("a", countingProvider(numericResult("a", 1), &calls))
	reg.Register("b", countingProvider(numericResult("b", 2), &calls))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := New(reg, WithDelay(time.Hour)).Collect(ctx); err == nil {
		t.Fatal("expected an error from the cancelled context")
	}
}

func TestFetchEntryPoint(t *testing.T) {
	reg := provider.NewRegistry()
	var calls int
	reg.Register("x", countingProvider(numericResult("quercus_robur", 12), &calls))

	db, report, err := Fetch(context.Background(), FetchOptions{
		CacheDir: t.TempDir(),
		Registry: reg,
		Delay:    -1,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	species, err := db.Species()
	if err != nil {
		t.Fatalf("Species: %v", err)
	}
	if !reflect.DeepEqual(species, []string{"quercus_robur"}) {
		t.Fatalf("species = %v", species)
	}
	if len(report.Providers) != 1 {
		t.Fatalf("report = %+v", report.Providers)
	}
}
