package provider

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// UnknownProviderError reports requested provider identifiers that are not
// registered. It lists exactly the unknown ones, so a caller typo in a
// subset request fails fast before any network access.
type UnknownProviderError struct {
	Names []string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown providers: %s", strings.Join(e.Names, ", "))
}

// Resolved pairs a provider identifier with its callable.
type Resolved struct {
	Name  string
	Fetch Func
}

// Registry is the enumerable collection of named dataset providers.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
	order []string
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds a provider under a normalized lowercase identifier.
func (r *Registry) Register(name string, fn Func) error {
	id := Normalize(name)
	if id == "" {
		return fmt.Errorf("empty provider name")
	}
	if fn == nil {
		return fmt.Errorf("provider %s: nil function", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.funcs[id]; exists {
		return fmt.Errorf("provider %s already registered", id)
	}
	r.funcs[id] = fn
	r.order = append(r.order, id)
	return nil
}

// Names returns all registered identifiers in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.order...)
}

// Resolve looks up a single provider by identifier.
func (r *Registry) Resolve(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[Normalize(name)]
	if !ok {
		return nil, &UnknownProviderError{Names: []string{Normalize(name)}}
	}
	return fn, nil
}

// ResolveAll resolves a requested subset of providers, or every registered
// provider when names is empty. If any identifier is unknown the whole
// resolution fails with an UnknownProviderError naming each unknown
// identifier, and no provider is returned.
func (r *Registry) ResolveAll(names []string) ([]Resolved, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(names) == 0 {
		names = r.order
	}

	var unknown []string
	resolved := make([]Resolved, 0, len(names))
	for _, name := range names {
		id := Normalize(name)
		fn, ok := r.funcs[id]
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		resolved = append(resolved, Resolved{Name: id, Fetch: fn})
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownProviderError{Names: unknown}
	}
	return resolved, nil
}
