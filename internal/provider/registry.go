package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages available AI providers and handles provider selection
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	preferred string // "auto" or a provider name
}

// ProviderPriority defines the order of provider selection when in "auto" mode
var ProviderPriority = []string{"openai", "anthropic"}

// NewRegistry creates a registry holding the given providers.
func NewRegistry(preferred string, providers ...Provider) *Registry {
	if preferred == "" {
		preferred = "auto"
	}
	r := &Registry{
		providers: make(map[string]Provider, len(providers)),
		preferred: preferred,
	}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds a provider to the registry
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
}

// GetPreferred returns the current preferred provider setting
func (r *Registry) GetPreferred() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.preferred
}

// Get returns a specific provider by name
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// GetBest returns the best available provider based on configuration.
// A specific preference is returned even when it reports unavailable, so
// the request itself surfaces the precise failure (for example a missing
// API key). In "auto" mode providers are tried in ProviderPriority order.
func (r *Registry) GetBest() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.preferred != "" && r.preferred != "auto" {
		p, ok := r.providers[r.preferred]
		if !ok {
			return nil, fmt.Errorf("provider %q not registered", r.preferred)
		}
		return p, nil
	}

	for _, name := range ProviderPriority {
		if p, ok := r.providers[name]; ok && p.Available() {
			return p, nil
		}
	}

	// Nothing reports ready; fall back to the first registered provider by
	// priority so the user sees its concrete error.
	for _, name := range ProviderPriority {
		if p, ok := r.providers[name]; ok {
			return p, nil
		}
	}

	return nil, ErrNoProvider
}

// ListAvailable returns a list of all available providers
func (r *Registry) ListAvailable() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var available []string
	for name, p := range r.providers {
		if p.Available() {
			available = append(available, name)
		}
	}
	sort.Strings(available)
	return available
}
