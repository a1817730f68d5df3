// ABOUTME: Provider registry mapping provider names to factories
// ABOUTME: Thread-safe registration and lookup, populated by provider packages at init

package ai

import (
	"fmt"
	"sort"
	"sync"
)

// ProviderConfig carries the connection settings a factory needs.
type ProviderConfig struct {
	APIKey  string
	BaseURL string // optional override for compatible backends
}

// ProviderFactory builds a Provider from connection settings.
type ProviderFactory func(cfg ProviderConfig) Provider

var (
	registryMu sync.RWMutex
	registry   = make(map[string]ProviderFactory)
)

// RegisterProvider registers a factory under the given name.
// Provider packages call this from init.
func RegisterProvider(name string, factory ProviderFactory) {
	registryMu.Lock()
	registry[name] = factory
	registryMu.Unlock()
}

// NewProvider builds the named provider, or errors listing what exists.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (available: %v)", name, ProviderNames())
	}
	return factory(cfg), nil
}

// ProviderNames returns registered provider names, sorted.
func ProviderNames() []string {
	registryMu.RLock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	registryMu.RUnlock()
	sort.Strings(names)
	return names
}
