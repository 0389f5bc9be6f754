// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"sync"

	"github.com/api2spec/tape2spec/pkg/types"
)

// Registry stores entity definitions by name for reference resolution.
// It is safe for concurrent use, so definitions can be built in parallel.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*types.Schema
}

// NewRegistry creates a new definition registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]*types.Schema),
	}
}

// Add adds a definition to the registry.
func (r *Registry) Add(name string, schema *types.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemas[name] = schema
}

// Has checks if a definition exists in the registry.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.schemas[name]
	return ok
}

// All returns all definitions in the registry.
func (r *Registry) All() map[string]*types.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Return a copy to avoid race conditions
	result := make(map[string]*types.Schema, len(r.schemas))
	for k, v := range r.schemas {
		result[k] = v
	}
	return result
}

// Build infers one definition per entity and registers it. Each entity is
// folded in its own goroutine, over its exchanges in the given order.
func (r *Registry) Build(inf *Inferencer, entities map[string][]Exchange) {
	var wg sync.WaitGroup
	for name, exchanges := range entities {
		wg.Add(1)
		go func(name string, exchanges []Exchange) {
			defer wg.Done()
			r.Add(name, inf.Definition(exchanges))
		}(name, exchanges)
	}
	wg.Wait()
}
