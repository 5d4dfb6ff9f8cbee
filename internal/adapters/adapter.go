// Package adapters defines the ToolAdapter contract the execution engine
// consumes, plus the registry that tracks which adapters are installed.
// Adapter implementations decide how output is actually produced; the
// engine is agnostic.
package adapters

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// ToolAdapter produces raw text output for a prompt. Implementations must be
// safe for concurrent use; the engine may invoke the same adapter from
// several batch workers at once.
type ToolAdapter interface {
	// Name returns the tool identifier this adapter serves.
	Name() string

	// Execute runs the prompt and returns the tool's raw output. The config
	// map carries adapter-specific settings and may be nil.
	Execute(ctx context.Context, prompt string, config map[string]any) (string, error)

	// IsAvailable reports whether the underlying tool can currently be invoked.
	IsAvailable() bool
}

// Registry holds the installed adapters keyed by tool name. It is injected
// into each engine instance rather than held as package state, so multiple
// engines can coexist and be tested in isolation.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]ToolAdapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]ToolAdapter)}
}

// Register installs an adapter, replacing any previous adapter with the
// same name.
func (r *Registry) Register(adapter ToolAdapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[adapter.Name()] = adapter
}

// Get returns the adapter registered for the tool.
func (r *Registry) Get(tool string) (ToolAdapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	adapter, ok := r.adapters[tool]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAdapterNotRegistered, tool)
	}
	return adapter, nil
}

// Tools returns the registered tool names, sorted.
func (r *Registry) Tools() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tools := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		tools = append(tools, name)
	}
	sort.Strings(tools)
	return tools
}

// Has reports whether an adapter is registered for the tool.
func (r *Registry) Has(tool string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.adapters[tool]
	return ok
}

// ErrAdapterNotRegistered reports a tool with no installed adapter.
var ErrAdapterNotRegistered = fmt.Errorf("no adapter registered for tool")
