// Package dispatch routes named tool calls to registered handlers. It owns
// the tool registry (the catalog of descriptors), validates arguments
// against each tool's schema before execution, and wraps every outcome in
// the Ok/Err result envelope. It is the only package the transport layer
// talks to.
package dispatch

import (
	"fmt"

	"github.com/jiragate/jiragate/internal/schema"
)

// Descriptor is one catalog entry: a stable tool name, a human-readable
// description and the parameter schema its arguments must satisfy.
// Descriptors are immutable once registered.
type Descriptor struct {
	Name        string
	Description string
	Schema      *schema.Schema
}

// Registry holds descriptors keyed by tool name, preserving registration
// order for deterministic catalog listings. Registration happens once at
// process start; lookups afterwards are read-only, so no locking is needed.
type Registry struct {
	byName map[string]Descriptor
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Descriptor)}
}

// Register adds a descriptor. It fails with ErrDuplicateTool if the name is
// already present.
func (r *Registry) Register(d Descriptor) error {
	if _, exists := r.byName[d.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, d.Name)
	}
	r.byName[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// Lookup returns the descriptor registered under name, or ErrUnknownTool.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return d, nil
}

// List returns all descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
