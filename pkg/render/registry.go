package render

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Exporter turns a rendered document into an output artifact, typically a
// file on disk. Rasterization (PDF, print) lives behind this seam; the render
// pipeline itself only ever produces markup.
type Exporter interface {
	// Name identifies the exporter in the registry, e.g. "html" or "pdf".
	Name() string
	// Export writes the document to the named destination.
	Export(ctx context.Context, doc Document, filename string) error
}

// Registry stores exporters by name, providing discovery and duplication
// safeguards. Implementations can embed or wrap this for dependency injection.
type Registry struct {
	mu        sync.RWMutex
	exporters map[string]Exporter
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		exporters: make(map[string]Exporter),
	}
}

// Register adds an exporter by its Name(). Duplicate names return an error.
func (r *Registry) Register(exporter Exporter) error {
	if exporter == nil {
		return fmt.Errorf("render: exporter is required")
	}
	name := exporter.Name()
	if name == "" {
		return fmt.Errorf("render: exporter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.exporters[name]; exists {
		return fmt.Errorf("render: exporter %q already registered", name)
	}

	r.exporters[name] = exporter
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(exporter Exporter) {
	if err := r.Register(exporter); err != nil {
		panic(err)
	}
}

// Get retrieves an exporter by name.
func (r *Registry) Get(name string) (Exporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exporter, ok := r.exporters[name]
	if !ok {
		return nil, fmt.Errorf("render: exporter %q not found", name)
	}
	return exporter, nil
}

// Has reports whether an exporter with the given name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.exporters[name]
	return ok
}

// List returns a sorted list of exporter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.exporters))
	for name := range r.exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
