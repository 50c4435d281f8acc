package parser

import (
	"fmt"
	"slices"
	"sync"
)

// Factory opens a parser for the file at path.
type Factory func(path string, opts Options) (Parser, error)

// Registry maps input formats to parser factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[Format]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Format]Factory),
	}
}

// Register adds the factory for format f.
func (r *Registry) Register(f Format, fn Factory) error {
	if fn == nil {
		return fmt.Errorf("cannot register nil factory for %s", f)
	}
	if f == FormatUnknown {
		return fmt.Errorf("cannot register a factory for the unknown format")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[f]; exists {
		return fmt.Errorf("parser already registered: %s", f)
	}
	r.factories[f] = fn
	return nil
}

// Get returns the factory for format f.
func (r *Registry) Get(f Format) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.factories[f]
	if !ok {
		return nil, fmt.Errorf("no parser registered for format: %s", f)
	}
	return fn, nil
}

// Formats returns the registered formats in ascending order.
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, 0, len(r.factories))
	for f := range r.factories {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

// Open creates a parser for the file at path using the factory for f.
func (r *Registry) Open(path string, f Format, opts Options) (Parser, error) {
	fn, err := r.Get(f)
	if err != nil {
		return nil, err
	}
	return fn(path, opts)
}

// DefaultRegistry holds the parsers linked into the binary. Format packages
// register themselves on init.
var DefaultRegistry = NewRegistry()

// Register adds a factory to the default registry.
func Register(f Format, fn Factory) error {
	return DefaultRegistry.Register(f, fn)
}

// Open creates a parser from the default registry.
func Open(path string, f Format, opts Options) (Parser, error) {
	return DefaultRegistry.Open(path, f, opts)
}
