package element

import (
	"errors"
	"sort"
	"sync"
)

// Registry maps symbolic type names to descriptors. Names are normalised with
// TypeName on both registration and lookup. Registering a name twice is
// rejected.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]*Descriptor),
	}
}

// Register publishes d under name. An empty name registers d under its own
// type name.
func (r *Registry) Register(name string, d *Descriptor) error {
	if d == nil {
		return errors.New("element: descriptor is required")
	}
	key := TypeName(name)
	if key == "" {
		key = d.TypeName()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[key]; exists {
		return &DuplicateRegistrationError{Name: key}
	}
	r.descriptors[key] = d
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, d *Descriptor) {
	if err := r.Register(name, d); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.descriptors[TypeName(name)]
	if !ok {
		return nil, &UnknownElementError{Name: name}
	}
	return d, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.descriptors[TypeName(name)]
	return ok
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
