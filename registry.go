package oasgen

import "fmt"

// Registry maps component names to their resolved schemas. It is filled once
// per generation run, in document order, and sealed before routes are built.
type Registry struct {
	names   []string
	schemas map[string]*Schema
	sealed  bool
}

func NewRegistry() *Registry {
	return &Registry{
		names:   []string{},
		schemas: make(map[string]*Schema),
	}
}

// Register stores the resolved schema of a component.
func (r *Registry) Register(name string, schema *Schema) error {
	if r.sealed {
		return fmt.Errorf("registry is sealed; cannot register %q", name)
	}
	if schema == nil {
		return fmt.Errorf("cannot register nil schema for %q", name)
	}
	if _, ok := r.schemas[name]; ok {
		return fmt.Errorf("component %q is already registered", name)
	}
	r.names = append(r.names, name)
	r.schemas[name] = schema
	return nil
}

// Unregister drops a component that was registered but could not be declared.
func (r *Registry) Unregister(name string) error {
	if r.sealed {
		return fmt.Errorf("registry is sealed; cannot unregister %q", name)
	}
	if _, ok := r.schemas[name]; !ok {
		return nil
	}
	delete(r.schemas, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
	return nil
}

func (r *Registry) Lookup(name string) (*Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Names returns the registered component names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (r *Registry) Len() int {
	return len(r.names)
}

// Seal makes the registry read-only.
func (r *Registry) Seal() {
	r.sealed = true
}

func (r *Registry) Sealed() bool {
	return r.sealed
}
