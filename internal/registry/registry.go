package registry

import "fmt"

// Registry maps stable numeric ids to registered values. Ids are assigned
// in registration order and never change for the lifetime of the registry.
// Registries are built once at session start and shared read-only after.
type Registry[T any] struct {
	values []T
	names  []string
	byName map[string]uint32
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		byName: make(map[string]uint32),
	}
}

// Register adds a named value and returns its assigned id.
// Registering the same name twice is an error.
func (r *Registry[T]) Register(name string, v T) (uint32, error) {
	if _, exists := r.byName[name]; exists {
		return 0, fmt.Errorf("registry: name %q already registered", name)
	}
	id := uint32(len(r.values))
	r.values = append(r.values, v)
	r.names = append(r.names, name)
	r.byName[name] = id
	return id, nil
}

// GetByID returns the value registered under id.
func (r *Registry[T]) GetByID(id uint32) (T, bool) {
	if int(id) >= len(r.values) {
		var zero T
		return zero, false
	}
	return r.values[id], true
}

// GetIDByName returns the id registered under name.
func (r *Registry[T]) GetIDByName(name string) (uint32, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// NameByID returns the name registered under id.
func (r *Registry[T]) NameByID(id uint32) (string, bool) {
	if int(id) >= len(r.names) {
		return "", false
	}
	return r.names[id], true
}

// Len returns the number of registered values.
func (r *Registry[T]) Len() int {
	return len(r.values)
}

// All returns the registered values in id order. The caller must not
// mutate the returned slice.
func (r *Registry[T]) All() []T {
	return r.values
}
