package visualizer

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a visualizer name is not in the registry.
var ErrNotFound = errors.New("visualizer not found")

// Catalog returns every built-in renderer, grouped by family.
func Catalog() []Renderer {
	var out []Renderer
	out = append(out, barCatalog()...)
	out = append(out, waveCatalog()...)
	out = append(out, circleCatalog()...)
	out = append(out, rotationCatalog()...)
	out = append(out, spiralCatalog()...)
	return out
}

// Registry maps visualizer names to renderers. It is immutable once built and
// safe for concurrent use.
type Registry struct {
	order  []string
	byName map[string]Renderer
}

// NewRegistry builds a registry from the given renderers, in order.
func NewRegistry(rs ...Renderer) (*Registry, error) {
	reg := &Registry{byName: make(map[string]Renderer, len(rs))}
	for _, r := range rs {
		name := r.Name()
		if name == "" {
			return nil, errors.New("renderer with empty name")
		}
		if _, dup := reg.byName[name]; dup {
			return nil, fmt.Errorf("duplicate renderer %q", name)
		}
		reg.byName[name] = r
		reg.order = append(reg.order, name)
	}
	return reg, nil
}

// Default returns the registry over the built-in catalog.
func Default() *Registry {
	reg, err := NewRegistry(Catalog()...)
	if err != nil {
		panic(err)
	}
	return reg
}

// Resolve looks a renderer up by its exact name.
func (r *Registry) Resolve(name string) (Renderer, error) {
	if rr, ok := r.byName[name]; ok {
		return rr, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Names lists all names in catalog order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ByFamily lists the names in family f, in catalog order.
func (r *Registry) ByFamily(f Family) []string {
	var out []string
	for _, name := range r.order {
		if r.byName[name].Family() == f {
			out = append(out, name)
		}
	}
	return out
}

// Next returns the name step positions away from name, wrapping around the
// catalog. An unknown name starts from the first entry.
func (r *Registry) Next(name string, step int) string {
	n := len(r.order)
	if n == 0 {
		return ""
	}
	idx := -1
	for i, candidate := range r.order {
		if candidate == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return r.order[0]
	}
	return r.order[((idx+step)%n+n)%n]
}

// Len is the number of registered renderers.
func (r *Registry) Len() int { return len(r.order) }
