package synth

import (
	"fmt"
	"iter"

	"flatstruct/kind"
)

// FieldSpec is one registered field. It never changes after registration.
type FieldSpec struct {
	Name     string
	Kind     kind.Kind
	Volatile bool
	// Index is the registration order, starting at 0.
	Index int
}

// Registry maps field names to their specs and iterates in registration
// order. Every name is registered exactly once.
type Registry struct {
	specs []FieldSpec
	index map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a field. Registering a name twice is an error.
func (r *Registry) Register(name string, k kind.Kind, volatile bool) (FieldSpec, error) {
	if _, ok := r.index[name]; ok {
		return FieldSpec{}, fmt.Errorf("field %q already registered", name)
	}

	spec := FieldSpec{Name: name, Kind: k, Volatile: volatile, Index: len(r.specs)}
	r.index[name] = spec.Index
	r.specs = append(r.specs, spec)

	return spec, nil
}

func (r *Registry) Lookup(name string) (FieldSpec, bool) {
	i, ok := r.index[name]
	if !ok {
		return FieldSpec{}, false
	}

	return r.specs[i], true
}

func (r *Registry) Len() int {
	return len(r.specs)
}

// All iterates fields in registration order.
func (r *Registry) All() iter.Seq[FieldSpec] {
	return func(yield func(FieldSpec) bool) {
		for _, s := range r.specs {
			if !yield(s) {
				return
			}
		}
	}
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.specs))
	for i, s := range r.specs {
		names[i] = s.Name
	}

	return names
}
