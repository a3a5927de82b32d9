package datatype

import (
	"fmt"
	"sync"

	"github.com/zclconf/go-cty/cty"
)

// descriptor is the arena entry behind a Type handle.
type descriptor struct {
	id         string
	color      uint32
	splittable bool
	kind       cty.Type
}

// Registry owns every registered data type. Lookups by id are deterministic
// and total for all previously registered types.
type Registry struct {
	mu    sync.RWMutex
	types []descriptor
	byID  map[string]int
}

// NewRegistry creates an empty data type registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]int)}
}

// Register adds a new data type and returns its handle. Registering an empty
// id, a duplicate id, or a type with the dynamic 'any' kind is a configuration
// error and panics.
func (r *Registry) Register(id string, color uint32, splittable bool, kind cty.Type) Type {
	if id == "" {
		panic("datatype: cannot register a data type with an empty id")
	}
	if kind == cty.NilType || kind.Equals(cty.DynamicPseudoType) {
		panic(fmt.Sprintf("datatype: data type '%s' must declare a concrete kind, not 'any'", id))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		panic(fmt.Sprintf("datatype: data type '%s' already registered", id))
	}
	r.types = append(r.types, descriptor{id: id, color: color, splittable: splittable, kind: kind})
	index := len(r.types) - 1
	r.byID[id] = index
	return Type{reg: r, index: index}
}

// Lookup resolves a data type by its external identifier.
func (r *Registry) Lookup(id string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, ok := r.byID[id]
	if !ok {
		return Type{}, false
	}
	return Type{reg: r, index: index}, true
}

// All returns every registered type in registration order.
func (r *Registry) All() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Type, len(r.types))
	for i := range r.types {
		all[i] = Type{reg: r, index: i}
	}
	return all
}

// Owns reports whether the handle was issued by this registry.
func (r *Registry) Owns(t Type) bool {
	return t.reg == r && t.IsValid()
}

func (r *Registry) descriptor(index int) descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.types[index]
}
