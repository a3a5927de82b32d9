package ctxtype

import (
	"fmt"
	"reflect"
	"sync"
)

type descriptor struct {
	id      string
	goType  reflect.Type
	parents []Type
}

// Registry owns every registered context type.
type Registry struct {
	mu    sync.RWMutex
	types []descriptor
	byID  map[string]int
}

// NewRegistry creates an empty context type registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]int)}
}

// Register adds a context type carrying values of goType. Every parent must be
// a valid handle from this registry, and goType must be assignable to each
// parent's Go type. Violations are configuration errors and panic.
func (r *Registry) Register(id string, goType reflect.Type, parents ...Type) Type {
	if id == "" {
		panic("ctxtype: cannot register a context type with an empty id")
	}
	if goType == nil {
		panic(fmt.Sprintf("ctxtype: context type '%s' has no Go type", id))
	}
	for _, parent := range parents {
		if !parent.IsValid() {
			panic(fmt.Sprintf("ctxtype: context type '%s' has a nil parent", id))
		}
		if parent.reg != r {
			panic(fmt.Sprintf("ctxtype: parent '%s' of context type '%s' belongs to another registry", parent, id))
		}
		if !goType.AssignableTo(parent.GoType()) {
			panic(fmt.Sprintf("ctxtype: context type '%s' (%s) is not assignable to parent '%s' (%s)", id, goType, parent, parent.GoType()))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		panic(fmt.Sprintf("ctxtype: context type '%s' already registered", id))
	}
	r.types = append(r.types, descriptor{id: id, goType: goType, parents: append([]Type(nil), parents...)})
	index := len(r.types) - 1
	r.byID[id] = index
	return Type{reg: r, index: index}
}

// Lookup resolves a context type by its external identifier.
func (r *Registry) Lookup(id string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, ok := r.byID[id]
	if !ok {
		return Type{}, false
	}
	return Type{reg: r, index: index}, true
}

// All returns every registered context type in registration order.
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

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
