package node

import "github.com/vk/nodeflowgo/internal/datatype"

// Env is the part of a graph environment a factory may consult.
type Env interface {
	AllowedDataTypes() []datatype.Type
}

// Factory creates a fresh node for a graph governed by env.
type Factory func(env Env) Node

// Type is the class of a node for registry and serialization purposes. Types
// are compared by identity.
type Type struct {
	id      string
	factory Factory
}

// NewType creates a node type. Registration happens through the registry.
func NewType(id string, factory Factory) *Type {
	if id == "" || factory == nil {
		panic("node: a node type needs an id and a factory")
	}
	return &Type{id: id, factory: factory}
}

func (t *Type) ID() string {
	return t.id
}

// New creates a node of this type.
func (t *Type) New(env Env) Node {
	return t.factory(env)
}

func (t *Type) String() string {
	return t.id
}
