// Package logic registers boolean operations.
package logic

import (
	"github.com/vk/nodeflowgo/internal/handlers"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/vk/nodeflowgo/modules/core"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers not, and, or, xor, nand, nor and bool_eql.
func (m *Module) Register(r *registry.Registry) {
	b := r.DataType(core.Boolean)

	types := []*node.Type{
		handlers.RegisterUnary(r, "nodeflow:not", b, b, func(v bool) bool { return !v }),
		handlers.RegisterBinary(r, "nodeflow:and", b, b, func(x, y bool) bool { return x && y }),
		handlers.RegisterBinary(r, "nodeflow:or", b, b, func(x, y bool) bool { return x || y }),
		handlers.RegisterBinary(r, "nodeflow:xor", b, b, func(x, y bool) bool { return x != y }),
		handlers.RegisterBinary(r, "nodeflow:nand", b, b, func(x, y bool) bool { return !(x && y) }),
		handlers.RegisterBinary(r, "nodeflow:nor", b, b, func(x, y bool) bool { return !(x || y) }),
		handlers.RegisterBinary(r, "nodeflow:bool_eql", b, b, func(x, y bool) bool { return x == y }),
	}

	r.TagNodeTypes(core.TagLogic, types...)
	r.RegisterGroup(node.NewTagGroup(core.TagLogic, r.TaggedNodeTypes))
}
