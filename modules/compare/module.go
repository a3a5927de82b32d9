// Package compare registers number comparisons producing booleans.
package compare

import (
	"github.com/vk/nodeflowgo/internal/handlers"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/vk/nodeflowgo/modules/core"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers num_eql, num_neql, less and greater.
func (m *Module) Register(r *registry.Registry) {
	number := r.DataType(core.Number)
	boolean := r.DataType(core.Boolean)

	types := []*node.Type{
		handlers.RegisterBinary(r, "nodeflow:num_eql", number, boolean, func(x, y float64) bool { return x == y }),
		handlers.RegisterBinary(r, "nodeflow:num_neql", number, boolean, func(x, y float64) bool { return x != y }),
		handlers.RegisterBinary(r, "nodeflow:less", number, boolean, func(x, y float64) bool { return x < y }),
		handlers.RegisterBinary(r, "nodeflow:greater", number, boolean, func(x, y float64) bool { return x > y }),
	}

	r.TagNodeTypes(core.TagCompareNumber, types...)
	r.RegisterGroup(node.NewTagGroup(core.TagCompareNumber, r.TaggedNodeTypes))
}
