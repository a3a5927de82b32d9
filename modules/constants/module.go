// Package constants registers nodes producing fixed values.
package constants

import (
	"math"

	"github.com/vk/nodeflowgo/internal/handlers"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/vk/nodeflowgo/modules/core"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the number and boolean constants.
func (m *Module) Register(r *registry.Registry) {
	number := r.DataType(core.Number)
	boolean := r.DataType(core.Boolean)

	numbers := []struct {
		id    string
		value float64
	}{
		{"nodeflow:pi", math.Pi},
		{"nodeflow:e", math.E},
		{"nodeflow:zero", 0},
		{"nodeflow:one", 1},
		{"nodeflow:nan", math.NaN()},
		{"nodeflow:infinity", math.Inf(1)},
	}
	var types []*node.Type
	for _, c := range numbers {
		types = append(types, handlers.RegisterConstant(r, c.id, number.Value(c.value)))
	}
	types = append(types,
		handlers.RegisterConstant(r, "nodeflow:true", boolean.Value(true)),
		handlers.RegisterConstant(r, "nodeflow:false", boolean.Value(false)),
	)

	r.TagNodeTypes(core.TagConstant, types...)
	r.RegisterGroup(node.NewTagGroup(core.TagConstant, r.TaggedNodeTypes))
}
