// Package mathops registers arithmetic on numbers: the basic operators in the
// math group and the elementary functions in the advanced math group.
package mathops

import (
	"math"

	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/handlers"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/vk/nodeflowgo/modules/core"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the math and advanced math node types.
func (m *Module) Register(r *registry.Registry) {
	n := r.DataType(core.Number)

	basic := []*node.Type{
		handlers.RegisterUnary(r, "nodeflow:negate", n, n, func(x float64) float64 { return -x }),
		handlers.RegisterBinary(r, "nodeflow:add", n, n, func(x, y float64) float64 { return x + y }),
		handlers.RegisterBinary(r, "nodeflow:subtract", n, n, func(x, y float64) float64 { return x - y }),
		handlers.RegisterBinary(r, "nodeflow:multiply", n, n, func(x, y float64) float64 { return x * y }),
		handlers.RegisterBinary(r, "nodeflow:divide", n, n, func(x, y float64) float64 { return x / y }),
		handlers.RegisterBinary(r, "nodeflow:modulo", n, n, math.Mod),
		handlers.RegisterBinary(r, "nodeflow:min", n, n, math.Min),
		handlers.RegisterBinary(r, "nodeflow:max", n, n, math.Max),
		handlers.RegisterBinary(r, "nodeflow:pow", n, n, math.Pow),
	}
	r.TagNodeTypes(core.TagMath, basic...)
	r.RegisterGroup(node.NewTagGroup(core.TagMath, r.TaggedNodeTypes))

	r.TagNodeTypes(core.TagAdvancedMath, registerFunctions(r, n)...)
	r.RegisterGroup(node.NewTagGroup(core.TagAdvancedMath, r.TaggedNodeTypes))
}

func registerFunctions(r *registry.Registry, n datatype.Type) []*node.Type {
	functions := []struct {
		name string
		fn   func(float64) float64
	}{
		{"sin", math.Sin},
		{"cos", math.Cos},
		{"tan", math.Tan},
		{"sinh", math.Sinh},
		{"cosh", math.Cosh},
		{"tanh", math.Tanh},
		{"asin", math.Asin},
		{"acos", math.Acos},
		{"atan", math.Atan},
		{"log10", math.Log10},
		{"log", math.Log},
		{"cbrt", math.Cbrt},
		{"sqrt", math.Sqrt},
		{"ceil", math.Ceil},
		{"floor", math.Floor},
		{"abs", math.Abs},
		{"signum", signum},
	}
	types := make([]*node.Type, 0, len(functions))
	for _, f := range functions {
		types = append(types, handlers.RegisterUnary(r, "nodeflow:"+f.name, n, n, f.fn))
	}
	return types
}

// signum returns -1, 0 or 1 following the sign of x. Zeros and NaN are
// returned unchanged.
func signum(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}
