// Package core registers the built-in data types and the flow nodes every
// other module builds on. It must be loaded first.
package core

import (
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Data type ids.
const (
	Number  = "nodeflow:number"
	Boolean = "nodeflow:boolean"
	String  = "nodeflow:string"
)

// Node type ids.
const (
	SwitchNode = "nodeflow:switch"
	NumberNode = "nodeflow:number"
)

// Tags shared by the built-in modules.
const (
	TagDebug         = "nodeflow:debug"
	TagFlow          = "nodeflow:flow"
	TagLogic         = "nodeflow:logic"
	TagMath          = "nodeflow:math"
	TagCompareNumber = "nodeflow:compare_number"
	TagConstant      = "nodeflow:constant"
	TagAdvancedMath  = "nodeflow:advanced_math"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the data types and the switch and number nodes.
func (m *Module) Register(r *registry.Registry) {
	number := r.RegisterDataType(Number, 0x5555ff, true, cty.Number)
	boolean := r.RegisterDataType(Boolean, 0xff5555, true, cty.Bool)
	r.RegisterDataType(String, 0x55ff55, true, cty.String)

	var switchType *node.Type
	switchType = r.RegisterNodeType(SwitchNode, func(env node.Env) node.Node {
		return newSwitch(switchType, env, number, boolean)
	})

	var numberType *node.Type
	numberType = r.RegisterNodeType(NumberNode, func(node.Env) node.Node {
		return &Literal{Base: node.NewBase(numberType), number: number}
	})

	r.TagNodeTypes(TagFlow, switchType)
	r.TagNodeTypes(TagConstant, numberType)
	r.RegisterGroup(node.NewTagGroup(TagFlow, r.TaggedNodeTypes))
}
