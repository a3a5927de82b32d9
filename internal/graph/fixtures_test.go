package graph_test

import (
	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/vk/nodeflowgo/modules/core"
	"github.com/vk/nodeflowgo/modules/world"
	"github.com/zclconf/go-cty/cty"
)

// itemModule adds a non-splittable data type with a producer and a consumer.
type itemModule struct{}

type itemNode struct {
	node.Base
	item   datatype.Type
	output bool
}

func (n *itemNode) Inputs() []node.Connector {
	if n.output {
		return nil
	}
	return []node.Connector{node.RequiredInput(n.item, "item", n)}
}

func (n *itemNode) Outputs() []node.Connector {
	if !n.output {
		return nil
	}
	return []node.Connector{node.RequiredOutput(n.item, "item", n)}
}

func (n *itemNode) Process([]datatype.Value, *node.Accessor) node.Result {
	if n.output {
		return node.Ok(n.item.Value("stone"))
	}
	return node.Ok()
}

func (itemModule) Register(r *registry.Registry) {
	item := r.RegisterDataType("test:item", 0xaaaaaa, false, cty.String)
	var source, sink *node.Type
	source = r.RegisterNodeType("test:item_source", func(node.Env) node.Node {
		return &itemNode{Base: node.NewBase(source), item: item, output: true}
	})
	sink = r.RegisterNodeType("test:item_sink", func(node.Env) node.Node {
		return &itemNode{Base: node.NewBase(sink), item: item}
	})
	r.RegisterGroup(node.NewDirectGroup("items", source, sink))
}

// rogueModule adds node kinds that break their own contract in various ways.
type rogueModule struct{}

type rogueNode struct {
	node.Base
	mode    string
	number  datatype.Type
	boolean datatype.Type
	world   ctxtype.Type
}

func (n *rogueNode) Inputs() []node.Connector {
	return nil
}

func (n *rogueNode) Outputs() []node.Connector {
	return []node.Connector{node.OptionalOutput(n.number, "value", n)}
}

func (n *rogueNode) Process(_ []datatype.Value, ctx *node.Accessor) node.Result {
	switch n.mode {
	case "panic":
		var m map[string]int
		m["boom"]++
	case "fail":
		return node.Fail("the rogue refuses")
	case "count":
		return node.Ok()
	case "type":
		return node.Ok(n.boolean.Value(true))
	case "violation":
		ctx.Get(n.world)
	}
	return node.Ok(n.number.Value(1.0))
}

func (rogueModule) Register(r *registry.Registry) {
	number := r.DataType(core.Number)
	boolean := r.DataType(core.Boolean)
	worldCtx := r.ContextType(world.WorldContext)

	var types []*node.Type
	for _, mode := range []string{"panic", "fail", "count", "type", "violation"} {
		var t *node.Type
		t = r.RegisterNodeType("test:rogue_"+mode, func(node.Env) node.Node {
			return &rogueNode{Base: node.NewBase(t), mode: mode, number: number, boolean: boolean, world: worldCtx}
		})
		types = append(types, t)
	}
	r.RegisterGroup(node.NewDirectGroup("rogues", types...))
}
