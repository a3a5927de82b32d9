package handlers

import (
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
)

// Constant has no inputs and one output named "value" carrying a fixed value.
type Constant struct {
	node.Base
	value datatype.Value
}

func (n *Constant) Inputs() []node.Connector {
	return nil
}

func (n *Constant) Outputs() []node.Connector {
	return []node.Connector{node.OptionalOutput(n.value.Type(), "value", n)}
}

func (n *Constant) Process([]datatype.Value, *node.Accessor) node.Result {
	return node.Ok(n.value)
}

// RegisterConstant registers a node type producing value.
func RegisterConstant(r *registry.Registry, id string, value datatype.Value) *node.Type {
	var t *node.Type
	t = r.RegisterNodeType(id, func(node.Env) node.Node {
		return &Constant{Base: node.NewBase(t), value: value}
	})
	return t
}
