package handlers

import (
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
)

// Unary applies fn to its "input" and emits the outcome on "result".
type Unary[I, O any] struct {
	node.Base
	in, out datatype.Type
	fn      func(I) O
}

func (n *Unary[I, O]) Inputs() []node.Connector {
	return []node.Connector{node.RequiredInput(n.in, "input", n)}
}

func (n *Unary[I, O]) Outputs() []node.Connector {
	return []node.Connector{node.OptionalOutput(n.out, "result", n)}
}

func (n *Unary[I, O]) Process(inputs []datatype.Value, _ *node.Accessor) node.Result {
	return node.Ok(n.out.Value(n.fn(datatype.As[I](inputs[0], n.in))))
}

// RegisterUnary registers a node type computing fn over values of type in.
// The Go types I and O must match the kinds of in and out.
func RegisterUnary[I, O any](r *registry.Registry, id string, in, out datatype.Type, fn func(I) O) *node.Type {
	var t *node.Type
	t = r.RegisterNodeType(id, func(node.Env) node.Node {
		return &Unary[I, O]{Base: node.NewBase(t), in: in, out: out, fn: fn}
	})
	return t
}

// Binary applies fn to its "first" and "second" inputs and emits the outcome
// on "result".
type Binary[I, O any] struct {
	node.Base
	in, out datatype.Type
	fn      func(I, I) O
}

func (n *Binary[I, O]) Inputs() []node.Connector {
	return []node.Connector{
		node.RequiredInput(n.in, "first", n),
		node.RequiredInput(n.in, "second", n),
	}
}

func (n *Binary[I, O]) Outputs() []node.Connector {
	return []node.Connector{node.OptionalOutput(n.out, "result", n)}
}

func (n *Binary[I, O]) Process(inputs []datatype.Value, _ *node.Accessor) node.Result {
	first := datatype.As[I](inputs[0], n.in)
	second := datatype.As[I](inputs[1], n.in)
	return node.Ok(n.out.Value(n.fn(first, second)))
}

// RegisterBinary registers a node type computing fn over two values of type in.
func RegisterBinary[I, O any](r *registry.Registry, id string, in, out datatype.Type, fn func(I, I) O) *node.Type {
	var t *node.Type
	t = r.RegisterNodeType(id, func(node.Env) node.Node {
		return &Binary[I, O]{Base: node.NewBase(t), in: in, out: out, fn: fn}
	})
	return t
}
