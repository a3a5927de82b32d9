package testutil

import (
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/vk/nodeflowgo/modules/core"
)

// SinkNode is the id of the probe node recording the numbers it receives.
const SinkNode = "test:sink"

// Sink records every value delivered to its "input".
type Sink struct {
	node.Base
	number   datatype.Type
	Received []float64
}

func (n *Sink) Inputs() []node.Connector {
	return []node.Connector{node.RequiredInput(n.number, "input", n)}
}

func (n *Sink) Outputs() []node.Connector {
	return nil
}

func (n *Sink) Process(inputs []datatype.Value, _ *node.Accessor) node.Result {
	n.Received = append(n.Received, datatype.As[float64](inputs[0], n.number))
	return node.Ok()
}

// ProbeModule registers the test-only sink node.
type ProbeModule struct{}

func (m *ProbeModule) Register(r *registry.Registry) {
	number := r.DataType(core.Number)
	var sink *node.Type
	sink = r.RegisterNodeType(SinkNode, func(node.Env) node.Node {
		return &Sink{Base: node.NewBase(sink), number: number}
	})
	r.TagNodeTypes("test:probes", sink)
	r.RegisterGroup(node.NewTagGroup("test:probes", r.TaggedNodeTypes))
}
