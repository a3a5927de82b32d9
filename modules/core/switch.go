package core

import (
	"fmt"
	"slices"

	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
)

// Switch forwards "first" when "isFirst" is true and "second" otherwise. The
// type of the forwarded values is configurable; changing it changes the shape
// of the node, so the owner must clean the node's connections afterwards.
type Switch struct {
	node.Base
	boolean  datatype.Type
	dataType datatype.Type
}

func newSwitch(t *node.Type, env node.Env, number, boolean datatype.Type) *Switch {
	allowed := env.AllowedDataTypes()
	dataType := number
	if len(allowed) > 0 && !slices.Contains(allowed, number) {
		dataType = allowed[0]
	}
	return &Switch{Base: node.NewBase(t), boolean: boolean, dataType: dataType}
}

// DataType returns the type of the forwarded values.
func (n *Switch) DataType() datatype.Type {
	return n.dataType
}

// SetDataType changes the type of the forwarded values.
func (n *Switch) SetDataType(t datatype.Type) {
	n.dataType = t
}

func (n *Switch) Inputs() []node.Connector {
	return []node.Connector{
		node.RequiredInput(n.boolean, "isFirst", n),
		node.RequiredInput(n.dataType, "first", n),
		node.RequiredInput(n.dataType, "second", n),
	}
}

func (n *Switch) Outputs() []node.Connector {
	return []node.Connector{node.OptionalOutput(n.dataType, "result", n)}
}

func (n *Switch) Process(inputs []datatype.Value, _ *node.Accessor) node.Result {
	if datatype.As[bool](inputs[0], n.boolean) {
		return node.Ok(inputs[1])
	}
	return node.Ok(inputs[2])
}

func (n *Switch) Config() map[string]string {
	return map[string]string{"data_type": n.dataType.ID()}
}

func (n *Switch) LoadConfig(cfg map[string]string, env node.Env) error {
	id, ok := cfg["data_type"]
	if !ok {
		return nil
	}
	for _, t := range env.AllowedDataTypes() {
		if t.ID() == id {
			n.dataType = t
			return nil
		}
	}
	return fmt.Errorf("data type '%s' is not allowed", id)
}
