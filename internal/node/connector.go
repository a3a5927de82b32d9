package node

import (
	"fmt"

	"github.com/vk/nodeflowgo/internal/datatype"
)

// Connector is a typed, named, directional port belonging to a node.
//
// Connectors are transient descriptors. Two connectors are the same port when
// every field matches, including the identity of the parent node.
type Connector struct {
	Type     datatype.Type
	Name     string
	Output   bool
	Optional bool
	Parent   Node
}

// RequiredInput describes an input that must be connected.
func RequiredInput(t datatype.Type, name string, parent Node) Connector {
	return Connector{Type: t, Name: name, Parent: parent}
}

// OptionalInput describes an input that may be left unconnected.
func OptionalInput(t datatype.Type, name string, parent Node) Connector {
	return Connector{Type: t, Name: name, Optional: true, Parent: parent}
}

// RequiredOutput describes an output that must feed at least one input.
func RequiredOutput(t datatype.Type, name string, parent Node) Connector {
	return Connector{Type: t, Name: name, Output: true, Parent: parent}
}

// OptionalOutput describes an output that may be left unconnected.
func OptionalOutput(t datatype.Type, name string, parent Node) Connector {
	return Connector{Type: t, Name: name, Output: true, Optional: true, Parent: parent}
}

// IsValid reports whether the connector belongs to a node.
func (c Connector) IsValid() bool {
	return c.Parent != nil && c.Name != ""
}

func (c Connector) String() string {
	direction := "input"
	if c.Output {
		direction = "output"
	}
	if c.Parent == nil {
		return fmt.Sprintf("%s %s (%s)", direction, c.Name, c.Type)
	}
	return fmt.Sprintf("%s %s.%s (%s)", direction, c.Parent.Meta().ID(), c.Name, c.Type)
}

// FindInput returns the input of n named name.
func FindInput(n Node, name string) (Connector, bool) {
	return find(n.Inputs(), name)
}

// FindOutput returns the output of n named name.
func FindOutput(n Node, name string) (Connector, bool) {
	return find(n.Outputs(), name)
}

func find(connectors []Connector, name string) (Connector, bool) {
	for _, c := range connectors {
		if c.Name == name {
			return c, true
		}
	}
	return Connector{}, false
}
