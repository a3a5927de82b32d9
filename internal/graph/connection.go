package graph

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/nodeflowgo/internal/node"
)

// Connection links the output SourcePort of SourceNode to the input TargetPort
// of TargetNode.
type Connection struct {
	TargetNode uuid.UUID
	TargetPort string
	SourceNode uuid.UUID
	SourcePort string
}

// TargetConnector resolves the input end of c in g.
func (c Connection) TargetConnector(g *Graph) (node.Connector, bool) {
	n, ok := g.Node(c.TargetNode)
	if !ok {
		return node.Connector{}, false
	}
	return node.FindInput(n, c.TargetPort)
}

// SourceConnector resolves the output end of c in g.
func (c Connection) SourceConnector(g *Graph) (node.Connector, bool) {
	n, ok := g.Node(c.SourceNode)
	if !ok {
		return node.Connector{}, false
	}
	return node.FindOutput(n, c.SourcePort)
}

// Touches reports whether either end of c is node id.
func (c Connection) Touches(id uuid.UUID) bool {
	return c.TargetNode == id || c.SourceNode == id
}

func (c Connection) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", c.SourceNode, c.SourcePort, c.TargetNode, c.TargetPort)
}
