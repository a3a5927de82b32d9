package graph

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/vk/nodeflowgo/internal/ctxlog"
	"github.com/vk/nodeflowgo/internal/environment"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
)

// Graph is the node and connection set of one session. It is not safe for
// concurrent use.
type Graph struct {
	env *environment.Environment
	reg *registry.Registry

	nodes map[uuid.UUID]node.Node
	order []uuid.UUID

	connections map[Connection]struct{}
	connOrder   []Connection
}

// New creates an empty graph governed by env. Node types in documents are
// resolved through reg.
func New(env *environment.Environment, reg *registry.Registry) *Graph {
	return &Graph{
		env:         env,
		reg:         reg,
		nodes:       make(map[uuid.UUID]node.Node),
		connections: make(map[Connection]struct{}),
	}
}

func (g *Graph) Env() *environment.Environment {
	return g.env
}

// NewNode creates a node of type t for this graph without adding it.
func (g *Graph) NewNode(t *node.Type) node.Node {
	return t.New(g.env)
}

// AddNode adds n. A node type the environment does not allow panics. A node
// whose id is already present is ignored with a warning.
func (g *Graph) AddNode(ctx context.Context, n node.Node) {
	meta := n.Meta()
	if !g.env.IsAllowedNodeType(meta.Type()) {
		panic(fmt.Sprintf("this graph doesn't support node type '%s'", meta.Type()))
	}
	if _, exists := g.nodes[meta.ID()]; exists {
		ctxlog.FromContext(ctx).Warn("Tried to add node that already is in graph.", "id", meta.ID(), "type", meta.Type().ID())
		return
	}
	g.nodes[meta.ID()] = n
	g.order = append(g.order, meta.ID())
}

// Node returns the node with the given id.
func (g *Graph) Node(id uuid.UUID) (node.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []node.Node {
	nodes := make([]node.Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// RemoveNode removes the node and every connection referencing it.
func (g *Graph) RemoveNode(id uuid.UUID) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	g.order = slices.DeleteFunc(g.order, func(other uuid.UUID) bool { return other == id })
	g.removeWhere(func(c Connection) bool { return c.Touches(id) })
}

// AddConnection connects an input and an output, in either order. Two ports
// of the same direction panic. Splittability and cycles are not checked.
func (g *Graph) AddConnection(a, b node.Connector) Connection {
	if a.Output == b.Output {
		panic(fmt.Sprintf("cannot connect %s to %s: both have the same direction", a, b))
	}
	if a.Output {
		a, b = b, a
	}
	c := Connection{
		TargetNode: a.Parent.Meta().ID(),
		TargetPort: a.Name,
		SourceNode: b.Parent.Meta().ID(),
		SourcePort: b.Name,
	}
	g.addConnection(c)
	return c
}

func (g *Graph) addConnection(c Connection) {
	if _, exists := g.connections[c]; exists {
		return
	}
	g.connections[c] = struct{}{}
	g.connOrder = append(g.connOrder, c)
}

// RemoveConnection removes a single connection.
func (g *Graph) RemoveConnection(c Connection) {
	g.removeWhere(func(other Connection) bool { return other == c })
}

// RemoveConnections removes every connection at connector c.
func (g *Graph) RemoveConnections(c node.Connector) {
	g.removeWhere(func(other Connection) bool { return g.resolvesTo(other, c) })
}

// CleanConnections removes the connections of n whose ends no longer resolve
// or whose ends now have different data types.
func (g *Graph) CleanConnections(n node.Node) {
	g.removeWhere(func(c Connection) bool {
		if !c.Touches(n.Meta().ID()) {
			return false
		}
		target, ok := c.TargetConnector(g)
		if !ok {
			return true
		}
		source, ok := c.SourceConnector(g)
		return !ok || target.Type != source.Type
	})
}

func (g *Graph) removeWhere(match func(Connection) bool) {
	g.connOrder = slices.DeleteFunc(g.connOrder, func(c Connection) bool {
		if match(c) {
			delete(g.connections, c)
			return true
		}
		return false
	})
}

// Connections returns every connection in insertion order.
func (g *Graph) Connections() []Connection {
	return slices.Clone(g.connOrder)
}

// ConnectionsOf returns the connections to and from node id.
func (g *Graph) ConnectionsOf(id uuid.UUID) []Connection {
	var out []Connection
	for _, c := range g.connOrder {
		if c.Touches(id) {
			out = append(out, c)
		}
	}
	return out
}

// ConnectionsAt returns the connections that resolve to connector c. An input
// yields at most one; an output of a splittable type may yield several.
func (g *Graph) ConnectionsAt(c node.Connector) []Connection {
	var out []Connection
	for _, conn := range g.connOrder {
		if !g.resolvesTo(conn, c) {
			continue
		}
		out = append(out, conn)
		if !c.Output {
			break
		}
	}
	return out
}

// resolvesTo reports whether the end of conn on c's side is c.
func (g *Graph) resolvesTo(conn Connection, c node.Connector) bool {
	var end node.Connector
	var ok bool
	if c.Output {
		end, ok = conn.SourceConnector(g)
	} else {
		end, ok = conn.TargetConnector(g)
	}
	return ok && end == c
}

// CountConnections implements node.Linker.
func (g *Graph) CountConnections(c node.Connector) int {
	return len(g.ConnectionsAt(c))
}

// IsFullyConnected reports whether every required port of n is connected.
func (g *Graph) IsFullyConnected(n node.Node) bool {
	return node.IsFullyConnected(n, g)
}

// Prune removes every connection whose nodes or ports no longer resolve and
// returns how many were removed.
func (g *Graph) Prune(ctx context.Context) int {
	logger := ctxlog.FromContext(ctx)
	before := len(g.connOrder)
	g.removeWhere(func(c Connection) bool {
		if reason := g.unresolved(c); reason != "" {
			logger.Warn("Removing dangling connection.", "connection", c.String(), "reason", reason)
			return true
		}
		return false
	})
	return before - len(g.connOrder)
}

// unresolved explains why c does not resolve, or returns "".
func (g *Graph) unresolved(c Connection) string {
	if _, ok := g.nodes[c.TargetNode]; !ok {
		return "target node does not exist"
	}
	if _, ok := g.nodes[c.SourceNode]; !ok {
		return "source node does not exist"
	}
	if _, ok := c.TargetConnector(g); !ok {
		return "target input does not exist"
	}
	if _, ok := c.SourceConnector(g); !ok {
		return "source output does not exist"
	}
	return ""
}

// Copy returns a deep, independent copy made by round-tripping through the
// document format.
func (g *Graph) Copy(ctx context.Context) *Graph {
	copied := New(g.env, g.reg)
	if err := copied.Decode(ctx, g.Encode(), "copy.hcl"); err != nil {
		panic(fmt.Sprintf("graph copy failed to decode its own document: %v", err))
	}
	return copied
}
