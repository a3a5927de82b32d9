package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/nodeflowgo/internal/ctxlog"
	"github.com/vk/nodeflowgo/internal/dag"
	"github.com/vk/nodeflowgo/internal/node"
)

// Errors reported by Link. They are meant to be shown to the user.
var (
	ErrTwoOutputs    = errors.New("cannot connect two outputs")
	ErrTwoInputs     = errors.New("cannot connect two inputs")
	ErrDifferentType = errors.New("cannot connect ports of different types")
	ErrRecursion     = errors.New("connection would make a node depend on itself")
)

// Link connects from to to the way the editor does when the user drags a wire
// from one port to another.
//
// Linking a port to itself clears its connections. Inputs, and outputs of
// non-splittable types, lose their previous connections first. A connection
// that would close a loop is removed again and ErrRecursion is returned.
func (g *Graph) Link(ctx context.Context, from, to node.Connector) error {
	for _, c := range []node.Connector{from, to} {
		if !c.IsValid() {
			return fmt.Errorf("connector %s has no node", c)
		}
		if _, ok := g.Node(c.Parent.Meta().ID()); !ok {
			return fmt.Errorf("connector %s belongs to a node outside the graph", c)
		}
	}

	if from == to {
		g.RemoveConnections(from)
		return nil
	}
	if from.Output == to.Output {
		if to.Output {
			return ErrTwoOutputs
		}
		return ErrTwoInputs
	}
	if from.Type != to.Type {
		return ErrDifferentType
	}

	for _, c := range []node.Connector{from, to} {
		if !c.Output || !c.Type.Splittable() {
			g.RemoveConnections(c)
		}
	}
	added := g.AddConnection(from, to)

	if err := g.detectCycles(); err != nil {
		ctxlog.FromContext(ctx).Debug("Rejected connection closing a loop.", "connection", added.String(), "error", err)
		g.RemoveConnection(added)
		return ErrRecursion
	}
	return nil
}

// detectCycles reports whether the resolvable connections form a loop.
func (g *Graph) detectCycles() error {
	d := dag.New()
	for _, id := range g.order {
		d.AddNode(id.String())
	}
	for _, c := range g.connOrder {
		if g.unresolved(c) != "" {
			continue
		}
		if err := d.AddEdge(c.SourceNode.String(), c.TargetNode.String()); err != nil {
			return err
		}
	}
	return d.DetectCycles()
}
