// Package testutil builds the registries, environments and graphs shared by
// package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/nodeflowgo/internal/environment"
	"github.com/vk/nodeflowgo/internal/graph"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/vk/nodeflowgo/modules/compare"
	"github.com/vk/nodeflowgo/modules/constants"
	"github.com/vk/nodeflowgo/modules/core"
	"github.com/vk/nodeflowgo/modules/logic"
	"github.com/vk/nodeflowgo/modules/mathops"
	"github.com/vk/nodeflowgo/modules/world"
)

// BuiltinModules returns fresh instances of every built-in module, core first.
func BuiltinModules() []registry.Module {
	return []registry.Module{
		&core.Module{},
		&constants.Module{},
		&logic.Module{},
		&mathops.Module{},
		&compare.Module{},
		&world.Module{},
	}
}

// Registry returns a validated registry with the built-in modules, the probe
// module, and any extra modules.
func Registry(t *testing.T, extra ...registry.Module) *registry.Registry {
	t.Helper()
	modules := append(BuiltinModules(), &ProbeModule{})
	r := registry.New().Load(append(modules, extra...)...)
	require.NoError(t, r.ValidateRegistry(context.Background()))
	return r
}

// Environment returns the environment allowing everything r knows.
func Environment(t *testing.T, r *registry.Registry) *environment.Environment {
	t.Helper()
	env, err := environment.FromRegistry(r)
	require.NoError(t, err)
	return env
}

// Graph returns an empty graph over the full environment of a fresh registry.
func Graph(t *testing.T, extra ...registry.Module) *graph.Graph {
	t.Helper()
	r := Registry(t, extra...)
	return graph.New(Environment(t, r), r)
}

// nodeType finds an allowed node type of g by id.
func nodeType(t *testing.T, g *graph.Graph, id string) *node.Type {
	t.Helper()
	for _, nt := range g.Env().NodeTypes() {
		if nt.ID() == id {
			return nt
		}
	}
	require.FailNow(t, "node type not allowed by the environment", id)
	return nil
}

// AddNode creates a node of type id and adds it to g.
func AddNode(t *testing.T, g *graph.Graph, id string) node.Node {
	t.Helper()
	n := g.NewNode(nodeType(t, g, id))
	g.AddNode(context.Background(), n)
	return n
}

// AddLiteral adds a number literal holding text.
func AddLiteral(t *testing.T, g *graph.Graph, text string) *core.Literal {
	t.Helper()
	lit := AddNode(t, g, core.NumberNode).(*core.Literal)
	lit.Text = text
	return lit
}

// In returns the input of n named name.
func In(t *testing.T, n node.Node, name string) node.Connector {
	t.Helper()
	c, ok := node.FindInput(n, name)
	require.True(t, ok, "node %s has no input %q", n.Meta().Type(), name)
	return c
}

// Out returns the output of n named name.
func Out(t *testing.T, n node.Node, name string) node.Connector {
	t.Helper()
	c, ok := node.FindOutput(n, name)
	require.True(t, ok, "node %s has no output %q", n.Meta().Type(), name)
	return c
}
