package graph_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodeflowgo/internal/environment"
	"github.com/vk/nodeflowgo/internal/graph"
	"github.com/vk/nodeflowgo/internal/testutil"
	"github.com/vk/nodeflowgo/modules/core"
)

func TestAddNode(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate id is ignored", func(t *testing.T) {
		g := testutil.Graph(t)
		first := testutil.AddNode(t, g, "nodeflow:one")
		second := g.NewNode(first.Meta().Type())
		second.Meta().SetID(first.Meta().ID())

		g.AddNode(ctx, second)

		require.Len(t, g.Nodes(), 1)
		got, _ := g.Node(first.Meta().ID())
		assert.Same(t, first, got)
	})

	t.Run("disallowed node type panics", func(t *testing.T) {
		r := testutil.Registry(t)
		one, _ := r.NodeType("nodeflow:one")
		env, err := environment.NewBuilder().
			AddDataTypes(r.DataType(core.Number)).
			AddNodeTypes(one).
			Build()
		require.NoError(t, err)
		g := graph.New(env, r)
		g.AddNode(ctx, g.NewNode(one))

		add, _ := r.NodeType("nodeflow:add")
		assert.Panics(t, func() { g.AddNode(ctx, g.NewNode(add)) })
	})

	t.Run("nodes keep insertion order", func(t *testing.T) {
		g := testutil.Graph(t)
		a := testutil.AddNode(t, g, "nodeflow:one")
		b := testutil.AddNode(t, g, "nodeflow:zero")
		c := testutil.AddNode(t, g, "nodeflow:pi")

		ids := []uuid.UUID{}
		for _, n := range g.Nodes() {
			ids = append(ids, n.Meta().ID())
		}
		assert.Equal(t, []uuid.UUID{a.Meta().ID(), b.Meta().ID(), c.Meta().ID()}, ids)
	})
}

func TestAddConnection(t *testing.T) {
	g := testutil.Graph(t)
	one := testutil.AddNode(t, g, "nodeflow:one")
	add := testutil.AddNode(t, g, "nodeflow:add")

	c := g.AddConnection(testutil.Out(t, one, "value"), testutil.In(t, add, "first"))
	reversed := g.AddConnection(testutil.In(t, add, "first"), testutil.Out(t, one, "value"))

	assert.Equal(t, graph.Connection{
		TargetNode: add.Meta().ID(), TargetPort: "first",
		SourceNode: one.Meta().ID(), SourcePort: "value",
	}, c)
	assert.Equal(t, c, reversed, "the target is always the input")
	assert.Len(t, g.Connections(), 1, "connections form a set")

	target, ok := c.TargetConnector(g)
	require.True(t, ok)
	assert.Equal(t, testutil.In(t, add, "first"), target)

	assert.Panics(t, func() {
		g.AddConnection(testutil.In(t, add, "first"), testutil.In(t, add, "second"))
	})
}

func TestRemoveNode_CascadesConnections(t *testing.T) {
	g := testutil.Graph(t)
	one := testutil.AddNode(t, g, "nodeflow:one")
	neg := testutil.AddNode(t, g, "nodeflow:negate")
	sink := testutil.AddNode(t, g, testutil.SinkNode)

	g.AddConnection(testutil.Out(t, one, "value"), testutil.In(t, neg, "input"))
	g.AddConnection(testutil.Out(t, neg, "result"), testutil.In(t, sink, "input"))
	require.Len(t, g.ConnectionsOf(neg.Meta().ID()), 2)

	g.RemoveNode(neg.Meta().ID())

	assert.Empty(t, g.Connections())
	assert.Len(t, g.Nodes(), 2)
	_, ok := g.Node(neg.Meta().ID())
	assert.False(t, ok)
}

func TestConnectionsAt(t *testing.T) {
	g := testutil.Graph(t)
	one := testutil.AddNode(t, g, "nodeflow:one")
	a := testutil.AddNode(t, g, testutil.SinkNode)
	b := testutil.AddNode(t, g, testutil.SinkNode)

	out := testutil.Out(t, one, "value")
	g.AddConnection(out, testutil.In(t, a, "input"))
	g.AddConnection(out, testutil.In(t, b, "input"))

	assert.Len(t, g.ConnectionsAt(out), 2, "a splittable output fans out")
	assert.Len(t, g.ConnectionsAt(testutil.In(t, a, "input")), 1)
	assert.Equal(t, 2, g.CountConnections(out))

	g.RemoveConnections(out)
	assert.Empty(t, g.Connections())
}

func TestCleanConnections_AfterSwitchTypeChange(t *testing.T) {
	g := testutil.Graph(t)
	sw := testutil.AddNode(t, g, core.SwitchNode).(*core.Switch)
	truth := testutil.AddNode(t, g, "nodeflow:true")
	one := testutil.AddNode(t, g, "nodeflow:one")
	sink := testutil.AddNode(t, g, testutil.SinkNode)

	g.AddConnection(testutil.Out(t, truth, "value"), testutil.In(t, sw, "isFirst"))
	g.AddConnection(testutil.Out(t, one, "value"), testutil.In(t, sw, "first"))
	g.AddConnection(testutil.Out(t, sw, "result"), testutil.In(t, sink, "input"))

	for _, dt := range g.Env().AllowedDataTypes() {
		if dt.ID() == core.String {
			sw.SetDataType(dt)
		}
	}
	g.CleanConnections(sw)

	require.Len(t, g.Connections(), 1, "only the boolean selector keeps its type")
	assert.Equal(t, "isFirst", g.Connections()[0].TargetPort)
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	g := testutil.Graph(t)
	one := testutil.AddNode(t, g, "nodeflow:one")
	sink := testutil.AddNode(t, g, testutil.SinkNode)
	g.AddConnection(testutil.Out(t, one, "value"), testutil.In(t, sink, "input"))

	assert.Equal(t, 0, g.Prune(ctx))

	detached := g.NewNode(sink.Meta().Type())
	g.AddConnection(testutil.Out(t, one, "value"), testutil.In(t, detached, "input"))
	require.Len(t, g.Connections(), 2)

	assert.Equal(t, 1, g.Prune(ctx))
	require.Len(t, g.Connections(), 1)
	assert.Equal(t, sink.Meta().ID(), g.Connections()[0].TargetNode)
}
