package graph_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/graph"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/testutil"
	"github.com/vk/nodeflowgo/modules/core"
)

type nodeSnapshot struct {
	Type     string
	ID       uuid.UUID
	X, Y     int
	Tag      string
	Nickname string
	Config   map[string]string
}

func snapshot(g *graph.Graph) ([]nodeSnapshot, []graph.Connection) {
	var nodes []nodeSnapshot
	for _, n := range g.Nodes() {
		meta := n.Meta()
		s := nodeSnapshot{Type: meta.Type().ID(), ID: meta.ID(), X: meta.X, Y: meta.Y, Tag: meta.Tag.String()}
		if meta.Nickname != nil {
			s.Nickname = *meta.Nickname
		}
		if c, ok := n.(node.Configurable); ok {
			s.Config = c.Config()
		}
		nodes = append(nodes, s)
	}
	return nodes, g.Connections()
}

func sampleGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := testutil.Graph(t)
	lit := testutil.AddLiteral(t, g, "5")
	lit.Meta().X, lit.Meta().Y = 10, -20
	lit.Meta().Tag = node.TagRed
	nick := "five"
	lit.Meta().Nickname = &nick

	truth := testutil.AddNode(t, g, "nodeflow:true")
	sw := testutil.AddNode(t, g, core.SwitchNode)
	neg := testutil.AddNode(t, g, "nodeflow:negate")
	sink := testutil.AddNode(t, g, testutil.SinkNode)

	g.AddConnection(testutil.Out(t, truth, "value"), testutil.In(t, sw, "isFirst"))
	g.AddConnection(testutil.Out(t, lit, "value"), testutil.In(t, sw, "first"))
	g.AddConnection(testutil.Out(t, lit, "value"), testutil.In(t, sw, "second"))
	g.AddConnection(testutil.Out(t, sw, "result"), testutil.In(t, neg, "input"))
	g.AddConnection(testutil.Out(t, neg, "result"), testutil.In(t, sink, "input"))
	return g
}

func TestCodec_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g := sampleGraph(t)

	decoded := testutil.Graph(t)
	require.NoError(t, decoded.Decode(ctx, g.Encode(), "graph.hcl"))

	wantNodes, wantConns := snapshot(g)
	gotNodes, gotConns := snapshot(decoded)
	if diff := cmp.Diff(wantNodes, gotNodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantConns, gotConns); diff != "" {
		t.Errorf("connections mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, string(g.Encode()), string(decoded.Encode()))
	assert.Empty(t, decoded.Evaluate(ctx, ctxtype.Empty()))
}

func TestCopy(t *testing.T) {
	ctx := context.Background()
	g := sampleGraph(t)

	once := g.Copy(ctx)
	twice := once.Copy(ctx)

	assert.Equal(t, string(once.Encode()), string(twice.Encode()))
	assert.Equal(t, string(g.Encode()), string(once.Encode()))

	// The copy is independent of the original.
	once.RemoveNode(once.Nodes()[0].Meta().ID())
	assert.Len(t, g.Nodes(), 5)
	assert.Len(t, g.Connections(), 5)
}

func TestDecode(t *testing.T) {
	ctx := context.Background()
	litID := uuid.New()
	sinkID := uuid.New()
	ghostID := uuid.New()

	t.Run("drops unknown node types and their connections", func(t *testing.T) {
		src := fmt.Sprintf(`
node "nodeflow:number" {
  id     = %q
  config = { value = "2" }
}

node "mod:unknown" {
  id = %q
}

node "test:sink" {
  id = %q
}

connection {
  target_node = %q
  target_port = "input"
  source_node = %q
  source_port = "value"
}

connection {
  target_node = %q
  target_port = "input"
  source_node = %q
  source_port = "value"
}
`, litID, ghostID, sinkID, sinkID, ghostID, sinkID, litID)

		logs := &testutil.SafeBuffer{}
		g := testutil.Graph(t)
		require.NoError(t, g.Decode(testutil.LogContext(ctx, logs), []byte(src), "graph.hcl"))

		require.Len(t, g.Nodes(), 2)
		require.Len(t, g.Connections(), 1)
		assert.Equal(t, litID, g.Connections()[0].SourceNode)
		assert.Contains(t, logs.String(), "Unknown node type")
		assert.NotContains(t, logs.String(), "non-existent node")
	})

	t.Run("drops dangling connections", func(t *testing.T) {
		src := fmt.Sprintf(`
node "test:sink" {
  id = %q
}

connection {
  target_node = %q
  target_port = "input"
  source_node = %q
  source_port = "value"
}

connection {
  target_node = %q
  target_port = "nope"
  source_node = %q
  source_port = "value"
}

connection {
  target_node = "not-a-uuid"
}
`, sinkID, sinkID, ghostID, sinkID, sinkID)

		logs := &testutil.SafeBuffer{}
		g := testutil.Graph(t)
		require.NoError(t, g.Decode(testutil.LogContext(ctx, logs), []byte(src), "graph.hcl"))

		assert.Len(t, g.Nodes(), 1)
		assert.Empty(t, g.Connections())
		assert.Contains(t, logs.String(), "non-existent node")
		assert.Contains(t, logs.String(), "malformed connection")
	})

	t.Run("invalid ids and tags fall back", func(t *testing.T) {
		src := `
node "nodeflow:pi" {
  id  = "broken"
  tag = "chartreuse"
}
`
		g := testutil.Graph(t)
		require.NoError(t, g.Decode(ctx, []byte(src), "graph.hcl"))

		require.Len(t, g.Nodes(), 1)
		meta := g.Nodes()[0].Meta()
		assert.NotEqual(t, uuid.Nil, meta.ID())
		assert.Equal(t, node.TagWhite, meta.Tag)
		assert.Nil(t, meta.Nickname)
	})

	t.Run("reads json documents", func(t *testing.T) {
		src := fmt.Sprintf(`{"node": {"nodeflow:switch": {"id": %q, "config": {"data_type": "nodeflow:string"}}}}`, litID)
		g := testutil.Graph(t)
		require.NoError(t, g.Decode(ctx, []byte(src), "graph.json"))

		require.Len(t, g.Nodes(), 1)
		sw := g.Nodes()[0].(*core.Switch)
		assert.Equal(t, core.String, sw.DataType().ID())
	})

	t.Run("syntax errors leave the graph untouched", func(t *testing.T) {
		g := sampleGraph(t)
		before := string(g.Encode())

		err := g.Decode(ctx, []byte(`node "x" {`), "graph.hcl")

		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "graph.hcl"))
		assert.Equal(t, before, string(g.Encode()))
	})
}
