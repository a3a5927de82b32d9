package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/zclconf/go-cty/cty"
)

type constNode struct {
	node.Base
	out   datatype.Type
	names []string
}

func (n *constNode) Inputs() []node.Connector { return nil }

func (n *constNode) Outputs() []node.Connector {
	outs := make([]node.Connector, len(n.names))
	for i, name := range n.names {
		outs[i] = node.RequiredOutput(n.out, name, n)
	}
	return outs
}

func (n *constNode) Process([]datatype.Value, *node.Accessor) node.Result {
	return node.Ok(n.out.Value(1.0))
}

type testModule struct{}

func (testModule) Register(r *Registry) {
	number := r.RegisterDataType("test:number", 0, true, cty.Number)
	r.RegisterContextType("test:world", ctxtype.TypeOf[int64]())

	var one *node.Type
	one = r.RegisterNodeType("test:one", func(node.Env) node.Node {
		return &constNode{Base: node.NewBase(one), out: number, names: []string{"value"}}
	})
	r.TagNodeTypes("test:constants", one)
	r.RegisterGroup(node.NewTagGroup("test:constants", r.TaggedNodeTypes))
}

func TestRegistry_Load(t *testing.T) {
	r := New().Load(testModule{})

	assert.Equal(t, "test:number", r.DataType("test:number").ID())
	assert.Equal(t, "test:world", r.ContextType("test:world").ID())
	assert.Panics(t, func() { r.DataType("test:missing") })
	assert.Panics(t, func() { r.ContextType("test:missing") })

	one, ok := r.NodeType("test:one")
	require.True(t, ok)
	assert.Equal(t, []*node.Type{one}, r.NodeTypes())
	assert.Equal(t, []*node.Type{one}, r.TaggedNodeTypes("test:constants"))

	r.TagNodeTypes("test:constants", one)
	assert.Len(t, r.TaggedNodeTypes("test:constants"), 1, "tagging twice is a no-op")

	require.Len(t, r.Groups(), 1)
	assert.Equal(t, []*node.Type{one}, r.Groups()[0].NodeTypes())

	assert.Panics(t, func() { r.RegisterNodeType("test:one", nil) })
}

func TestRegistry_DecodeGroup(t *testing.T) {
	r := New().Load(testModule{})
	one, _ := r.NodeType("test:one")

	t.Run("direct", func(t *testing.T) {
		g, err := r.DecodeGroup(node.GroupSpec{Decoder: node.DirectDecoder, Name: "flow", Members: []string{"test:one"}})
		require.NoError(t, err)
		assert.Equal(t, "flow", g.Name())
		assert.Equal(t, []*node.Type{one}, g.NodeTypes())
	})

	t.Run("direct with unknown member", func(t *testing.T) {
		_, err := r.DecodeGroup(node.GroupSpec{Decoder: node.DirectDecoder, Name: "flow", Members: []string{"test:two"}})
		assert.ErrorContains(t, err, "unknown node type 'test:two'")
	})

	t.Run("tag", func(t *testing.T) {
		g, err := r.DecodeGroup(node.GroupSpec{Decoder: node.TagDecoder, Tag: "test:constants"})
		require.NoError(t, err)
		assert.Equal(t, []*node.Type{one}, g.NodeTypes())
	})

	t.Run("unknown decoder", func(t *testing.T) {
		_, err := r.DecodeGroup(node.GroupSpec{Decoder: "nodeflow:client_tag"})
		assert.Error(t, err)
	})
}

func TestValidateRegistry(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r := New().Load(testModule{})
		assert.NoError(t, r.ValidateRegistry(context.Background()))
	})

	t.Run("broken node types", func(t *testing.T) {
		r := New().Load(testModule{})
		number := r.DataType("test:number")
		foreign := datatype.NewRegistry().Register("test:number", 0, true, cty.Number)
		one, _ := r.NodeType("test:one")

		r.RegisterNodeType("test:impostor", func(node.Env) node.Node {
			return &constNode{Base: node.NewBase(one), out: number, names: []string{"value"}}
		})
		var dup *node.Type
		dup = r.RegisterNodeType("test:dup", func(node.Env) node.Node {
			return &constNode{Base: node.NewBase(dup), out: number, names: []string{"a", "a"}}
		})
		var alien *node.Type
		alien = r.RegisterNodeType("test:alien", func(node.Env) node.Node {
			return &constNode{Base: node.NewBase(alien), out: foreign, names: []string{"value"}}
		})
		r.RegisterNodeType("test:panics", func(node.Env) node.Node { panic("boom") })

		err := r.ValidateRegistry(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "node type 'test:impostor': factory produced a node of type 'test:one'")
		assert.Contains(t, err.Error(), "node type 'test:dup': duplicate connector 'a'")
		assert.Contains(t, err.Error(), "node type 'test:alien': connector 'value' uses an unregistered data type")
		assert.Contains(t, err.Error(), "node type 'test:panics': factory panicked: boom")
	})
}
