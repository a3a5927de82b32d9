package environment_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodeflowgo/internal/environment"
	"github.com/vk/nodeflowgo/internal/testutil"
	"github.com/vk/nodeflowgo/modules/core"
	"github.com/vk/nodeflowgo/modules/world"
)

func TestNew(t *testing.T) {
	r := testutil.Registry(t)

	t.Run("requires a data type", func(t *testing.T) {
		_, err := environment.New(nil, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one data type")
	})

	t.Run("reports every node type lacking a context", func(t *testing.T) {
		_, err := environment.NewBuilder().
			AddDataTypes(r.DataTypes().All()...).
			AddNodeGroups(r.Groups()...).
			Build()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to build graph environment")
		assert.Contains(t, err.Error(), "'nodeflow:time'")
		assert.Contains(t, err.Error(), "'nodeflow:broadcast'")
		assert.Contains(t, err.Error(), "'nodeflow:world'")
	})

	t.Run("a child context covers its parent", func(t *testing.T) {
		env, err := environment.NewBuilder().
			AddDataTypes(r.DataTypes().All()...).
			AddContextTypes(r.ContextType(world.ServerWorldContext), r.ContextType(world.BlockPosContext)).
			AddNodeGroups(r.Groups()...).
			Build()

		require.NoError(t, err)
		timeNode, _ := r.NodeType(world.TimeNode)
		assert.True(t, env.IsAllowedNodeType(timeNode))
	})

	t.Run("rejects disallowed data types", func(t *testing.T) {
		and, _ := r.NodeType("nodeflow:and")
		_, err := environment.NewBuilder().
			AddDataTypes(r.DataType(core.Number)).
			AddNodeTypes(and).
			Build()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "input 'first' has type 'nodeflow:boolean' which is not allowed")
	})
}

func TestQueries(t *testing.T) {
	r := testutil.Registry(t)
	one, _ := r.NodeType("nodeflow:one")
	add, _ := r.NodeType("nodeflow:add")
	number := r.DataType(core.Number)

	env, err := environment.NewBuilder().
		AddDataTypes(number).
		AddNodeTypes(one, add, one).
		Build()
	require.NoError(t, err)

	assert.True(t, env.IsAllowedNodeType(one))
	assert.False(t, env.IsAllowedNodeType(r.NodeTypes()[len(r.NodeTypes())-1]))
	assert.True(t, env.IsAllowedDataType(number))
	assert.False(t, env.IsAllowedDataType(r.DataType(core.Boolean)))
	assert.Equal(t, []string{"nodeflow:one", "nodeflow:add"}, ids(env.NodeTypes()))
	require.Len(t, env.Groups(), 1)
	assert.Equal(t, "misc", env.Groups()[0].Name())
	assert.Empty(t, env.AvailableContexts())
}

func TestFromRegistry(t *testing.T) {
	r := testutil.Registry(t)
	env := testutil.Environment(t, r)

	assert.ElementsMatch(t, ids(r.NodeTypes()), ids(env.NodeTypes()))
	assert.Len(t, env.AllowedDataTypes(), len(r.DataTypes().All()))
	assert.Len(t, env.AvailableContexts(), len(r.ContextTypes().All()))
}

func TestReport(t *testing.T) {
	r := testutil.Registry(t)
	logs := &testutil.SafeBuffer{}
	ctx := testutil.LogContext(context.Background(), logs)

	report := environment.NewBuilder().
		AddDataTypes(r.DataTypes().All()...).
		AddContextTypes(r.ContextType(world.ServerContext)).
		AddNodeGroups(r.Groups()...).
		Report(ctx)

	assert.Contains(t, report, "Graph environment debug info:")
	assert.Contains(t, report, " - [id: nodeflow:server, parents: [], type: ")
	assert.Contains(t, report, " - [id: nodeflow:number, splittable: true]")
	assert.Contains(t, report, "The following node types would be rejected:")
	assert.Contains(t, report, "nodeflow:time: requires context 'nodeflow:world' which is not available")
	assert.Contains(t, logs.String(), "Graph environment debug info")

	empty := environment.NewBuilder().Report(context.Background())
	assert.Contains(t, empty, "No contexts are available")
	assert.Contains(t, empty, "No data types are allowed")
	assert.Contains(t, empty, "Couldn't build environment")
}

func TestDescriptor(t *testing.T) {
	r := testutil.Registry(t)
	one, _ := r.NodeType("nodeflow:one")
	env, err := environment.NewBuilder().
		AddDataTypes(r.DataTypes().All()...).
		AddContextTypes(r.ContextTypes().All()...).
		AddNodeGroups(r.Groups()...).
		AddNodeTypes(one).
		Build()
	require.NoError(t, err)
	want := env.Describe()

	t.Run("hcl", func(t *testing.T) {
		decoded, err := environment.DecodeHCL(r, env.EncodeHCL(), "environment.hcl")
		require.NoError(t, err)
		if diff := cmp.Diff(want, decoded.Describe()); diff != "" {
			t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("json", func(t *testing.T) {
		data, err := env.MarshalJSON()
		require.NoError(t, err)
		decoded, err := environment.UnmarshalJSON(r, data)
		require.NoError(t, err)
		if diff := cmp.Diff(want, decoded.Describe()); diff != "" {
			t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("hand written", func(t *testing.T) {
		src := `
data_types = ["nodeflow:number", "nodeflow:boolean"]

group "tag" {
  tag = "nodeflow:logic"
}

group "direct" {
  name    = "numbers"
  members = ["nodeflow:one", "nodeflow:add"]
}
`
		decoded, err := environment.DecodeHCL(r, []byte(src), "environment.hcl")
		require.NoError(t, err)
		assert.Contains(t, ids(decoded.NodeTypes()), "nodeflow:and")
		assert.Contains(t, ids(decoded.NodeTypes()), "nodeflow:add")
		assert.Empty(t, decoded.AvailableContexts())
	})

	t.Run("unknown ids fail", func(t *testing.T) {
		_, err := environment.DecodeHCL(r, []byte(`data_types = ["mod:nope"]`), "environment.hcl")
		assert.ErrorContains(t, err, "unknown data type 'mod:nope'")
	})
}
