package world

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/vk/nodeflowgo/modules/core"
)

type fakePlayer struct {
	name     string
	pos      Vec3
	received []string
}

func (p *fakePlayer) Name() string           { return p.name }
func (p *fakePlayer) Position() Vec3         { return p.pos }
func (p *fakePlayer) SendMessage(msg string) { p.received = append(p.received, msg) }

type fakeWorld struct {
	time, timeOfDay int64
	players         []Player
}

func (w *fakeWorld) Time() int64       { return w.time }
func (w *fakeWorld) TimeOfDay() int64  { return w.timeOfDay }
func (w *fakeWorld) Players() []Player { return w.players }

func newRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New().Load(&core.Module{}, &Module{})
	require.NoError(t, r.ValidateRegistry(context.Background()))
	return r
}

func TestTime(t *testing.T) {
	r := newRegistry(t)
	number := r.DataType(core.Number)
	tt, _ := r.NodeType(TimeNode)
	n := tt.New(r.SampleEnv())

	w := &fakeWorld{time: 50000, timeOfDay: 49000}
	values := ctxtype.NewBuilder().Put(r.ContextType(ServerWorldContext), ServerWorld(w)).Build()

	result := n.Process(nil, node.NewAccessor(n, values))
	require.False(t, result.Failed())

	got := make([]float64, 0, 3)
	for _, v := range result.Values() {
		got = append(got, datatype.As[float64](v, number))
	}
	assert.Equal(t, []float64{50000, 1000, 50000.0 / 24000}, got)
	assert.InDelta(t, 2.0833, got[2], 1e-4, "day keeps the fraction of the current day")
}

func TestBroadcast(t *testing.T) {
	r := newRegistry(t)
	number := r.DataType(core.Number)
	bt, _ := r.NodeType(BroadcastNode)
	n := bt.New(r.SampleEnv())

	near := &fakePlayer{name: "near", pos: Vec3{X: 10.5, Y: 0.5, Z: 0.5}}
	far := &fakePlayer{name: "far", pos: Vec3{X: 16.5, Y: 0.5, Z: 0.5}}
	w := &fakeWorld{players: []Player{near, far}}

	values := ctxtype.NewBuilder().
		Put(r.ContextType(ServerWorldContext), ServerWorld(w)).
		Put(r.ContextType(BlockPosContext), BlockPos{}).
		Build()

	result := n.Process([]datatype.Value{number.Value(42.0)}, node.NewAccessor(n, values))
	require.False(t, result.Failed())
	assert.Empty(t, result.Values())
	assert.Equal(t, []string{"Broadcast: 42"}, near.received)
	assert.Empty(t, far.received, "players at exactly the radius are out of range")
}

func TestContextHierarchy(t *testing.T) {
	r := newRegistry(t)
	world := r.ContextType(WorldContext)

	assert.True(t, r.ContextType(ServerWorldContext).Satisfies(world))
	assert.True(t, r.ContextType(ClientWorldContext).Satisfies(world))
	assert.False(t, r.ContextType(BlockPosContext).Satisfies(world))
}

func TestParseBlockPos(t *testing.T) {
	p, err := ParseBlockPos("1,-2,3")
	require.NoError(t, err)
	assert.Equal(t, BlockPos{1, -2, 3}, p)
	assert.Equal(t, "1,-2,3", p.String())

	_, err = ParseBlockPos("1,2")
	assert.Error(t, err)
}
