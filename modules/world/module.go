// Package world registers the host context types and the nodes that read or
// affect the game world.
package world

import (
	"fmt"

	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/vk/nodeflowgo/modules/core"
)

// Context type ids.
const (
	ServerContext      = "nodeflow:server"
	WorldContext       = "nodeflow:world"
	ServerWorldContext = "nodeflow:server_world"
	BlockPosContext    = "nodeflow:block_pos"
	ClientContext      = "nodeflow:client"
	ClientWorldContext = "nodeflow:client_world"
)

// Node type ids.
const (
	TimeNode      = "nodeflow:time"
	BroadcastNode = "nodeflow:broadcast"
)

// BroadcastRadius is the distance from the block within which players receive
// a broadcast.
const BroadcastRadius = 16

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the context types and the time and broadcast nodes.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterContextType(ServerContext, ctxtype.TypeOf[Server]())
	worldCtx := r.RegisterContextType(WorldContext, ctxtype.TypeOf[World]())
	serverWorld := r.RegisterContextType(ServerWorldContext, ctxtype.TypeOf[ServerWorld](), worldCtx)
	blockPos := r.RegisterContextType(BlockPosContext, ctxtype.TypeOf[BlockPos]())
	r.RegisterContextType(ClientContext, ctxtype.TypeOf[Client]())
	r.RegisterContextType(ClientWorldContext, ctxtype.TypeOf[ClientWorld](), worldCtx)

	number := r.DataType(core.Number)

	var timeType *node.Type
	timeType = r.RegisterNodeType(TimeNode, func(node.Env) node.Node {
		return &Time{Base: node.NewBase(timeType, worldCtx), number: number, world: worldCtx}
	})

	var broadcastType *node.Type
	broadcastType = r.RegisterNodeType(BroadcastNode, func(node.Env) node.Node {
		return &Broadcast{Base: node.NewBase(broadcastType, serverWorld, blockPos), number: number, world: serverWorld, pos: blockPos}
	})

	r.TagNodeTypes(core.TagDebug, timeType, broadcastType)
	r.RegisterGroup(node.NewTagGroup(core.TagDebug, r.TaggedNodeTypes))
}

// Time reads the world clock.
type Time struct {
	node.Base
	number datatype.Type
	world  ctxtype.Type
}

func (n *Time) Inputs() []node.Connector {
	return nil
}

func (n *Time) Outputs() []node.Connector {
	return []node.Connector{
		node.OptionalOutput(n.number, "gametime", n),
		node.OptionalOutput(n.number, "daytime", n),
		node.OptionalOutput(n.number, "day", n),
	}
}

func (n *Time) Process(_ []datatype.Value, ctx *node.Accessor) node.Result {
	w, ok := node.ContextValue[World](ctx, n.world)
	if !ok {
		return node.Fail("no world available")
	}
	return node.Ok(
		n.number.Value(float64(w.Time())),
		n.number.Value(float64(w.TimeOfDay()%24000)),
		n.number.Value(float64(w.Time())/24000),
	)
}

// Broadcast sends its input to every player near the block.
type Broadcast struct {
	node.Base
	number datatype.Type
	world  ctxtype.Type
	pos    ctxtype.Type
}

func (n *Broadcast) Inputs() []node.Connector {
	return []node.Connector{node.RequiredInput(n.number, "input", n)}
}

func (n *Broadcast) Outputs() []node.Connector {
	return nil
}

func (n *Broadcast) Process(inputs []datatype.Value, ctx *node.Accessor) node.Result {
	w, ok := node.ContextValue[ServerWorld](ctx, n.world)
	if !ok {
		return node.Fail("no server world available")
	}
	pos, ok := node.ContextValue[BlockPos](ctx, n.pos)
	if !ok {
		return node.Fail("no block position available")
	}

	message := fmt.Sprintf("Broadcast: %s", inputs[0])
	for _, p := range w.Players() {
		if pos.SquaredDistance(p.Position()) < BroadcastRadius*BroadcastRadius {
			p.SendMessage(message)
		}
	}
	return node.Ok()
}
