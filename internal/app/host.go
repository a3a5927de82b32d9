package app

import (
	"context"
	"slices"
	"sync"

	"github.com/vk/nodeflowgo/internal/ctxlog"
	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/registry"
	"github.com/vk/nodeflowgo/modules/world"
)

// ConsolePlayer is the name of the player standing at the host position.
const ConsolePlayer = "console"

// Host is a simulated server with a single world. Messages sent to players
// during a pass are held back until the pass is committed.
type Host struct {
	mu        sync.Mutex
	time      int64
	timeOfDay int64
	pos       world.BlockPos
	players   []*Player
	pending   []delivery
}

type delivery struct {
	to      *Player
	message string
}

// Player is a player of the host world. Delivered messages land in its inbox.
type Player struct {
	host  *Host
	name  string
	pos   world.Vec3
	inbox []string
}

// NewHost creates a host world at the given clock with the console player
// standing at the center of pos.
func NewHost(ticks int64, pos world.BlockPos) *Host {
	h := &Host{time: ticks, timeOfDay: ticks, pos: pos}
	h.AddPlayer(ConsolePlayer, pos.Center())
	return h
}

// AddPlayer places a new player in the world.
func (h *Host) AddPlayer(name string, pos world.Vec3) *Player {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := &Player{host: h, name: name, pos: pos}
	h.players = append(h.players, p)
	return p
}

// Player returns the player with the given name.
func (h *Host) Player(name string) (*Player, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range h.players {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

func (h *Host) Time() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.time
}

func (h *Host) TimeOfDay() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.timeOfDay
}

func (h *Host) Players() []world.Player {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]world.Player, len(h.players))
	for i, p := range h.players {
		out[i] = p
	}
	return out
}

func (h *Host) Worlds() []world.ServerWorld {
	return []world.ServerWorld{h}
}

// Tick advances both clocks by one tick.
func (h *Host) Tick() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.time++
	h.timeOfDay++
}

// Values builds the context values this host supplies to a pass.
func (h *Host) Values(r *registry.Registry) *ctxtype.Values {
	return ctxtype.NewBuilder().
		Put(r.ContextType(world.ServerContext), world.Server(h)).
		Put(r.ContextType(world.ServerWorldContext), world.ServerWorld(h)).
		Put(r.ContextType(world.BlockPosContext), h.pos).
		Build()
}

// Commit delivers every held-back message and returns how many there were.
func (h *Host) Commit(ctx context.Context) int {
	h.mu.Lock()
	pending := h.pending
	h.pending = nil
	for _, d := range pending {
		d.to.inbox = append(d.to.inbox, d.message)
	}
	h.mu.Unlock()

	logger := ctxlog.FromContext(ctx)
	for _, d := range pending {
		logger.Info("💬 Message delivered", "player", d.to.name, "message", d.message)
	}
	return len(pending)
}

// Discard drops every held-back message and returns how many there were.
func (h *Host) Discard() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.pending)
	h.pending = nil
	return n
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Position() world.Vec3 {
	return p.pos
}

func (p *Player) SendMessage(message string) {
	p.host.mu.Lock()
	defer p.host.mu.Unlock()
	p.host.pending = append(p.host.pending, delivery{to: p, message: message})
}

// Inbox returns the messages delivered so far.
func (p *Player) Inbox() []string {
	p.host.mu.Lock()
	defer p.host.mu.Unlock()
	return slices.Clone(p.inbox)
}
