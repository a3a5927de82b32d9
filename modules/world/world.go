package world

import "fmt"

// World is read access to a game world's clock.
type World interface {
	// Time is the total number of ticks the world has run.
	Time() int64
	// TimeOfDay is the day clock in ticks. It may be adjusted independently
	// of Time.
	TimeOfDay() int64
}

// ServerWorld is a world owned by the server, with players in it.
type ServerWorld interface {
	World
	Players() []Player
}

// ClientWorld is the world a client renders.
type ClientWorld interface {
	World
	LocalPlayer() Player
}

// Server is the host game server.
type Server interface {
	Worlds() []ServerWorld
}

// Client is the host game client.
type Client interface {
	World() ClientWorld
}

// Player is someone messages can be sent to.
type Player interface {
	Name() string
	Position() Vec3
	SendMessage(message string)
}

// Vec3 is a position in world space.
type Vec3 struct {
	X, Y, Z float64
}

// BlockPos is the integer position of a block.
type BlockPos struct {
	X, Y, Z int
}

// Center returns the middle of the block.
func (p BlockPos) Center() Vec3 {
	return Vec3{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5, Z: float64(p.Z) + 0.5}
}

// SquaredDistance returns the squared distance between the block center and v.
func (p BlockPos) SquaredDistance(v Vec3) float64 {
	c := p.Center()
	dx, dy, dz := c.X-v.X, c.Y-v.Y, c.Z-v.Z
	return dx*dx + dy*dy + dz*dz
}

func (p BlockPos) String() string {
	return fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)
}

// ParseBlockPos parses the "x,y,z" form produced by String.
func ParseBlockPos(s string) (BlockPos, error) {
	var p BlockPos
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &p.X, &p.Y, &p.Z); err != nil {
		return BlockPos{}, fmt.Errorf("invalid block position '%s': expected x,y,z", s)
	}
	return p, nil
}
