package node

import (
	"slices"

	"github.com/google/uuid"
	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/datatype"
)

// Node is the capability every node kind implements. Concrete kinds embed
// Base, which supplies the identity, metadata and a default Validate.
type Node interface {
	// Meta exposes the shared identity and editor metadata of the node.
	Meta() *Base
	// Inputs returns the input connectors in process order.
	Inputs() []Connector
	// Outputs returns the output connectors in result order.
	Outputs() []Connector
	// Validate returns human-readable configuration problems. It must not
	// have side effects.
	Validate() []string
	// Process computes the outputs of the node. inputs is ordered exactly as
	// Inputs; an unconnected optional input arrives as the zero Value.
	Process(inputs []datatype.Value, ctx *Accessor) Result
}

// Base carries the state shared by every node kind. Tag, Nickname and the
// position are editor metadata with no evaluation semantics.
type Base struct {
	id       uuid.UUID
	typ      *Type
	contexts []ctxtype.Type

	Tag Tag
	// Nickname is nil when the user never assigned one.
	Nickname *string
	X, Y     int
}

// NewBase creates the base of a node of type t requiring the given contexts.
// The node receives a fresh random id.
func NewBase(t *Type, contexts ...ctxtype.Type) Base {
	return Base{
		id:       uuid.New(),
		typ:      t,
		contexts: slices.Clone(contexts),
		Tag:      TagWhite,
	}
}

func (b *Base) Meta() *Base {
	return b
}

func (b *Base) ID() uuid.UUID {
	return b.id
}

// SetID overrides the random id, as done when a node is decoded.
func (b *Base) SetID(id uuid.UUID) {
	b.id = id
}

func (b *Base) Type() *Type {
	return b.typ
}

// Contexts returns the context types the node needs during evaluation.
func (b *Base) Contexts() []ctxtype.Type {
	return slices.Clone(b.contexts)
}

// Validate reports no problems. Kinds with configuration override it.
func (b *Base) Validate() []string {
	return nil
}

// Configurable is implemented by nodes that carry type-specific fields which
// must survive serialization.
type Configurable interface {
	// Config returns the node's fields as plain strings.
	Config() map[string]string
	// LoadConfig restores fields produced by Config. Unknown keys are ignored.
	LoadConfig(cfg map[string]string, env Env) error
}

// Linker answers connection queries for a node. It is implemented by the
// graph that owns the node.
type Linker interface {
	// CountConnections returns the number of resolvable connections at c.
	CountConnections(c Connector) int
}

// IsFullyConnected reports whether every required input and every required
// output of n has at least one resolvable connection.
func IsFullyConnected(n Node, l Linker) bool {
	for _, in := range n.Inputs() {
		if !in.Optional && l.CountConnections(in) == 0 {
			return false
		}
	}
	for _, out := range n.Outputs() {
		if !out.Optional && l.CountConnections(out) == 0 {
			return false
		}
	}
	return true
}
