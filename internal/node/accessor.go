package node

import (
	"fmt"

	"github.com/vk/nodeflowgo/internal/ctxtype"
)

// ContextViolation is the panic value raised when a node reads a context it did
// not declare. It signals a bug in the node kind, not a user error.
type ContextViolation struct {
	NodeType string
	Context  string
}

func (e *ContextViolation) Error() string {
	return fmt.Sprintf("node type '%s' accessed context '%s' without declaring it", e.NodeType, e.Context)
}

// Accessor gives a node read access to the contexts it declared.
type Accessor struct {
	node   Node
	values *ctxtype.Values
}

// NewAccessor scopes values to the contexts declared by n.
func NewAccessor(n Node, values *ctxtype.Values) *Accessor {
	return &Accessor{node: n, values: values}
}

// Get returns the value supplied for t. Reading an undeclared context panics
// with a *ContextViolation.
func (a *Accessor) Get(t ctxtype.Type) (any, bool) {
	if !ctxtype.Covers(a.node.Meta().Contexts(), t) {
		panic(&ContextViolation{NodeType: a.node.Meta().Type().ID(), Context: t.ID()})
	}
	return a.values.Get(t)
}

// ContextValue reads the value of a declared context as T. A missing value or
// a value of another Go type yields ok == false.
func ContextValue[T any](a *Accessor, t ctxtype.Type) (T, bool) {
	var zero T
	raw, ok := a.Get(t)
	if !ok {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
