package registry

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/zclconf/go-cty/cty"
)

// Module is the interface that all node modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered types, tags, groups and group decoders for
// a single application instance.
type Registry struct {
	dataTypes    *datatype.Registry
	contextTypes *ctxtype.Registry

	nodeTypes map[string]*node.Type
	nodeOrder []*node.Type
	tags      map[string][]*node.Type
	groups    []node.Group
	decoders  map[string]GroupDecoder
}

// New creates and initializes a new Registry instance with the built-in group
// decoders installed.
func New() *Registry {
	r := &Registry{
		dataTypes:    datatype.NewRegistry(),
		contextTypes: ctxtype.NewRegistry(),
		nodeTypes:    make(map[string]*node.Type),
		tags:         make(map[string][]*node.Type),
		decoders:     make(map[string]GroupDecoder),
	}
	r.RegisterGroupDecoder(node.DirectDecoder, decodeDirectGroup)
	r.RegisterGroupDecoder(node.TagDecoder, decodeTagGroup)
	return r
}

// Load registers every module in order.
func (r *Registry) Load(modules ...Module) *Registry {
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

func (r *Registry) DataTypes() *datatype.Registry {
	return r.dataTypes
}

func (r *Registry) ContextTypes() *ctxtype.Registry {
	return r.contextTypes
}

// RegisterDataType registers a data type.
func (r *Registry) RegisterDataType(id string, color uint32, splittable bool, kind cty.Type) datatype.Type {
	slog.Debug("Registering data type.", "id", id, "splittable", splittable)
	return r.dataTypes.Register(id, color, splittable, kind)
}

// RegisterContextType registers a context type carrying values of goType.
func (r *Registry) RegisterContextType(id string, goType reflect.Type, parents ...ctxtype.Type) ctxtype.Type {
	slog.Debug("Registering context type.", "id", id, "goType", goType.String())
	return r.contextTypes.Register(id, goType, parents...)
}

// DataType returns a data type registered by a module loaded earlier. A
// missing type is a module ordering bug and panics.
func (r *Registry) DataType(id string) datatype.Type {
	t, ok := r.dataTypes.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("data type '%s' is not registered", id))
	}
	return t
}

// ContextType returns a context type registered by a module loaded earlier.
func (r *Registry) ContextType(id string) ctxtype.Type {
	t, ok := r.contextTypes.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("context type '%s' is not registered", id))
	}
	return t
}

// RegisterNodeType creates and registers a node type.
func (r *Registry) RegisterNodeType(id string, factory node.Factory) *node.Type {
	if _, exists := r.nodeTypes[id]; exists {
		panic(fmt.Sprintf("node type '%s' already registered", id))
	}
	slog.Debug("Registering node type.", "id", id)
	t := node.NewType(id, factory)
	r.nodeTypes[id] = t
	r.nodeOrder = append(r.nodeOrder, t)
	return t
}

// NodeType resolves a node type by id.
func (r *Registry) NodeType(id string) (*node.Type, bool) {
	t, ok := r.nodeTypes[id]
	return t, ok
}

// NodeTypes returns every node type in registration order.
func (r *Registry) NodeTypes() []*node.Type {
	return append([]*node.Type(nil), r.nodeOrder...)
}
