package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/vk/nodeflowgo/internal/node"
)

// GroupDecoder rebuilds a group from its serialized form.
type GroupDecoder func(r *Registry, spec node.GroupSpec) (node.Group, error)

// TagNodeTypes adds node types to a tag. A type is added at most once.
func (r *Registry) TagNodeTypes(tag string, types ...*node.Type) {
	for _, t := range types {
		if slices.Contains(r.tags[tag], t) {
			continue
		}
		r.tags[tag] = append(r.tags[tag], t)
	}
}

// TaggedNodeTypes returns the node types carrying tag, in tagging order.
func (r *Registry) TaggedNodeTypes(tag string) []*node.Type {
	return slices.Clone(r.tags[tag])
}

// RegisterGroup adds a group to the set shown by default.
func (r *Registry) RegisterGroup(g node.Group) {
	slog.Debug("Registering node group.", "name", g.Name(), "decoder", g.Spec().Decoder)
	r.groups = append(r.groups, g)
}

// Groups returns the registered groups in registration order.
func (r *Registry) Groups() []node.Group {
	return slices.Clone(r.groups)
}

// RegisterGroupDecoder installs the decoder for groups whose spec names id.
func (r *Registry) RegisterGroupDecoder(id string, decoder GroupDecoder) {
	if _, exists := r.decoders[id]; exists {
		panic(fmt.Sprintf("group decoder '%s' already registered", id))
	}
	r.decoders[id] = decoder
}

// DecodeGroup rebuilds a group with the decoder its spec names.
func (r *Registry) DecodeGroup(spec node.GroupSpec) (node.Group, error) {
	decoder, ok := r.decoders[spec.Decoder]
	if !ok {
		return nil, fmt.Errorf("unknown group decoder '%s'", spec.Decoder)
	}
	return decoder(r, spec)
}

func decodeDirectGroup(r *Registry, spec node.GroupSpec) (node.Group, error) {
	types := make([]*node.Type, 0, len(spec.Members))
	for _, id := range spec.Members {
		t, ok := r.NodeType(id)
		if !ok {
			return nil, fmt.Errorf("group '%s': unknown node type '%s'", spec.Name, id)
		}
		types = append(types, t)
	}
	return node.NewDirectGroup(spec.Name, types...), nil
}

func decodeTagGroup(r *Registry, spec node.GroupSpec) (node.Group, error) {
	if spec.Tag == "" {
		return nil, fmt.Errorf("group '%s': tag group without a tag", spec.Name)
	}
	return node.NewTagGroup(spec.Tag, r.TaggedNodeTypes), nil
}
