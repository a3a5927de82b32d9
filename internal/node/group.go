package node

import "slices"

// Decoder ids of the built-in group kinds.
const (
	DirectDecoder = "direct"
	TagDecoder    = "tag"
)

// GroupSpec is the serializable form of a group. Which fields are meaningful
// depends on the decoder.
type GroupSpec struct {
	Decoder string
	Name    string
	Members []string
	Tag     string
}

// Group is a named collection of node types shown together in the editor. A
// node type may belong to several groups.
type Group interface {
	Name() string
	// NodeTypes returns the current members of the group.
	NodeTypes() []*Type
	// Spec describes the group so a matching decoder can rebuild it.
	Spec() GroupSpec
}

// DirectGroup lists its node types explicitly.
type DirectGroup struct {
	name  string
	types []*Type
}

func NewDirectGroup(name string, types ...*Type) *DirectGroup {
	return &DirectGroup{name: name, types: slices.Clone(types)}
}

// MiscGroup holds node types added to an environment without a group.
func MiscGroup(types ...*Type) *DirectGroup {
	return NewDirectGroup("misc", types...)
}

func (g *DirectGroup) Name() string {
	return g.name
}

func (g *DirectGroup) NodeTypes() []*Type {
	return slices.Clone(g.types)
}

func (g *DirectGroup) Spec() GroupSpec {
	members := make([]string, len(g.types))
	for i, t := range g.types {
		members[i] = t.ID()
	}
	return GroupSpec{Decoder: DirectDecoder, Name: g.name, Members: members}
}

// TagGroup contains every node type carrying a registry tag. Membership is
// resolved on each call, so types tagged later are picked up.
type TagGroup struct {
	tag     string
	resolve func(tag string) []*Type
}

func NewTagGroup(tag string, resolve func(tag string) []*Type) *TagGroup {
	return &TagGroup{tag: tag, resolve: resolve}
}

func (g *TagGroup) Name() string {
	return g.tag
}

func (g *TagGroup) Tag() string {
	return g.tag
}

func (g *TagGroup) NodeTypes() []*Type {
	return g.resolve(g.tag)
}

func (g *TagGroup) Spec() GroupSpec {
	return GroupSpec{Decoder: TagDecoder, Name: g.tag, Tag: g.tag}
}
