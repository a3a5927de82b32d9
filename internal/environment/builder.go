package environment

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/nodeflowgo/internal/ctxlog"
	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/vk/nodeflowgo/internal/registry"
)

// Builder accumulates the parts of an environment.
type Builder struct {
	dataTypes []datatype.Type
	contexts  []ctxtype.Type
	groups    []node.Group
	misc      []*node.Type
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) AddDataTypes(types ...datatype.Type) *Builder {
	b.dataTypes = append(b.dataTypes, types...)
	return b
}

func (b *Builder) AddContextTypes(types ...ctxtype.Type) *Builder {
	b.contexts = append(b.contexts, types...)
	return b
}

func (b *Builder) AddNodeGroups(groups ...node.Group) *Builder {
	b.groups = append(b.groups, groups...)
	return b
}

// AddNodeTypes allows node types outside of any group. They are collected
// into a "misc" group.
func (b *Builder) AddNodeTypes(types ...*node.Type) *Builder {
	b.misc = append(b.misc, types...)
	return b
}

func (b *Builder) allGroups() []node.Group {
	groups := slices.Clone(b.groups)
	if len(b.misc) > 0 {
		groups = append(groups, node.MiscGroup(b.misc...))
	}
	return groups
}

func (b *Builder) Build() (*Environment, error) {
	return New(b.dataTypes, b.contexts, b.allGroups())
}

// Report describes what the builder holds and which node types would be
// rejected and why. The report is logged at info level and returned.
func (b *Builder) Report(ctx context.Context) string {
	var out strings.Builder
	out.WriteString("Graph environment debug info:\n")

	if len(b.contexts) == 0 {
		out.WriteString("No contexts are available\n")
	} else {
		out.WriteString("Available contexts:\n")
		for _, c := range b.contexts {
			parents := make([]string, 0, len(c.Parents()))
			for _, p := range c.Parents() {
				parents = append(parents, p.ID())
			}
			fmt.Fprintf(&out, " - [id: %s, parents: [%s], type: %s]\n", c, strings.Join(parents, ", "), c.GoType())
		}
	}

	if len(b.dataTypes) == 0 {
		out.WriteString("No data types are allowed\n")
	} else {
		out.WriteString("Allowed data types:\n")
		for _, t := range b.dataTypes {
			fmt.Fprintf(&out, " - [id: %s, splittable: %t]\n", t, t.Splittable())
		}
	}

	probe := &Environment{dataTypes: b.dataTypes, contexts: b.contexts, groups: b.allGroups()}
	types := probe.NodeTypes()
	if len(types) == 0 {
		out.WriteString("No node types are allowed\n")
	} else {
		out.WriteString("Allowed node types:\n")
		for _, t := range types {
			fmt.Fprintf(&out, " - [id: %s]\n", t)
		}
	}

	if len(b.dataTypes) == 0 {
		out.WriteString("\nCouldn't build environment: at least one data type has to be allowed\n")
	} else {
		var rejected []string
		for _, t := range types {
			for _, reason := range probe.rejections(t) {
				rejected = append(rejected, fmt.Sprintf("%s: %s", t, reason))
			}
		}
		if len(rejected) > 0 {
			out.WriteString("\nThe following node types would be rejected:\n")
			for _, r := range rejected {
				fmt.Fprintf(&out, " - %s\n", r)
			}
		}
	}

	report := out.String()
	ctxlog.FromContext(ctx).Info(report)
	return report
}

// FromRegistry builds the environment allowing everything the registry knows:
// every data type, every context type, the registered groups, and a misc group
// for node types no group contains.
func FromRegistry(r *registry.Registry) (*Environment, error) {
	b := NewBuilder().
		AddDataTypes(r.DataTypes().All()...).
		AddContextTypes(r.ContextTypes().All()...).
		AddNodeGroups(r.Groups()...)

	grouped := (&Environment{groups: r.Groups()}).NodeTypes()
	for _, t := range r.NodeTypes() {
		if !slices.Contains(grouped, t) {
			b.AddNodeTypes(t)
		}
	}
	return b.Build()
}
