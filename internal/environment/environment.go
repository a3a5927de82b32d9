// Package environment defines the immutable policy that restricts which data
// types, contexts and node types a graph may use.
//
// An Environment is validated once, at construction: every node type reachable
// through its groups is instantiated and must only need contexts the
// environment provides and only use data types it allows. Any violation fails
// construction as a whole; node types are never silently dropped.
package environment

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
)

// Environment enumerates the permitted subset of a registry. It implements
// node.Env.
type Environment struct {
	dataTypes []datatype.Type
	contexts  []ctxtype.Type
	groups    []node.Group
}

// New builds and validates an environment. At least one data type must be
// allowed. Every offending node type is reported in the returned error.
func New(dataTypes []datatype.Type, contexts []ctxtype.Type, groups []node.Group) (*Environment, error) {
	if len(dataTypes) == 0 {
		return nil, fmt.Errorf("at least one data type has to be allowed")
	}
	env := &Environment{
		dataTypes: slices.Clone(dataTypes),
		contexts:  slices.Clone(contexts),
		groups:    slices.Clone(groups),
	}

	var result *multierror.Error
	for _, t := range env.NodeTypes() {
		if reasons := env.rejections(t); len(reasons) > 0 {
			for _, reason := range reasons {
				result = multierror.Append(result, fmt.Errorf("node type '%s': %s", t.ID(), reason))
			}
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("failed to build graph environment: %w", err)
	}
	return env, nil
}

// rejections lists why node type t cannot live in this environment.
func (e *Environment) rejections(t *node.Type) (reasons []string) {
	defer func() {
		if r := recover(); r != nil {
			reasons = append(reasons, fmt.Sprintf("factory panicked: %v", r))
		}
	}()

	sample := t.New(e)
	if sample == nil {
		return []string{"factory returned nil"}
	}
	if sample.Meta().Type() != t {
		return []string{fmt.Sprintf("factory produced a node of type '%s'", sample.Meta().Type())}
	}
	for _, c := range sample.Meta().Contexts() {
		if !ctxtype.Covers(e.contexts, c) {
			reasons = append(reasons, fmt.Sprintf("requires context '%s' which is not available", c))
		}
	}
	for _, c := range sample.Inputs() {
		if !e.IsAllowedDataType(c.Type) {
			reasons = append(reasons, fmt.Sprintf("input '%s' has type '%s' which is not allowed", c.Name, c.Type))
		}
	}
	for _, c := range sample.Outputs() {
		if !e.IsAllowedDataType(c.Type) {
			reasons = append(reasons, fmt.Sprintf("output '%s' has type '%s' which is not allowed", c.Name, c.Type))
		}
	}
	return reasons
}

// IsAllowedNodeType reports whether t belongs to one of the groups.
func (e *Environment) IsAllowedNodeType(t *node.Type) bool {
	for _, g := range e.groups {
		if slices.Contains(g.NodeTypes(), t) {
			return true
		}
	}
	return false
}

// IsAllowedDataType reports whether t is one of the allowed data types.
func (e *Environment) IsAllowedDataType(t datatype.Type) bool {
	return slices.Contains(e.dataTypes, t)
}

// AllowedDataTypes returns the allowed data types in declaration order.
func (e *Environment) AllowedDataTypes() []datatype.Type {
	return slices.Clone(e.dataTypes)
}

// AvailableContexts returns the context types the host promises to supply.
func (e *Environment) AvailableContexts() []ctxtype.Type {
	return slices.Clone(e.contexts)
}

func (e *Environment) Groups() []node.Group {
	return slices.Clone(e.groups)
}

// NodeTypes returns the union of all group members, without duplicates, in
// group order.
func (e *Environment) NodeTypes() []*node.Type {
	var types []*node.Type
	for _, g := range e.groups {
		for _, t := range g.NodeTypes() {
			if !slices.Contains(types, t) {
				types = append(types, t)
			}
		}
	}
	return types
}
