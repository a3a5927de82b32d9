package ctxtype

import (
	"reflect"
	"slices"
)

// Type is an opaque handle to a context type owned by a Registry. The zero
// Type is invalid.
type Type struct {
	reg   *Registry
	index int
}

// IsValid reports whether the handle refers to a registered type.
func (t Type) IsValid() bool {
	return t.reg != nil
}

// ID returns the external identifier the type was registered under.
func (t Type) ID() string {
	if !t.IsValid() {
		return "<invalid>"
	}
	return t.reg.descriptor(t.index).id
}

// GoType returns the Go type of values supplied for this context type.
func (t Type) GoType() reflect.Type {
	return t.reg.descriptor(t.index).goType
}

// Parents returns the directly declared parent types.
func (t Type) Parents() []Type {
	return slices.Clone(t.reg.descriptor(t.index).parents)
}

// Satisfies reports whether a value supplied for t also satisfies want,
// that is whether want is t itself or one of its ancestors.
func (t Type) Satisfies(want Type) bool {
	if t == want {
		return true
	}
	seen := map[Type]bool{t: true}
	stack := t.Parents()
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == want {
			return true
		}
		if seen[current] {
			continue
		}
		seen[current] = true
		stack = append(stack, current.Parents()...)
	}
	return false
}

func (t Type) String() string {
	return t.ID()
}

// Covers reports whether want is satisfied by any of the available types.
func Covers(available []Type, want Type) bool {
	for _, a := range available {
		if a.Satisfies(want) {
			return true
		}
	}
	return false
}
