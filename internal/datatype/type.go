package datatype

import (
	"github.com/zclconf/go-cty/cty"
)

// Type is an opaque handle to a data type owned by a Registry. Handles are
// comparable with ==, and equality means identity. The zero Type is invalid.
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

// Color returns the display color (RGB). It carries no evaluation semantics.
func (t Type) Color() uint32 {
	return t.reg.descriptor(t.index).color
}

// Splittable reports whether an output of this type may feed several inputs.
func (t Type) Splittable() bool {
	return t.reg.descriptor(t.index).splittable
}

// Kind returns the cty type describing the values this data type holds.
func (t Type) Kind() cty.Type {
	return t.reg.descriptor(t.index).kind
}

func (t Type) String() string {
	return t.ID()
}
