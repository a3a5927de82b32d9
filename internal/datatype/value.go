package datatype

import (
	"fmt"
	"math"
	"strconv"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Value is a Go value tagged with the data type it travels as.
type Value struct {
	typ Type
	raw any
}

// Value wraps v as a value of type t. It panics if the Go type of v does not
// match the type's cty kind, e.g. a string passed to a number type.
func (t Type) Value(v any) Value {
	implied, err := gocty.ImpliedType(v)
	if err != nil {
		panic(fmt.Sprintf("datatype: cannot use %T as a value of '%s': %v", v, t, err))
	}
	if !implied.Equals(t.Kind()) {
		panic(fmt.Sprintf("datatype: cannot use %T (%s) as a value of '%s' (%s)", v, implied.FriendlyName(), t, t.Kind().FriendlyName()))
	}
	return Value{typ: t, raw: v}
}

// IsValid reports whether the value was produced by a data type. The zero
// Value stands for an absent optional input.
func (v Value) IsValid() bool {
	return v.typ.IsValid()
}

// Type returns the data type the value travels as.
func (v Value) Type() Type {
	return v.typ
}

// Raw returns the underlying Go value.
func (v Value) Raw() any {
	return v.raw
}

// Cty converts the value to its cty representation. NaN has no cty
// representation and yields an error.
func (v Value) Cty() (cty.Value, error) {
	if f, ok := v.raw.(float64); ok {
		switch {
		case math.IsNaN(f):
			return cty.NilVal, fmt.Errorf("value of '%s' is NaN, which cty cannot represent", v.typ)
		case math.IsInf(f, 1):
			return cty.PositiveInfinity, nil
		case math.IsInf(f, -1):
			return cty.NegativeInfinity, nil
		}
	}
	return gocty.ToCtyValue(v.raw, v.typ.Kind())
}

func (v Value) String() string {
	if f, ok := v.raw.(float64); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprint(v.raw)
}

// As extracts the Go value of v, asserting that it travels as want. Asking
// for the wrong data type panics.
func As[T any](v Value, want Type) T {
	if v.typ != want {
		panic(fmt.Sprintf("datatype: tried to read a '%s' value as '%s'", v.typ, want))
	}
	out, ok := v.raw.(T)
	if !ok {
		panic(fmt.Sprintf("datatype: value of '%s' holds %T, not the requested Go type", want, v.raw))
	}
	return out
}
