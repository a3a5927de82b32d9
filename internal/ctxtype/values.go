package ctxtype

import (
	"fmt"
	"reflect"
)

// Values is the set of context values the host supplies for one evaluation.
// It is immutable once built.
type Values struct {
	order   []Type
	entries map[Type]any
}

// Empty returns a context with no values.
func Empty() *Values {
	return &Values{entries: map[Type]any{}}
}

// Contains reports whether a value for want, or for a descendant of want, is
// present.
func (v *Values) Contains(want Type) bool {
	_, ok := v.Get(want)
	return ok
}

// Get returns the value supplied for want. An exact match wins; otherwise the
// first supplied type (in insertion order) that satisfies want is used.
func (v *Values) Get(want Type) (any, bool) {
	if v == nil {
		return nil, false
	}
	if value, ok := v.entries[want]; ok {
		return value, true
	}
	for _, supplied := range v.order {
		if supplied.Satisfies(want) {
			return v.entries[supplied], true
		}
	}
	return nil, false
}

// Types returns the supplied context types in insertion order.
func (v *Values) Types() []Type {
	if v == nil {
		return nil
	}
	return append([]Type(nil), v.order...)
}

// Builder accumulates context values.
type Builder struct {
	order   []Type
	entries map[Type]any
}

// NewBuilder starts an empty context.
func NewBuilder() *Builder {
	return &Builder{entries: map[Type]any{}}
}

// Put records value for t. The value must be assignable to the type's Go type;
// anything else is a programming error and panics.
func (b *Builder) Put(t Type, value any) *Builder {
	if !t.IsValid() {
		panic("ctxtype: cannot put a value for an invalid context type")
	}
	if value == nil || !reflect.TypeOf(value).AssignableTo(t.GoType()) {
		panic(fmt.Sprintf("ctxtype: %T is not a valid value for context type '%s' (%s)", value, t, t.GoType()))
	}
	if _, exists := b.entries[t]; !exists {
		b.order = append(b.order, t)
	}
	b.entries[t] = value
	return b
}

// PutAll copies every value of other into the builder.
func (b *Builder) PutAll(other *Values) *Builder {
	for _, t := range other.Types() {
		b.Put(t, other.entries[t])
	}
	return b
}

// Build freezes the builder into a Values.
func (b *Builder) Build() *Values {
	entries := make(map[Type]any, len(b.entries))
	for k, v := range b.entries {
		entries[k] = v
	}
	return &Values{order: append([]Type(nil), b.order...), entries: entries}
}
