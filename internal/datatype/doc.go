// Package datatype holds the registry of value types that tag every port and
// every value flowing through a graph.
//
// A data type is identified by the handle returned from Registry.Register, not
// by its name: two types registered under different ids are never equal, even
// if every other attribute matches. Each type carries a cty kind describing the
// Go values it may hold (cty.Number for float64, cty.Bool for bool, cty.String
// for string), which is used to reject mistyped values at construction time.
//
// A splittable type allows an output port to feed several inputs at once.
package datatype
