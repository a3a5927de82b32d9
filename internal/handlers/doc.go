// Package handlers provides the generic node kinds that wrap plain Go
// functions: constants, unary operations and binary operations. Modules use
// the Register helpers to turn a function into a node type.
package handlers
