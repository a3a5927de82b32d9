// Package ctxtype holds the registry of context types: named capabilities
// (a world, a server world, a block position) that the host supplies at
// evaluation time and that nodes declare they need.
//
// Context types form a hierarchy. A context type may name parents, and a value
// supplied for a child type also satisfies every ancestor, so a node asking
// for a generic world can run where the host provides a server world. Lookups
// walk the ancestor graph of the supplied types; there is no inheritance
// between the Go values themselves beyond ordinary assignability.
package ctxtype
