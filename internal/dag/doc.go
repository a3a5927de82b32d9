// Package dag provides a minimal directed graph over string ids with cycle
// detection. The graph package uses it to reject connections that would make
// a node depend on its own output.
package dag
