// Package node defines the unit of computation of a graph: the Node contract,
// its typed Connectors, the NodeType factory that creates it, and the
// supporting metadata (tags, groups) used to organise node types.
//
// A node's connectors are recomputed on every call to Inputs or Outputs.
// Callers must not hold on to them across configuration changes, but may rely
// on them being stable for the duration of one evaluation pass.
package node
