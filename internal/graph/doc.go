// Package graph owns the node and connection sets of one editing session and
// evaluates them.
//
// # Model
//
// A Graph holds nodes keyed by id, in insertion order, and a set of
// Connections. A Connection names its endpoints by (node id, port name) rather
// than by live reference, so it survives serialization. Every lookup joins
// through the ids to the node's current connectors; a connection whose port no
// longer exists simply does not resolve.
//
// Connections are stored canonically: the target is always an input and the
// source always an output.
//
// # Mutation
//
// The mutation API (AddNode, RemoveNode, AddConnection, RemoveConnections,
// CleanConnections) keeps the graph consistent when a node is removed, but it
// does not enforce splittability or acyclicity. Those rules belong to the
// editor layer, which reports them as user-facing errors; Link implements them.
// Prune re-checks every connection after direct mutation.
//
// # Evaluation
//
// Evaluate runs a single-threaded topological pass over the graph:
//
//  1. every node must be fully connected (NotConnected);
//  2. every node must validate (InvalidConfig, first message only);
//  3. nodes whose connected inputs are all available run in frontier order,
//     each checked for contexts, input types, output count and output types;
//  4. nodes that never became ready are reported as UnresolvableNodes.
//
// The pass stops at the first error. Side effects of nodes that already ran
// are not rolled back; a host that cares must defer applying them until a
// pass succeeds.
//
// # Documents
//
// Encode and Decode convert a graph to and from an HCL document with "node"
// and "connection" blocks. Decoding drops unknown node types, connections to
// missing nodes and connections to missing ports with a log line, so older
// documents stay loadable.
package graph
