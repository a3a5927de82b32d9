package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/nodeflowgo/internal/ctxlog"
	"github.com/vk/nodeflowgo/internal/ctxtype"
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/evalerr"
	"github.com/vk/nodeflowgo/internal/node"
)

// Observer is told about every node that processed successfully, with the
// inputs it received and the outputs it returned.
type Observer func(n node.Node, inputs, outputs []datatype.Value)

// Evaluate runs one pass over the graph with the given context values. It
// returns no errors on success and currently at most one error otherwise.
//
// A node reading a context it did not declare is a bug in that node kind; the
// resulting *node.ContextViolation panic is not recovered.
func (g *Graph) Evaluate(ctx context.Context, values *ctxtype.Values, observers ...Observer) []*evalerr.Error {
	logger := ctxlog.FromContext(ctx)
	nodes := g.Nodes()

	for _, n := range nodes {
		if !g.IsFullyConnected(n) {
			logger.Debug("Node is not fully connected.", "id", n.Meta().ID(), "type", n.Meta().Type().ID())
			return fail(evalerr.New(evalerr.NotConnected))
		}
	}

	for _, n := range nodes {
		if problems := n.Validate(); len(problems) > 0 {
			return fail(evalerr.New(evalerr.InvalidConfig, problems[0]))
		}
	}

	// inputCounts holds the number of connected input ports per node.
	inputCounts := make(map[uuid.UUID]int, len(nodes))
	connectedPorts := make(map[Connection]bool)
	for _, c := range g.connOrder {
		if g.unresolved(c) != "" {
			continue
		}
		port := Connection{TargetNode: c.TargetNode, TargetPort: c.TargetPort}
		if !connectedPorts[port] {
			connectedPorts[port] = true
			inputCounts[c.TargetNode]++
		}
	}

	available := make(map[uuid.UUID]map[string]datatype.Value, len(nodes))
	scheduled := make(map[uuid.UUID]bool, len(nodes))

	var ready []node.Node
	for _, n := range nodes {
		if inputCounts[n.Meta().ID()] == 0 {
			ready = append(ready, n)
			scheduled[n.Meta().ID()] = true
		}
	}

	processed := 0
	for len(ready) > 0 {
		var next []node.Node

		for _, n := range ready {
			meta := n.Meta()

			var missing []string
			for _, c := range meta.Contexts() {
				if !values.Contains(c) {
					missing = append(missing, c.ID())
				}
			}
			if len(missing) > 0 {
				return fail(evalerr.New(evalerr.MissingContexts, missing))
			}

			inputs := n.Inputs()
			args := make([]datatype.Value, len(inputs))
			for i, in := range inputs {
				v, ok := available[meta.ID()][in.Name]
				if !ok {
					continue
				}
				if v.Type() != in.Type {
					return fail(evalerr.New(evalerr.MismatchedConnectionTypes))
				}
				args[i] = v
			}

			result, err := process(ctx, n, args, node.NewAccessor(n, values))
			if err != nil {
				return fail(evalerr.New(evalerr.EvaluationError, err.Error()))
			}
			if result.Failed() {
				return fail(evalerr.New(evalerr.EvaluationError, result.Message()))
			}

			outputs := n.Outputs()
			results := result.Values()
			if len(results) != len(outputs) {
				return fail(evalerr.New(evalerr.UnexpectedOutputCount, len(outputs), len(results)))
			}

			for i, out := range outputs {
				value := results[i]
				if value.Type() != out.Type {
					return fail(evalerr.New(evalerr.UnexpectedOutputType, i, out.Type.ID(), value.Type().ID()))
				}

				for _, c := range g.ConnectionsAt(out) {
					inbox, ok := available[c.TargetNode]
					if !ok {
						inbox = make(map[string]datatype.Value)
						available[c.TargetNode] = inbox
					}
					inbox[c.TargetPort] = value

					if len(inbox) == inputCounts[c.TargetNode] && !scheduled[c.TargetNode] {
						scheduled[c.TargetNode] = true
						next = append(next, g.nodes[c.TargetNode])
					}
				}
			}

			for _, observe := range observers {
				observe(n, args, results)
			}
			logger.Debug("Processed node.", "id", meta.ID(), "type", meta.Type().ID())
			processed++
		}
		ready = next
	}

	if processed != len(nodes) {
		return fail(evalerr.New(evalerr.UnresolvableNodes, processed, len(nodes)))
	}
	return nil
}

// process calls n.Process, turning an unexpected panic into an error. A
// *node.ContextViolation is re-raised.
func process(ctx context.Context, n node.Node, args []datatype.Value, accessor *node.Accessor) (result node.Result, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if violation, ok := r.(*node.ContextViolation); ok {
			panic(violation)
		}
		ctxlog.FromContext(ctx).Warn("Unexpected error while evaluating node.", "id", n.Meta().ID(), "type", n.Meta().Type().ID(), "panic", r)
		if e, ok := r.(error); ok {
			err = e
			return
		}
		err = fmt.Errorf("%v", r)
	}()
	return n.Process(args, accessor), nil
}

func fail(err *evalerr.Error) []*evalerr.Error {
	return []*evalerr.Error{err}
}
