package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/nodeflowgo/internal/ctxlog"
	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
)

// allTypes is the node.Env used to build sample nodes: every data type is allowed.
type allTypes struct{ r *Registry }

func (e allTypes) AllowedDataTypes() []datatype.Type {
	return e.r.dataTypes.All()
}

// SampleEnv returns an environment view allowing every registered data type.
func (r *Registry) SampleEnv() node.Env {
	return allTypes{r: r}
}

// ValidateRegistry performs a strict consistency check of every node type. It
// builds one sample node per type and checks that the node reports the type
// that created it, that its ports use registered data types with unique names
// per direction, and that its contexts are registered.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, t := range r.nodeOrder {
		sample, err := sampleNode(t, allTypes{r: r})
		if err != nil {
			errs = append(errs, fmt.Sprintf("node type '%s': %v", t.ID(), err))
			continue
		}
		if sample.Meta().Type() != t {
			errs = append(errs, fmt.Sprintf("node type '%s': factory produced a node of type '%s'", t.ID(), sample.Meta().Type()))
		}
		for _, c := range sample.Meta().Contexts() {
			if !r.contextTypes.Owns(c) {
				errs = append(errs, fmt.Sprintf("node type '%s': context '%s' is not registered", t.ID(), c))
			}
		}
		errs = append(errs, checkConnectors(t, sample, sample.Inputs(), false, r)...)
		errs = append(errs, checkConnectors(t, sample, sample.Outputs(), true, r)...)

		logger.Debug("Validated node type.", "id", t.ID(), "inputs", len(sample.Inputs()), "outputs", len(sample.Outputs()))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}

func sampleNode(t *node.Type, env node.Env) (n node.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("factory panicked: %v", r)
		}
	}()
	n = t.New(env)
	if n == nil {
		return nil, fmt.Errorf("factory returned nil")
	}
	return n, nil
}

func checkConnectors(t *node.Type, sample node.Node, connectors []node.Connector, output bool, r *Registry) []string {
	var errs []string
	seen := make(map[string]bool, len(connectors))
	for _, c := range connectors {
		switch {
		case c.Name == "":
			errs = append(errs, fmt.Sprintf("node type '%s': connector without a name", t.ID()))
		case seen[c.Name]:
			errs = append(errs, fmt.Sprintf("node type '%s': duplicate connector '%s'", t.ID(), c.Name))
		}
		seen[c.Name] = true

		if c.Output != output {
			errs = append(errs, fmt.Sprintf("node type '%s': connector '%s' is listed with the wrong direction", t.ID(), c.Name))
		}
		if c.Parent != sample {
			errs = append(errs, fmt.Sprintf("node type '%s': connector '%s' does not belong to the node", t.ID(), c.Name))
		}
		if !r.dataTypes.Owns(c.Type) {
			errs = append(errs, fmt.Sprintf("node type '%s': connector '%s' uses an unregistered data type", t.ID(), c.Name))
		}
	}
	return errs
}
