// Package evalerr defines the closed set of failures an evaluation pass can
// report. Evaluation errors are values returned by the evaluator, never panics.
package evalerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an evaluation failure. New kinds may be added; switches over
// Kind should carry a default case.
type Kind int

const (
	// NotConnected: a required port of some node is unwired.
	NotConnected Kind = iota
	// InvalidConfig: a node's own validation failed. Data: the first message.
	InvalidConfig
	// MismatchedConnectionTypes: a delivered value does not match its input.
	MismatchedConnectionTypes
	// EvaluationError: a node failed or panicked. Data: the message.
	EvaluationError
	// UnexpectedOutputCount: a node returned the wrong number of outputs.
	// Data: expected, actual.
	UnexpectedOutputCount
	// MissingContexts: the host cannot supply a required context. Data: the
	// missing context ids.
	MissingContexts
	// UnexpectedOutputType: a node returned a value of the wrong type.
	// Data: index, expected, actual.
	UnexpectedOutputType
	// UnresolvableNodes: some nodes never received all their inputs, usually
	// because of a cycle. Data: processed, total.
	UnresolvableNodes
)

var kindNames = map[Kind]string{
	NotConnected:              "not_connected",
	InvalidConfig:             "invalid_config",
	MismatchedConnectionTypes: "mismatched_connection_types",
	EvaluationError:           "evaluation_error",
	UnexpectedOutputCount:     "unexpected_output_count",
	MissingContexts:           "missing_contexts",
	UnexpectedOutputType:      "unexpected_output_type",
	UnresolvableNodes:         "unresolvable_nodes",
}

var kindFormats = map[Kind]string{
	NotConnected:              "not all nodes are connected",
	InvalidConfig:             "invalid node configuration: %v",
	MismatchedConnectionTypes: "connected ports have mismatched types",
	EvaluationError:           "node failed to evaluate: %v",
	UnexpectedOutputCount:     "node returned the wrong number of outputs: expected %v, got %v",
	MissingContexts:           "missing contexts: %v",
	UnexpectedOutputType:      "node returned the wrong type for output %v: expected %v, got %v",
	UnresolvableNodes:         "unresolvable nodes, probably a loop: processed %v of %v",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsUserCaused reports whether the failure stems from how the user built the
// graph rather than from a broken node or an incapable host.
func (k Kind) IsUserCaused() bool {
	switch k {
	case NotConnected, InvalidConfig, UnresolvableNodes:
		return true
	default:
		return false
	}
}

// Error is one evaluation failure with its structured data.
type Error struct {
	Kind Kind
	Data []any
}

// New creates an error of kind k.
func New(k Kind, data ...any) *Error {
	return &Error{Kind: k, Data: data}
}

func (e *Error) Error() string {
	format, ok := kindFormats[e.Kind]
	if !ok {
		return fmt.Sprintf("%s %v", e.Kind, e.Data)
	}
	verbs := strings.Count(format, "%v")
	args := make([]any, verbs)
	for i := range args {
		if i < len(e.Data) {
			args[i] = e.Data[i]
		} else {
			args[i] = "?"
		}
	}
	return fmt.Sprintf(format, args...)
}

// Is matches any *Error of the same kind, so errors.Is(err, evalerr.New(k))
// tests the kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// Join flattens a pass result into a single error, or nil when the pass
// succeeded.
func Join(errs []*Error) error {
	if len(errs) == 0 {
		return nil
	}
	wrapped := make([]error, len(errs))
	for i, err := range errs {
		wrapped[i] = err
	}
	return errors.Join(wrapped...)
}
