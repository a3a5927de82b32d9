package node

import (
	"fmt"

	"github.com/vk/nodeflowgo/internal/datatype"
)

// Result is the outcome of Process: either the output values or a
// user-facing failure message.
type Result struct {
	values  []datatype.Value
	message string
	failed  bool
}

// Ok returns a successful result carrying values in output order.
func Ok(values ...datatype.Value) Result {
	return Result{values: values}
}

// Fail returns a failed result.
func Fail(message string) Result {
	return Result{message: message, failed: true}
}

// Failf returns a failed result with a formatted message.
func Failf(format string, args ...any) Result {
	return Fail(fmt.Sprintf(format, args...))
}

func (r Result) Failed() bool {
	return r.failed
}

func (r Result) Values() []datatype.Value {
	return r.values
}

func (r Result) Message() string {
	return r.message
}
