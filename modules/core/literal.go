package core

import (
	"fmt"
	"strings"

	"github.com/vk/nodeflowgo/internal/datatype"
	"github.com/vk/nodeflowgo/internal/node"
	"github.com/zclconf/go-cty/cty"
)

// Literal outputs a user-entered number. The text is kept verbatim so that
// the editor can hold invalid input; Validate reports it.
type Literal struct {
	node.Base
	number datatype.Type
	Text   string
}

func (n *Literal) Inputs() []node.Connector {
	return nil
}

func (n *Literal) Outputs() []node.Connector {
	return []node.Connector{node.OptionalOutput(n.number, "value", n)}
}

func (n *Literal) Validate() []string {
	if _, err := parseNumber(n.Text); err != nil {
		return []string{fmt.Sprintf("'%s' is not a valid number", n.Text)}
	}
	return nil
}

func (n *Literal) Process([]datatype.Value, *node.Accessor) node.Result {
	f, err := parseNumber(n.Text)
	if err != nil {
		return node.Failf("'%s' is not a valid number", n.Text)
	}
	return node.Ok(n.number.Value(f))
}

func (n *Literal) Config() map[string]string {
	return map[string]string{"value": n.Text}
}

func (n *Literal) LoadConfig(cfg map[string]string, _ node.Env) error {
	n.Text = cfg["value"]
	return nil
}

func parseNumber(text string) (float64, error) {
	v, err := cty.ParseNumberVal(strings.TrimSpace(text))
	if err != nil {
		return 0, err
	}
	f, _ := v.AsBigFloat().Float64()
	return f, nil
}
