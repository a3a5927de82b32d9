package environment_test

import "github.com/vk/nodeflowgo/internal/node"

func ids(types []*node.Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.ID()
	}
	return out
}
