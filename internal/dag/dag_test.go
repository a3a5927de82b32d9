package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, ids []string, edges [][2]string) *Graph {
	t.Helper()
	g := New()
	for _, id := range ids {
		g.AddNode(id)
	}
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func TestAddEdge(t *testing.T) {
	g := build(t, []string{"constant", "add"}, [][2]string{{"constant", "add"}})

	dependents, err := g.Dependents("constant")
	require.NoError(t, err)
	assert.Equal(t, []string{"add"}, dependents)

	g.AddNode("constant")
	dependents, _ = g.Dependents("constant")
	assert.Len(t, dependents, 1, "re-adding a node keeps its edges")

	assert.ErrorContains(t, g.AddEdge("missing", "add"), "source node not found")
	assert.ErrorContains(t, g.AddEdge("add", "missing"), "destination node not found")
	assert.ErrorContains(t, g.AddEdge("add", "add"), "self-referential edge")

	_, err = g.Dependents("missing")
	assert.Error(t, err)
}

func TestDetectCycles(t *testing.T) {
	testCases := []struct {
		name      string
		ids       []string
		edges     [][2]string
		wantCycle bool
	}{
		{"empty", nil, nil, false},
		{"no edges", []string{"a", "b"}, nil, false},
		{"diamond", []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, false},
		{"two nodes feeding each other", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}, true},
		{"long loop", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, true},
		{"loop in a disjoint component", []string{"a", "b", "x", "y"}, [][2]string{{"a", "b"}, {"x", "y"}, {"y", "x"}}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := build(t, tc.ids, tc.edges).DetectCycles()
			if tc.wantCycle {
				assert.ErrorContains(t, err, "cycle detected")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
