package depgraph

import (
	"testing"

	graphlib "github.com/dominikbraun/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyGraph_ToGraph(t *testing.T) {
	graph := DependencyGraph{
		"/app/a.js": {"/app/b.js"},
		"/app/b.js": {"/app/a.js"},
	}

	g, err := graph.ToGraph([]string{"/app/a.js", "/app/b.js"})
	require.NoError(t, err)

	order, err := g.Order()
	require.NoError(t, err)
	assert.Equal(t, 2, order)

	size, err := g.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}

func TestDependencyGraph_ToGraphKeepsEdgeDirection(t *testing.T) {
	graph := DependencyGraph{
		"/app/index.js": {"/app/Home.js", "/app/Home.js"},
		"/app/Home.js":  nil,
	}

	g, err := graph.ToGraph([]string{"/app/index.js", "/app/Home.js"})
	require.NoError(t, err)

	_, err = g.Edge("/app/index.js", "/app/Home.js")
	assert.NoError(t, err)
	_, err = g.Edge("/app/Home.js", "/app/index.js")
	assert.ErrorIs(t, err, graphlib.ErrEdgeNotFound)
}
