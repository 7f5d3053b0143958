package depgraph

import (
	"errors"
	"fmt"

	graphlib "github.com/dominikbraun/graph"
)

// DependencyGraph maps each reachable file to the reachable files it imports.
type DependencyGraph map[string][]string

// ToGraph converts the adjacency map into a directed graph. Vertices are added
// in the given order so iteration-sensitive consumers (DOT output) stay stable.
func (g DependencyGraph) ToGraph(order []string) (graphlib.Graph[string, string], error) {
	result := graphlib.New(graphlib.StringHash, graphlib.Directed())

	for _, file := range order {
		if err := result.AddVertex(file); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return nil, fmt.Errorf("failed to add vertex %s: %w", file, err)
		}
	}

	for _, file := range order {
		for _, dep := range g[file] {
			if err := result.AddEdge(file, dep); err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("failed to add edge %s -> %s: %w", file, dep, err)
			}
		}
	}

	return result, nil
}
