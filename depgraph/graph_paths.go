package depgraph

import (
	"errors"
	"fmt"

	graphlib "github.com/dominikbraun/graph"
)

// ErrNotReachable is returned when no entry point imports the target, directly or transitively.
var ErrNotReachable = errors.New("file is not reachable from any entry point")

// ImportChain returns the shortest chain of imports from one of the entry
// points to target, entry point first. When several entry points reach the
// target, the shortest chain wins and ties go to the earlier entry point.
func ImportChain(reachability *Reachability, target string) ([]string, error) {
	if !reachability.Contains(target) {
		return nil, fmt.Errorf("%s: %w", target, ErrNotReachable)
	}

	g, err := reachability.Graph.ToGraph(reachability.Files)
	if err != nil {
		return nil, err
	}

	var best []string
	for _, entry := range reachability.EntryPoints {
		if !reachability.Contains(entry) {
			continue
		}
		if entry == target {
			return []string{entry}, nil
		}

		path, err := graphlib.ShortestPath(g, entry, target)
		if errors.Is(err, graphlib.ErrTargetNotReachable) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to find import chain from %s: %w", entry, err)
		}
		if best == nil || len(path) < len(best) {
			best = path
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%s: %w", target, ErrNotReachable)
	}
	return best, nil
}
