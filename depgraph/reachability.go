package depgraph

import (
	"log/slog"

	"github.com/LegacyCodeHQ/i18nscan/depgraph/modulemap"
	"github.com/LegacyCodeHQ/i18nscan/depgraph/resolve"
)

// DependencyResolver returns every resolution of a file's dependencies.
type DependencyResolver interface {
	MultiResolve(file string) resolve.Resolution
}

// Reachability is the outcome of one traversal.
type Reachability struct {
	EntryPoints []string
	// Files lists every reachable file in visit order.
	Files []string
	// Graph holds the import edges between reachable files.
	Graph DependencyGraph
	// Unresolved counts import specifiers that no platform extension could
	// resolve, summed over visited files.
	Unresolved int
}

// Contains reports whether file was reached.
func (r *Reachability) Contains(file string) bool {
	_, ok := r.Graph[file]
	return ok
}

// traversal is the worklist state of a single Traverse call.
type traversal struct {
	resolver   DependencyResolver
	extensions map[string]bool
	visited    map[string]bool
	order      []string
	queue      []string
	resolved   map[string][]string
	unresolved int
}

// Traverse walks the import graph breadth-first from entryPoints and returns
// every file reached. Files whose extension (text after the last dot) is not
// in extensions are dropped without being visited. Each visited file is
// passed to resolver exactly once, so cycles terminate.
func Traverse(entryPoints []string, extensions []string, resolver DependencyResolver) *Reachability {
	t := &traversal{
		resolver:   resolver,
		extensions: make(map[string]bool, len(extensions)),
		visited:    make(map[string]bool),
		queue:      append([]string(nil), entryPoints...),
		resolved:   make(map[string][]string),
	}
	for _, ext := range extensions {
		t.extensions[trimDot(ext)] = true
	}

	for len(t.queue) > 0 {
		t.step()
	}

	return &Reachability{
		EntryPoints: append([]string(nil), entryPoints...),
		Files:       t.order,
		Graph:       t.graph(),
		Unresolved:  t.unresolved,
	}
}

// step dequeues one module. Duplicates are dropped here rather than at enqueue time.
func (t *traversal) step() {
	module := t.queue[0]
	t.queue = t.queue[1:]

	if t.visited[module] || !t.extensions[modulemap.Extension(module)] {
		return
	}

	t.visited[module] = true
	t.order = append(t.order, module)

	resolution := t.resolver.MultiResolve(module)
	t.resolved[module] = resolution.Resolved
	t.unresolved += len(resolution.Unresolved)
	t.queue = append(t.queue, resolution.Resolved...)

	slog.Debug("visited module", "file", module, "dependencies", len(resolution.Resolved), "pending", len(t.queue))
}

func (t *traversal) graph() DependencyGraph {
	graph := make(DependencyGraph, len(t.order))
	for _, file := range t.order {
		deps := make([]string, 0, len(t.resolved[file]))
		seen := make(map[string]bool)
		for _, dep := range t.resolved[file] {
			if !t.visited[dep] || seen[dep] {
				continue
			}
			seen[dep] = true
			deps = append(deps, dep)
		}
		graph[file] = deps
	}
	return graph
}

func trimDot(ext string) string {
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
