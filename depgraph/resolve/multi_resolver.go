package resolve

import (
	"log/slog"

	"github.com/LegacyCodeHQ/i18nscan/depgraph/modulemap"
)

// Resolution is the union of every resolver's answers for one file's dependencies.
type Resolution struct {
	// Resolved holds successful resolutions in specifier order, then resolver order.
	Resolved []string
	// Failures holds per-resolver misses. Core-module skips are not recorded.
	Failures []*ResolutionFailure
	// Unresolved lists the specifiers no resolver could map to a file.
	Unresolved []string
}

// MultiResolver asks every platform resolver about every dependency of a file.
type MultiResolver struct {
	resolvers []*Resolver
	moduleMap modulemap.ModuleMap
}

// NewMultiResolver creates a MultiResolver over the given resolver set.
func NewMultiResolver(resolvers []*Resolver, moduleMap modulemap.ModuleMap) *MultiResolver {
	return &MultiResolver{resolvers: resolvers, moduleMap: moduleMap}
}

// MultiResolve resolves each dependency specifier of file with every resolver
// and concatenates the successes. It never fails; a file with no resolvable
// dependencies yields an empty Resolved slice.
func (m *MultiResolver) MultiResolve(file string) Resolution {
	var resolution Resolution

	for _, specifier := range m.moduleMap.Dependencies(file) {
		found, core := false, false
		for _, resolver := range m.resolvers {
			result := resolver.Resolve(file, specifier)
			if result.OK() {
				found = true
				resolution.Resolved = append(resolution.Resolved, result.Path)
				continue
			}
			if result.Failure.Reason == ReasonCoreModule {
				core = true
				continue
			}
			resolution.Failures = append(resolution.Failures, result.Failure)
		}
		if !found && !core {
			resolution.Unresolved = append(resolution.Unresolved, specifier)
		}
	}

	if len(resolution.Unresolved) > 0 {
		slog.Debug("unresolved specifiers",
			"file", file,
			"resolved", len(resolution.Resolved),
			"specifiers", resolution.Unresolved)
	}

	return resolution
}
