// Package resolve maps import specifiers to files, one platform-qualified
// extension at a time, and unions the answers across extensions.
package resolve

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/i18nscan/depgraph/javascript"
	"github.com/LegacyCodeHQ/i18nscan/depgraph/modulemap"
)

// Config holds the resolution options shared by every resolver of a run.
type Config struct {
	RecognizedExtensions []string
	HasCoreModules       bool
	RootDir              string
	// RootRelative lets bare specifiers that miss node_modules fall back to
	// RootDir (src/components/Foo). Off unless configured.
	RootRelative bool
}

// Reason classifies why a specifier did not resolve.
type Reason string

const (
	ReasonNotFound   Reason = "module not found"
	ReasonCoreModule Reason = "core module"
	ReasonEmpty      Reason = "empty specifier"
)

// ResolutionFailure reports that one resolver could not map a specifier to a file.
type ResolutionFailure struct {
	From      string
	Specifier string
	Extension string
	Reason    Reason
}

func (e *ResolutionFailure) Error() string {
	return fmt.Sprintf("cannot resolve %q from %s with extension %q: %s", e.Specifier, e.From, e.Extension, e.Reason)
}

// Result is the outcome of one resolution attempt: exactly one of Path or Failure is set.
type Result struct {
	Path    string
	Failure *ResolutionFailure
}

// OK reports whether the attempt produced a path.
func (r Result) OK() bool {
	return r.Failure == nil
}

// Resolver resolves specifiers under a fixed set of extensions.
type Resolver struct {
	config    Config
	moduleMap modulemap.ModuleMap
	fs        FileSystem
}

// NewResolver creates a resolver. The module map is consulted before the filesystem.
func NewResolver(moduleMap modulemap.ModuleMap, config Config, fs FileSystem) *Resolver {
	extensions := make([]string, 0, len(config.RecognizedExtensions))
	for _, ext := range config.RecognizedExtensions {
		extensions = append(extensions, strings.TrimPrefix(ext, "."))
	}
	config.RecognizedExtensions = extensions

	return &Resolver{config: config, moduleMap: moduleMap, fs: fs}
}

// NewResolverSet creates one resolver per platform-qualified extension, each of
// which treats only that extension as resolvable.
func NewResolverSet(platformExtensions []string, moduleMap modulemap.ModuleMap, config Config, fs FileSystem) []*Resolver {
	resolvers := make([]*Resolver, 0, len(platformExtensions))
	for _, ext := range platformExtensions {
		cfg := config
		cfg.RecognizedExtensions = []string{ext}
		resolvers = append(resolvers, NewResolver(moduleMap, cfg, fs))
	}
	return resolvers
}

// Extension returns the label used in diagnostics for this resolver.
func (r *Resolver) Extension() string {
	return strings.Join(r.config.RecognizedExtensions, ",")
}

// Resolve is ResolveModule as a tagged result.
func (r *Resolver) Resolve(from, specifier string) Result {
	path, err := r.ResolveModule(from, specifier)
	if err != nil {
		return Result{Failure: err.(*ResolutionFailure)}
	}
	return Result{Path: path}
}

// ResolveModule resolves specifier as imported from the file at from. Any
// failure is a *ResolutionFailure.
func (r *Resolver) ResolveModule(from, specifier string) (string, error) {
	if specifier == "" {
		return "", r.failure(from, specifier, ReasonEmpty)
	}

	basedir := filepath.Dir(from)

	if javascript.IsRelativeSpecifier(specifier) || filepath.IsAbs(specifier) {
		target := specifier
		if !filepath.IsAbs(target) {
			target = filepath.Join(basedir, specifier)
		}
		if path, ok := r.resolvePath(filepath.Clean(target)); ok {
			return path, nil
		}
		return "", r.failure(from, specifier, ReasonNotFound)
	}

	if r.config.HasCoreModules && javascript.IsCoreModule(specifier) {
		return "", r.failure(from, specifier, ReasonCoreModule)
	}

	for _, dir := range nodeModulesPaths(basedir) {
		if path, ok := r.resolvePath(filepath.Join(dir, specifier)); ok {
			return path, nil
		}
	}

	if r.config.RootRelative && r.config.RootDir != "" {
		if path, ok := r.resolvePath(filepath.Join(r.config.RootDir, specifier)); ok {
			return path, nil
		}
	}

	return "", r.failure(from, specifier, ReasonNotFound)
}

func (r *Resolver) failure(from, specifier string, reason Reason) *ResolutionFailure {
	return &ResolutionFailure{
		From:      from,
		Specifier: specifier,
		Extension: r.Extension(),
		Reason:    reason,
	}
}

// resolvePath tries target as a file, then as a directory.
func (r *Resolver) resolvePath(target string) (string, bool) {
	if path, ok := r.tryFile(target); ok {
		return path, true
	}
	return r.tryDirectory(target)
}

func (r *Resolver) tryFile(name string) (string, bool) {
	if r.isFile(name) {
		return name, true
	}
	for _, ext := range r.config.RecognizedExtensions {
		candidate := name + "." + ext
		if r.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) tryDirectory(dir string) (string, bool) {
	if main := r.packageMain(dir); main != "" {
		mainPath := filepath.Join(dir, main)
		if path, ok := r.tryFile(mainPath); ok {
			return path, true
		}
		if path, ok := r.tryIndex(mainPath); ok {
			return path, true
		}
	}
	return r.tryIndex(dir)
}

func (r *Resolver) tryIndex(dir string) (string, bool) {
	for _, ext := range r.config.RecognizedExtensions {
		candidate := filepath.Join(dir, "index."+ext)
		if r.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (r *Resolver) packageMain(dir string) string {
	pkgPath := filepath.Join(dir, "package.json")
	if !r.fs.IsFile(pkgPath) {
		return ""
	}
	content, err := r.fs.ReadFile(pkgPath)
	if err != nil {
		return ""
	}
	var pkg struct {
		Main string `json:"main"`
	}
	if err := json.Unmarshal(content, &pkg); err != nil {
		return ""
	}
	return pkg.Main
}

func (r *Resolver) isFile(path string) bool {
	if r.moduleMap != nil && r.moduleMap.Exists(path) {
		return true
	}
	return r.fs.IsFile(path)
}

// nodeModulesPaths lists the node_modules directories searched for a bare
// specifier, nearest first.
func nodeModulesPaths(basedir string) []string {
	var paths []string
	dir := basedir
	for {
		if filepath.Base(dir) != "node_modules" {
			paths = append(paths, filepath.Join(dir, "node_modules"))
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return paths
}
