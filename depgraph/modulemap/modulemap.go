// Package modulemap indexes the source files under a root directory and
// exposes the raw dependency specifiers each indexed file declares.
package modulemap

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/i18nscan/depgraph/javascript"
	"github.com/LegacyCodeHQ/i18nscan/source"
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 4096

// DefaultSkipDirs are directory names never descended into while indexing.
var DefaultSkipDirs = []string{
	".git",
	"node_modules",
	"build",
	"dist",
	".expo",
	".next",
	"Pods",
	".gradle",
	".idea",
	".vscode",
	"__pycache__",
}

// ModuleMap is the queryable file index a traversal runs against.
type ModuleMap interface {
	// Exists reports whether the absolute path is an indexed source file.
	Exists(path string) bool
	// Dependencies returns the raw, deduplicated import specifiers declared by path.
	Dependencies(path string) []string
}

var (
	_ ModuleMap = (*HasteMap)(nil)
	_ ModuleMap = Static(nil)
)

// Options configures Build.
type Options struct {
	RootDir       string
	Extensions    []string
	SkipDirs      []string
	ContentReader source.ContentReader
	CacheSize     int
}

// HasteMap is the filesystem-backed ModuleMap. Beyond the ModuleMap queries it
// knows its root directory and the full list of indexed files.
type HasteMap struct {
	rootDir       string
	files         []string
	index         map[string]bool
	contentReader source.ContentReader
	dependencies  *lru.Cache[string, []string]
}

// Build walks opts.RootDir and indexes every file whose extension (the text
// after the last dot) is one of opts.Extensions.
func Build(ctx context.Context, opts Options) (*HasteMap, error) {
	rootDir, err := filepath.Abs(opts.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory %s: %w", opts.RootDir, err)
	}

	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", rootDir)
	}

	skipDirs := opts.SkipDirs
	if skipDirs == nil {
		skipDirs = DefaultSkipDirs
	}
	skipped := make(map[string]bool, len(skipDirs))
	for _, dir := range skipDirs {
		skipped[dir] = true
	}

	extensions := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extensions[strings.TrimPrefix(ext, ".")] = true
	}

	var files []string
	err = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != rootDir && skipped[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if extensions[Extension(path)] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to index %s: %w", rootDir, err)
	}

	return New(rootDir, files, opts.ContentReader, opts.CacheSize)
}

// New creates a HasteMap over an explicit list of absolute file paths.
func New(rootDir string, files []string, contentReader source.ContentReader, cacheSize int) (*HasteMap, error) {
	if contentReader == nil {
		contentReader = source.FilesystemContentReader()
	}
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}

	cache, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create dependency cache: %w", err)
	}

	index := make(map[string]bool, len(files))
	ordered := make([]string, 0, len(files))
	for _, file := range files {
		if index[file] {
			continue
		}
		index[file] = true
		ordered = append(ordered, file)
	}

	slog.Debug("module map built", "root", rootDir, "files", len(ordered))

	return &HasteMap{
		rootDir:       rootDir,
		files:         ordered,
		index:         index,
		contentReader: contentReader,
		dependencies:  cache,
	}, nil
}

// RootDir returns the absolute directory the map was built over.
func (m *HasteMap) RootDir() string {
	return m.rootDir
}

// Files returns every indexed file in walk order.
func (m *HasteMap) Files() []string {
	return append([]string(nil), m.files...)
}

func (m *HasteMap) Exists(path string) bool {
	return m.index[path]
}

// Dependencies parses path on first use and caches the specifier list.
// Files outside the index, unreadable files and unparseable files declare no dependencies.
func (m *HasteMap) Dependencies(path string) []string {
	if !m.index[path] {
		return nil
	}
	if deps, ok := m.dependencies.Get(path); ok {
		return deps
	}

	content, err := m.contentReader(path)
	if err != nil {
		slog.Debug("failed to read file for dependency extraction", "file", path, "error", err)
		return nil
	}

	imports, err := javascript.ParseImports(content, javascript.DialectForPath(path))
	if err != nil {
		slog.Debug("failed to extract dependencies", "file", path, "error", err)
		return nil
	}

	deps := javascript.Specifiers(imports)
	m.dependencies.Add(path, deps)
	return deps
}

// Invalidate drops any cached dependency list for path.
func (m *HasteMap) Invalidate(path string) {
	m.dependencies.Remove(path)
}

// Extension returns the text after the last dot of the file name, or the
// whole base name when there is no dot.
func Extension(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndex(base, "."); i >= 0 {
		return base[i+1:]
	}
	return base
}

// Static is a fixed in-memory ModuleMap from file path to dependency specifiers.
type Static map[string][]string

func (s Static) Exists(path string) bool {
	_, ok := s[path]
	return ok
}

func (s Static) Dependencies(path string) []string {
	return s[path]
}
