package options

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RawPath is a user-provided file path from CLI flags or arguments.
type RawPath string

// AbsolutePath is a normalized absolute filesystem path.
type AbsolutePath string

func (p AbsolutePath) String() string {
	return string(p)
}

// PathResolver resolves raw user paths relative to a configured base directory.
type PathResolver struct {
	baseDir AbsolutePath
}

func NewPathResolver(baseDir string) (PathResolver, error) {
	if baseDir == "" {
		baseDir = "."
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return PathResolver{}, fmt.Errorf("failed to resolve base path: %w", err)
	}

	return PathResolver{baseDir: AbsolutePath(filepath.Clean(absBaseDir))}, nil
}

// BaseDir returns the absolute directory relative paths are joined to.
func (r PathResolver) BaseDir() string {
	return r.baseDir.String()
}

func (r PathResolver) Resolve(path RawPath) (AbsolutePath, error) {
	pathStr := string(path)
	if pathStr == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if filepath.IsAbs(pathStr) {
		return AbsolutePath(filepath.Clean(pathStr)), nil
	}
	return AbsolutePath(filepath.Clean(filepath.Join(r.baseDir.String(), pathStr))), nil
}

// ResolveAll resolves every path, stopping at the first empty one.
func (r PathResolver) ResolveAll(paths []string) ([]string, error) {
	resolved := make([]string, 0, len(paths))
	for _, path := range paths {
		abs, err := r.Resolve(RawPath(path))
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, abs.String())
	}
	return resolved, nil
}

// IsWithin reports whether targetPath is baseDir or one of its descendants.
func IsWithin(baseDir, targetPath string) (bool, error) {
	rel, err := filepath.Rel(filepath.Clean(baseDir), filepath.Clean(targetPath))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate path %q: %w", targetPath, err)
	}
	if rel == "." {
		return true, nil
	}
	if rel == ".." {
		return false, nil
	}
	if strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false, nil
	}
	return !filepath.IsAbs(rel), nil
}
