// Package collector runs the whole pipeline: index the root directory, walk
// every platform variant reachable from the entry points, and extract the
// translatable strings from the files reached.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/LegacyCodeHQ/i18nscan/depgraph"
	"github.com/LegacyCodeHQ/i18nscan/depgraph/modulemap"
	"github.com/LegacyCodeHQ/i18nscan/depgraph/resolve"
	"github.com/LegacyCodeHQ/i18nscan/extract"
	"github.com/LegacyCodeHQ/i18nscan/internal/config"
	"github.com/LegacyCodeHQ/i18nscan/source"
)

// EntryPointError reports an entry point that is not an indexed source file.
// It aborts a run before any file is read for extraction.
type EntryPointError struct {
	EntryPoint string
	Path       string
}

func (e *EntryPointError) Error() string {
	return fmt.Sprintf("%s does not exist. Please provide a path to valid file", e.EntryPoint)
}

// Report is the structured result of a run.
type Report struct {
	RootDir            string
	EntryPoints        []string
	PlatformExtensions []string
	ReachableFiles     []string
	Reachability       *depgraph.Reachability
	ErrorFiles         []string
	Failures           []extract.Failure
	StringsFound       []string
	UniqueStrings      []string
}

// ReachableFileCount is the number of files the traversal reached.
func (r *Report) ReachableFileCount() int {
	return len(r.ReachableFiles)
}

type options struct {
	workDir       string
	contentReader source.ContentReader
	fileSystem    resolve.FileSystem
	progress      func(done, total int)
}

// Option customizes a run.
type Option func(*options)

// WithWorkDir resolves relative entry points and root directory against dir instead of the process working directory.
func WithWorkDir(dir string) Option {
	return func(o *options) {
		o.workDir = dir
	}
}

// WithContentReader replaces the reader used for dependency and string extraction.
func WithContentReader(reader source.ContentReader) Option {
	return func(o *options) {
		o.contentReader = reader
	}
}

// WithFileSystem replaces the filesystem used during module resolution.
func WithFileSystem(fs resolve.FileSystem) Option {
	return func(o *options) {
		o.fileSystem = fs
	}
}

// WithProgress registers a callback invoked as extraction settles each file.
func WithProgress(progress func(done, total int)) Option {
	return func(o *options) {
		o.progress = progress
	}
}

// Resolve builds the module map for cfg, validates the entry points and
// walks the import graph. No file content is read for extraction.
func Resolve(ctx context.Context, cfg config.Config, opts ...Option) (*Report, *modulemap.HasteMap, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, nil, err
	}

	root := absolute(o.workDir, cfg.RootDir)
	slog.Info("building module map", "root", root)

	moduleMap, err := modulemap.Build(ctx, modulemap.Options{
		RootDir:       root,
		Extensions:    cfg.Extensions,
		SkipDirs:      cfg.SkipDirs,
		ContentReader: o.contentReader,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build module map: %w", err)
	}
	slog.Info("indexed source files", "root", moduleMap.RootDir(), "files", len(moduleMap.Files()))

	entryPoints := make([]string, 0, len(cfg.EntryPoints))
	for _, entryPoint := range cfg.EntryPoints {
		path := absolute(o.workDir, entryPoint)
		if !moduleMap.Exists(path) {
			return nil, nil, &EntryPointError{EntryPoint: entryPoint, Path: path}
		}
		entryPoints = append(entryPoints, path)
	}

	platformExtensions := resolve.PlatformExtensions(cfg.Platforms, cfg.Extensions)
	slog.Info("resolving dependencies recursively", "extensions", platformExtensions)

	resolvers := resolve.NewResolverSet(platformExtensions, moduleMap, resolve.Config{
		HasCoreModules: cfg.HasCoreModules,
		RootDir:        root,
		RootRelative:   cfg.RootRelativeImports,
	}, o.fileSystem)
	multiResolver := resolve.NewMultiResolver(resolvers, moduleMap)

	reachability := depgraph.Traverse(entryPoints, cfg.Extensions, multiResolver)
	slog.Info("resolved reachable files", "files", len(reachability.Files), "unresolved", reachability.Unresolved)

	return &Report{
		RootDir:            root,
		EntryPoints:        entryPoints,
		PlatformExtensions: platformExtensions,
		ReachableFiles:     reachability.Files,
		Reachability:       reachability,
		ErrorFiles:         []string{},
		StringsFound:       []string{},
		UniqueStrings:      []string{},
	}, moduleMap, nil
}

// Collect runs the full pipeline. An entry point missing from the module map
// is an *EntryPointError; every other per-file problem is recorded in the report.
func Collect(ctx context.Context, cfg config.Config, opts ...Option) (*Report, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	report, _, err := Resolve(ctx, cfg, opts...)
	if err != nil {
		return nil, err
	}

	batch := extract.Batch{
		ExtractorName: cfg.ExtractorFunctionName,
		Concurrency:   cfg.Concurrency,
		ContentReader: o.contentReader,
		Progress:      o.progress,
	}
	extraction, err := batch.Run(ctx, report.ReachableFiles)
	if err != nil {
		return nil, err
	}

	if len(extraction.ErrorFiles) > 0 {
		report.ErrorFiles = extraction.ErrorFiles
	}
	report.Failures = extraction.Failures
	report.StringsFound = extraction.StringsFound
	report.UniqueStrings = extraction.UniqueStrings()

	slog.Info("extracted strings",
		"failed_files", len(report.ErrorFiles),
		"strings", len(report.StringsFound),
		"unique", len(report.UniqueStrings))

	return report, nil
}

func buildOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		o.workDir = wd
	}
	if o.contentReader == nil {
		o.contentReader = source.FilesystemContentReader()
	}
	if o.fileSystem == nil {
		o.fileSystem = resolve.NewOSFileSystem()
	}
	return o, nil
}

func absolute(workDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workDir, path)
}
