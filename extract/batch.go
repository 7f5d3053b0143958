package extract

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/LegacyCodeHQ/i18nscan/source"
	"golang.org/x/sync/errgroup"
)

// FailureKind tells why a file produced no strings.
type FailureKind string

const (
	FailureRead  FailureKind = "read"
	FailureParse FailureKind = "parse"
)

// Failure records one file that could not be processed.
type Failure struct {
	File string
	Kind FailureKind
	Err  error
}

func (f Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s failure: %v", f.File, f.Kind, f.Err)
	}
	return fmt.Sprintf("%s: %s failure", f.File, f.Kind)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report aggregates a batch. Strings are ordered by input file order, then
// by position within the file; duplicates are kept.
type Report struct {
	Files        []string
	ErrorFiles   []string
	Failures     []Failure
	StringsFound []string
}

// UniqueStrings returns StringsFound without duplicates, in first-seen order.
func (r *Report) UniqueStrings() []string {
	return Unique(r.StringsFound)
}

// Unique removes duplicate strings, keeping the first occurrence.
func Unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}

// Batch extracts strings from many files with a bounded number of workers.
type Batch struct {
	ExtractorName string
	// Concurrency caps parallel reads and parses. Zero means runtime.NumCPU().
	Concurrency   int
	ContentReader source.ContentReader
	// Progress, when set, is called after each file settles.
	Progress func(done, total int)
}

type fileOutcome struct {
	strings []string
	failure *Failure
}

// Run processes files and waits for every one to settle. Read and parse
// failures are recorded per file; only cancellation of ctx aborts the batch.
func (b Batch) Run(ctx context.Context, files []string) (*Report, error) {
	reader := b.ContentReader
	if reader == nil {
		reader = source.FilesystemContentReader()
	}
	limit := b.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	outcomes := make([]fileOutcome, len(files))
	var progressMu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = b.processFile(gctx, reader, file)

			if b.Progress != nil {
				progressMu.Lock()
				done++
				b.Progress(done, len(files))
				progressMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extraction canceled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction canceled: %w", err)
	}

	report := &Report{Files: append([]string(nil), files...), StringsFound: []string{}}
	for _, outcome := range outcomes {
		if outcome.failure != nil {
			report.ErrorFiles = append(report.ErrorFiles, outcome.failure.File)
			report.Failures = append(report.Failures, *outcome.failure)
			continue
		}
		report.StringsFound = append(report.StringsFound, outcome.strings...)
	}
	return report, nil
}

func (b Batch) processFile(ctx context.Context, reader source.ContentReader, file string) fileOutcome {
	content, err := reader(file)
	if err != nil {
		slog.Debug("failed to read file", "file", file, "error", err)
		return fileOutcome{failure: &Failure{File: file, Kind: FailureRead, Err: err}}
	}

	found, ok := ExtractContext(ctx, b.ExtractorName, content, file)
	if !ok {
		slog.Debug("failed to parse file", "file", file)
		return fileOutcome{failure: &Failure{File: file, Kind: FailureParse}}
	}
	return fileOutcome{strings: found}
}
