package files

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/i18nscan/cmd/options"
	"github.com/LegacyCodeHQ/i18nscan/collector"
	"github.com/LegacyCodeHQ/i18nscan/depgraph"
	"github.com/dominikbraun/graph/draw"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatDOT  = "dot"
)

type filesOptions struct {
	outputFormat string
	absolute     bool
	scanFlags    *options.ScanFlags
}

type fileEntry struct {
	Path    string   `json:"path"`
	Imports []string `json:"imports"`
}

// Cmd represents the files command.
var Cmd = NewCommand()

// NewCommand returns a new files command instance.
func NewCommand() *cobra.Command {
	opts := &filesOptions{
		outputFormat: formatText,
	}

	cmd := &cobra.Command{
		Use:   "files [entry-point...]",
		Short: "List every file reachable from the entry points",
		Long: `List every file reachable from the entry points in visit order, without
extracting strings. The dot format renders the import graph for Graphviz.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(
		&opts.outputFormat,
		"format",
		"f",
		opts.outputFormat,
		fmt.Sprintf("Output format (%s)", strings.Join([]string{formatText, formatJSON, formatDOT}, ", ")))
	cmd.Flags().BoolVarP(&opts.absolute, "absolute", "a", false, "Print absolute paths instead of paths relative to the root directory")
	opts.scanFlags = options.AddScanFlags(cmd)

	return cmd
}

func runFiles(cmd *cobra.Command, opts *filesOptions, args []string) error {
	switch opts.outputFormat {
	case formatText, formatJSON, formatDOT:
	default:
		return fmt.Errorf("unknown format: %s (valid options: %s, %s, %s)", opts.outputFormat, formatText, formatJSON, formatDOT)
	}

	cfg, err := opts.scanFlags.Load(cmd, args)
	if err != nil {
		return err
	}

	report, _, err := collector.Resolve(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	display := func(path string) string {
		if opts.absolute {
			return path
		}
		rel, err := filepath.Rel(report.RootDir, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			return path
		}
		return rel
	}

	var output string
	switch opts.outputFormat {
	case formatJSON:
		output, err = formatJSONFiles(report, display)
	case formatDOT:
		output, err = formatDOTFiles(report, display)
	default:
		output = formatTextFiles(report, display)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}

func formatTextFiles(report *collector.Report, display func(string) string) string {
	lines := make([]string, 0, len(report.ReachableFiles))
	for _, file := range report.ReachableFiles {
		lines = append(lines, display(file))
	}
	return strings.Join(lines, "\n")
}

func formatJSONFiles(report *collector.Report, display func(string) string) (string, error) {
	entries := make([]fileEntry, 0, len(report.ReachableFiles))
	for _, file := range report.ReachableFiles {
		imports := make([]string, 0, len(report.Reachability.Graph[file]))
		for _, dep := range report.Reachability.Graph[file] {
			imports = append(imports, display(dep))
		}
		entries = append(entries, fileEntry{Path: display(file), Imports: imports})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formatDOTFiles(report *collector.Report, display func(string) string) (string, error) {
	graph := make(depgraph.DependencyGraph, len(report.ReachableFiles))
	order := make([]string, 0, len(report.ReachableFiles))
	for _, file := range report.ReachableFiles {
		order = append(order, display(file))
		for _, dep := range report.Reachability.Graph[file] {
			graph[display(file)] = append(graph[display(file)], display(dep))
		}
	}

	g, err := graph.ToGraph(order)
	if err != nil {
		return "", fmt.Errorf("failed to build graph: %w", err)
	}

	var buf bytes.Buffer
	if err := draw.DOT(g, &buf, draw.GraphAttribute("rankdir", "LR")); err != nil {
		return "", fmt.Errorf("failed to render DOT: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
