package why

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/i18nscan/cmd/options"
	"github.com/LegacyCodeHQ/i18nscan/collector"
	"github.com/LegacyCodeHQ/i18nscan/depgraph"
	graphlib "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatDOT  = "dot"
)

type whyOptions struct {
	outputFormat string
	scanFlags    *options.ScanFlags
}

// Cmd represents the why command.
var Cmd = NewCommand()

// NewCommand returns a new why command instance.
func NewCommand() *cobra.Command {
	opts := &whyOptions{
		outputFormat: formatText,
	}

	cmd := &cobra.Command{
		Use:   "why <file> [entry-point...]",
		Short: "Show how a file is reached from the entry points",
		Long: `Show the shortest chain of imports that leads from one of the entry points
to the given file, explaining why its strings are part of the scan.

Examples:
  i18nscan why src/screens/Settings.ios.js index.js`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWhy(cmd, opts, args[0], args[1:])
		},
	}

	cmd.Flags().StringVarP(
		&opts.outputFormat,
		"format",
		"f",
		opts.outputFormat,
		fmt.Sprintf("Output format (%s)", supportedFormats()))
	opts.scanFlags = options.AddScanFlags(cmd)

	return cmd
}

func runWhy(cmd *cobra.Command, opts *whyOptions, targetArg string, entryPoints []string) error {
	if !isSupportedFormat(opts.outputFormat) {
		return fmt.Errorf("unknown format: %s (valid options: %s)", opts.outputFormat, supportedFormats())
	}

	cfg, err := opts.scanFlags.Load(cmd, entryPoints)
	if err != nil {
		return err
	}

	pathResolver, err := options.NewPathResolver("")
	if err != nil {
		return fmt.Errorf("failed to create path resolver: %w", err)
	}
	target, err := pathResolver.Resolve(options.RawPath(targetArg))
	if err != nil {
		return fmt.Errorf("failed to resolve file %q: %w", targetArg, err)
	}

	report, _, err := collector.Resolve(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	chain, err := depgraph.ImportChain(report.Reachability, target.String())
	if err != nil {
		return err
	}

	output, err := formatChain(opts.outputFormat, report.RootDir, chain)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), output)
	return err
}

func formatChain(format, rootDir string, chain []string) (string, error) {
	relative := make([]string, 0, len(chain))
	for _, file := range chain {
		relative = append(relative, relativePath(rootDir, file))
	}

	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(relative, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case formatDOT:
		return chainDOT(relative)
	default:
		var sb strings.Builder
		for i, file := range relative {
			if i == 0 {
				sb.WriteString(file)
				continue
			}
			sb.WriteString("\n" + strings.Repeat("  ", i-1) + "└─ " + file)
		}
		return sb.String(), nil
	}
}

func chainDOT(chain []string) (string, error) {
	g := graphlib.New(graphlib.StringHash, graphlib.Directed())
	for _, file := range chain {
		if err := g.AddVertex(file); err != nil {
			return "", fmt.Errorf("failed to add vertex %s: %w", file, err)
		}
	}
	for i := 1; i < len(chain); i++ {
		if err := g.AddEdge(chain[i-1], chain[i]); err != nil {
			return "", fmt.Errorf("failed to add edge %s -> %s: %w", chain[i-1], chain[i], err)
		}
	}

	var buf bytes.Buffer
	if err := draw.DOT(g, &buf); err != nil {
		return "", fmt.Errorf("failed to render DOT: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func isSupportedFormat(format string) bool {
	switch format {
	case formatText, formatJSON, formatDOT:
		return true
	default:
		return false
	}
}

func supportedFormats() string {
	return strings.Join([]string{formatText, formatJSON, formatDOT}, ", ")
}
