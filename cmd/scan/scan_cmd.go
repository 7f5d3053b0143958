package scan

import (
	"context"
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/i18nscan/cmd/options"
	"github.com/LegacyCodeHQ/i18nscan/cmd/scan/formatters"
	"github.com/LegacyCodeHQ/i18nscan/collector"
	"github.com/LegacyCodeHQ/i18nscan/internal/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type scanOptions struct {
	outputFormat string
	showStrings  bool
	scanFlags    *options.ScanFlags
}

// Cmd represents the scan command.
var Cmd = NewCommand()

// NewCommand returns a new scan command instance.
func NewCommand() *cobra.Command {
	opts := &scanOptions{
		outputFormat: formatters.OutputFormatText.String(),
	}

	cmd := &cobra.Command{
		Use:   "scan [entry-point...]",
		Short: "Collect translatable strings reachable from the entry points",
		Long: `Collect the literal string arguments of translation calls in every file
reachable from the entry points, across all platform variants.

Files are parsed as JavaScript, TypeScript or TSX. Flow-only syntax
(?string, {| exact |} objects, opaque type) does not parse; such files are
listed as parse failures and their strings are not collected.

Examples:
  i18nscan scan index.js
  i18nscan scan --platform ios,android --extractor getString index.js
  i18nscan scan --format json src/App.tsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(
		&opts.outputFormat,
		"format",
		"f",
		opts.outputFormat,
		fmt.Sprintf("Output format (%s)", formatters.SupportedFormats()))
	cmd.Flags().BoolVarP(&opts.showStrings, "strings", "s", false, "List every unique string in text output")
	opts.scanFlags = options.AddScanFlags(cmd)

	return cmd
}

func runScan(cmd *cobra.Command, opts *scanOptions, args []string) error {
	formatter, err := formatters.NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}

	cfg, err := opts.scanFlags.Load(cmd, args)
	if err != nil {
		return err
	}

	return Render(cmd.Context(), cmd, cfg, formatter, formatters.FormatOptions{ShowStrings: opts.showStrings})
}

// Render runs the pipeline for cfg and writes the formatted report to the
// command's output.
func Render(ctx context.Context, cmd *cobra.Command, cfg config.Config, formatter formatters.Formatter, formatOpts formatters.FormatOptions) error {
	report, err := collector.Collect(ctx, cfg)
	if err != nil {
		return err
	}

	if formatOpts.Renderer == nil {
		if _, ok := formatter.(*formatters.TextFormatter); ok {
			formatOpts.Renderer = lipgloss.NewRenderer(cmd.OutOrStdout())
		}
	}

	output, err := formatter.Format(report, formatOpts)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	if !strings.HasSuffix(output, "\n") {
		output += "\n"
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), output)
	return err
}
