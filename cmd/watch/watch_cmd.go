package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/LegacyCodeHQ/i18nscan/cmd/options"
	"github.com/LegacyCodeHQ/i18nscan/cmd/scan"
	"github.com/LegacyCodeHQ/i18nscan/cmd/scan/formatters"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	outputFormat string
	showStrings  bool
	scanFlags    *options.ScanFlags
}

// Cmd represents the watch command.
var Cmd = NewCommand()

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{
		outputFormat: formatters.OutputFormatText.String(),
	}

	cmd := &cobra.Command{
		Use:   "watch [entry-point...]",
		Short: "Rescan whenever a source file under the root changes",
		Long: `Run a scan, then watch the root directory and run it again whenever a
recognized source file is written, created, removed or renamed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args)
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

func runWatch(cmd *cobra.Command, opts *watchOptions, args []string) error {
	formatter, err := formatters.NewFormatter(opts.outputFormat)
	if err != nil {
		return err
	}

	cfg, err := opts.scanFlags.Load(cmd, args)
	if err != nil {
		return err
	}

	paths, err := options.NewPathResolver("")
	if err != nil {
		return err
	}
	root, err := paths.Resolve(options.RawPath(cfg.RootDir))
	if err != nil {
		return fmt.Errorf("failed to resolve root directory: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	formatOpts := formatters.FormatOptions{ShowStrings: opts.showStrings}
	if err := scan.Render(ctx, cmd, cfg, formatter, formatOpts); err != nil {
		return fmt.Errorf("initial scan failed: %w", err)
	}

	w, err := newSourceWatcher(root.String(), cfg.Extensions, cfg.SkipDirs)
	if err != nil {
		return fmt.Errorf("failed to watch directories: %w", err)
	}
	defer w.Close()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s\n", root)
	fmt.Fprintf(cmd.ErrOrStderr(), "Press Ctrl+C to stop\n")

	var mu sync.Mutex
	return w.run(ctx, func() {
		mu.Lock()
		defer mu.Unlock()
		rescan(ctx, cmd, func() error {
			return scan.Render(ctx, cmd, cfg, formatter, formatOpts)
		})
	})
}

func rescan(ctx context.Context, cmd *cobra.Command, render func() error) {
	if ctx.Err() != nil {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Change detected, rescanning...")
	if err := render(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "scan error: %v\n", err)
	}
}
