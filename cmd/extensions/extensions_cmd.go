package extensions

import (
	"fmt"

	"github.com/LegacyCodeHQ/i18nscan/cmd/options"
	"github.com/LegacyCodeHQ/i18nscan/depgraph/resolve"
	"github.com/spf13/cobra"
)

// Cmd represents the extensions command.
var Cmd = NewCommand()

// NewCommand returns a new extensions command instance.
func NewCommand() *cobra.Command {
	var scanFlags *options.ScanFlags

	cmd := &cobra.Command{
		Use:   "extensions",
		Short: "List the platform-qualified extensions a scan resolves, in priority order",
		Long: `List the platform-qualified extensions a scan resolves imports with, one
resolver per line, in the order their results are merged.

Examples:
  i18nscan extensions --platform ios,android`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := scanFlags.Load(cmd, nil)
			if err != nil {
				return err
			}

			for _, ext := range resolve.PlatformExtensions(cfg.Platforms, cfg.Extensions) {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), ".%s\n", ext); err != nil {
					return err
				}
			}
			return nil
		},
	}
	scanFlags = options.AddScanFlags(cmd)

	return cmd
}
