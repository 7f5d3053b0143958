package cmd

import (
	"os"

	"github.com/LegacyCodeHQ/i18nscan/cmd/extensions"
	"github.com/LegacyCodeHQ/i18nscan/cmd/files"
	"github.com/LegacyCodeHQ/i18nscan/cmd/scan"
	"github.com/LegacyCodeHQ/i18nscan/cmd/watch"
	"github.com/LegacyCodeHQ/i18nscan/cmd/why"
	"github.com/LegacyCodeHQ/i18nscan/internal/logging"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// verbose enables debug logging for every command
var verbose bool

// configFile overrides the .i18nscan config file lookup
var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCommand()

// NewRootCommand returns the root command with every subcommand registered.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "i18nscan",
		Short: "Collect translatable strings reachable from your app's entry points",
		Long: `i18nscan follows the imports of a JavaScript or TypeScript app from its entry
points, across every platform-specific variant (Foo.ios.js, Foo.android.js, ...),
and collects the literal strings passed to the translation function.

Use 'i18nscan --help' to see all available commands, or 'i18nscan <command> --help'
for detailed information about a specific command.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Install(cmd.ErrOrStderr(), verbose)
		},
	}

	cmd.AddCommand(scan.NewCommand())
	cmd.AddCommand(files.NewCommand())
	cmd.AddCommand(why.NewCommand())
	cmd.AddCommand(watch.NewCommand())
	cmd.AddCommand(extensions.NewCommand())

	// Initialize annotations for version template
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	cmd.Annotations["buildDate"] = buildDate
	cmd.Annotations["commit"] = commit

	// Customize version template to show additional build info
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log resolution and parse diagnostics to stderr")
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: .i18nscan.{yaml,json,toml} in the current directory)")

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
