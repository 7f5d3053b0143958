// Package options holds the flags and path handling shared by the scanning commands.
package options

import (
	"fmt"

	"github.com/LegacyCodeHQ/i18nscan/internal/config"
	"github.com/spf13/cobra"
)

// ScanFlags are the flags every command that runs the pipeline accepts.
// Flags that were not set on the command line leave the config file and
// environment values untouched.
type ScanFlags struct {
	rootDir       string
	platforms     []string
	extensions    []string
	extractorName string
	concurrency   int
	coreModules   bool
	rootRelative  bool
}

// AddScanFlags registers the pipeline flags on cmd.
func AddScanFlags(cmd *cobra.Command) *ScanFlags {
	defaults := config.Default()
	f := &ScanFlags{}

	cmd.Flags().StringVarP(&f.rootDir, "root", "r", defaults.RootDir, "Root directory to index")
	cmd.Flags().StringSliceVarP(&f.platforms, "platform", "p", nil, "Platforms to resolve variants for, in priority order (comma-separated, e.g. ios,android)")
	cmd.Flags().StringSliceVarP(&f.extensions, "ext", "e", defaults.Extensions, "Recognized source file extensions (comma-separated)")
	cmd.Flags().StringVarP(&f.extractorName, "extractor", "x", defaults.ExtractorFunctionName, "Name of the translation function whose string arguments are collected")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "j", 0, "Maximum number of files parsed at once (default: number of CPUs)")
	cmd.Flags().BoolVar(&f.coreModules, "core-modules", defaults.HasCoreModules, "Treat Node.js core modules as unresolvable instead of searching node_modules")
	cmd.Flags().BoolVar(&f.rootRelative, "root-relative", defaults.RootRelativeImports, "Resolve bare imports missing from node_modules against the root directory (src/components/Foo)")

	return f
}

// Load builds the configuration for cmd. Positional entry points replace the
// configured ones.
func (f *ScanFlags) Load(cmd *cobra.Command, entryPoints []string) (config.Config, error) {
	overrides := make(map[string]any)
	flags := cmd.Flags()

	if flags.Changed("root") {
		overrides["rootDir"] = f.rootDir
	}
	if flags.Changed("platform") {
		overrides["platforms"] = f.platforms
	}
	if flags.Changed("ext") {
		overrides["extensions"] = f.extensions
	}
	if flags.Changed("extractor") {
		overrides["extractorFunctionName"] = f.extractorName
	}
	if flags.Changed("concurrency") {
		overrides["concurrency"] = f.concurrency
	}
	if flags.Changed("core-modules") {
		overrides["hasCoreModules"] = f.coreModules
	}
	if flags.Changed("root-relative") {
		overrides["rootRelativeImports"] = f.rootRelative
	}
	if len(entryPoints) > 0 {
		overrides["entryPoints"] = entryPoints
	}

	configFile := ""
	if flag := cmd.Flag("config"); flag != nil {
		configFile = flag.Value.String()
	}

	cfg, _, err := config.Load(config.LoadOptions{
		ConfigFile: configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
