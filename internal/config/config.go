// Package config loads the settings of a scan from defaults, an optional
// config file, the environment and explicit overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/LegacyCodeHQ/i18nscan/depgraph/modulemap"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "i18nscan"
	// ConfigFileName is the name of the config file looked up in the working directory (without extension).
	ConfigFileName = ".i18nscan"
	// EnvPrefix prefixes every environment variable read by Load, e.g. I18NSCAN_ROOTDIR.
	EnvPrefix = "I18NSCAN"
)

// Config is the full set of options of a scan.
type Config struct {
	EntryPoints           []string `mapstructure:"entryPoints" json:"entryPoints" validate:"required,min=1,dive,required"`
	RootDir               string   `mapstructure:"rootDir" json:"rootDir" validate:"required"`
	Platforms             []string `mapstructure:"platforms" json:"platforms" validate:"dive,required"`
	Extensions            []string `mapstructure:"extensions" json:"extensions" validate:"required,min=1,dive,required"`
	ExtractorFunctionName string   `mapstructure:"extractorFunctionName" json:"extractorFunctionName" validate:"required"`
	Concurrency           int      `mapstructure:"concurrency" json:"concurrency" validate:"gte=0"`
	HasCoreModules        bool     `mapstructure:"hasCoreModules" json:"hasCoreModules"`
	RootRelativeImports   bool     `mapstructure:"rootRelativeImports" json:"rootRelativeImports"`
	SkipDirs              []string `mapstructure:"skipDirs" json:"skipDirs"`
}

// Default returns the configuration used when nothing else is provided.
func Default() Config {
	return Config{
		EntryPoints:           []string{},
		RootDir:               ".",
		Platforms:             []string{},
		Extensions:            []string{"js", "jsx", "ts", "tsx"},
		ExtractorFunctionName: "t",
		Concurrency:           runtime.NumCPU(),
		HasCoreModules:        true,
		SkipDirs:              append([]string(nil), modulemap.DefaultSkipDirs...),
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFile is used exclusively when set; it must exist.
	ConfigFile string
	// Dir is searched for .i18nscan.{yaml,yml,json,toml} when ConfigFile is empty.
	Dir string
	// Overrides take precedence over every other source. Keys are Config's mapstructure names.
	Overrides map[string]any
}

// Load layers defaults, the config file, I18NSCAN_* environment variables and
// opts.Overrides, then normalizes and validates the result. Entry points are
// not required here; Validate checks them.
func Load(opts LoadOptions) (Config, string, error) {
	v := viper.New()

	defaults := Default()
	v.SetDefault("entryPoints", defaults.EntryPoints)
	v.SetDefault("rootDir", defaults.RootDir)
	v.SetDefault("platforms", defaults.Platforms)
	v.SetDefault("extensions", defaults.Extensions)
	v.SetDefault("extractorFunctionName", defaults.ExtractorFunctionName)
	v.SetDefault("concurrency", defaults.Concurrency)
	v.SetDefault("hasCoreModules", defaults.HasCoreModules)
	v.SetDefault("rootRelativeImports", defaults.RootRelativeImports)
	v.SetDefault("skipDirs", defaults.SkipDirs)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, "", fmt.Errorf("failed to read config file %s: %w", opts.ConfigFile, err)
		}
		resolvedPath = opts.ConfigFile
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, "", fmt.Errorf("failed to read config file: %w", err)
			}
		} else {
			resolvedPath = v.ConfigFileUsed()
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, "", err
	}
	if err := validationError(validate.StructExcept(cfg, "EntryPoints")); err != nil {
		return Config{}, "", err
	}

	return cfg, resolvedPath, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field, including that at least one entry point is set.
func (c Config) Validate() error {
	return validationError(validate.Struct(c))
}

func (c *Config) normalize() error {
	extensions, err := NormalizeExtensions("extensions", c.Extensions)
	if err != nil {
		return err
	}
	c.Extensions = extensions

	if len(c.Platforms) > 0 {
		platforms, err := NormalizeExtensions("platforms", c.Platforms)
		if err != nil {
			return err
		}
		c.Platforms = platforms
	}

	if c.Concurrency == 0 {
		c.Concurrency = runtime.NumCPU()
	}
	return nil
}

// NormalizeExtensions trims whitespace and leading dots, lowercases and
// deduplicates extension-like values, preserving their order.
func NormalizeExtensions(field string, values []string) ([]string, error) {
	exts := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))

	for _, value := range values {
		ext := strings.TrimSpace(value)
		if ext == "" {
			return nil, fmt.Errorf("%s cannot contain empty values", field)
		}
		if strings.ContainsAny(ext, `/\`) {
			return nil, fmt.Errorf("%s must be file extensions, got %q", field, value)
		}
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext == "" {
			return nil, fmt.Errorf("%s must include extension characters", field)
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}

	if len(exts) == 0 {
		return nil, fmt.Errorf("%s cannot be empty", field)
	}
	return exts, nil
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}
