// Package formatters renders a scan report for the terminal or for tools.
package formatters

import (
	"fmt"

	"github.com/LegacyCodeHQ/i18nscan/collector"
	"github.com/charmbracelet/lipgloss"
)

// FormatOptions contains optional parameters for formatting reports.
type FormatOptions struct {
	// Renderer styles text output; nil means no styling.
	Renderer *lipgloss.Renderer
	// ShowStrings lists every unique string in text output.
	ShowStrings bool
}

// Formatter is the interface that all report formatters must implement.
type Formatter interface {
	Format(report *collector.Report, opts FormatOptions) (string, error)
}

// NewFormatter creates a Formatter for the specified format type.
func NewFormatter(format string) (Formatter, error) {
	f, ok := ParseOutputFormat(format)
	if !ok {
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, SupportedFormats())
	}

	switch f {
	case OutputFormatText:
		return &TextFormatter{}, nil
	case OutputFormatJSON:
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (valid options: %s)", format, SupportedFormats())
	}
}
