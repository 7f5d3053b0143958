package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

var supportedFormats = []OutputFormat{OutputFormatText, OutputFormatJSON}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat converts a user-supplied name into an OutputFormat.
func ParseOutputFormat(value string) (OutputFormat, bool) {
	for _, format := range supportedFormats {
		if strings.EqualFold(value, format.String()) {
			return format, true
		}
	}
	return "", false
}

// SupportedFormats lists the accepted format names for help and error text.
func SupportedFormats() string {
	names := make([]string, 0, len(supportedFormats))
	for _, format := range supportedFormats {
		names = append(names, format.String())
	}
	return strings.Join(names, ", ")
}
