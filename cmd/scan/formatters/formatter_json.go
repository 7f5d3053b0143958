package formatters

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/i18nscan/collector"
)

type jsonFailure struct {
	File  string `json:"file"`
	Kind  string `json:"kind"`
	Error string `json:"error,omitempty"`
}

type jsonReport struct {
	RootDir            string        `json:"rootDir"`
	ReachableFileCount int           `json:"reachableFileCount"`
	ErrorFiles         []string      `json:"errorFiles"`
	Failures           []jsonFailure `json:"failures"`
	StringsFound       []string      `json:"stringsFound"`
	UniqueStrings      []string      `json:"uniqueStrings"`
}

// JSONFormatter formats reports as JSON.
type JSONFormatter struct{}

// Format converts the report to indented JSON.
// The opts parameter is accepted for interface compatibility but not used.
func (f *JSONFormatter) Format(report *collector.Report, _ FormatOptions) (string, error) {
	out := jsonReport{
		RootDir:            report.RootDir,
		ReachableFileCount: report.ReachableFileCount(),
		ErrorFiles:         nonNil(report.ErrorFiles),
		Failures:           make([]jsonFailure, 0, len(report.Failures)),
		StringsFound:       nonNil(report.StringsFound),
		UniqueStrings:      nonNil(report.UniqueStrings),
	}
	for _, failure := range report.Failures {
		entry := jsonFailure{File: failure.File, Kind: string(failure.Kind)}
		if failure.Err != nil {
			entry.Error = failure.Err.Error()
		}
		out.Failures = append(out.Failures, entry)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
