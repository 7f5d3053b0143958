package formatters_test

import (
	"io/fs"
	"testing"

	"github.com/LegacyCodeHQ/i18nscan/cmd/scan/formatters"
	"github.com/LegacyCodeHQ/i18nscan/collector"
	"github.com/LegacyCodeHQ/i18nscan/extract"
	"github.com/LegacyCodeHQ/i18nscan/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *collector.Report {
	return &collector.Report{
		RootDir:        "/app",
		ReachableFiles: []string{"/app/index.js", "/app/screens/Home.tsx", "/app/broken.js", "/app/gone.js"},
		ErrorFiles:     []string{"/app/broken.js", "/app/gone.js"},
		Failures: []extract.Failure{
			{File: "/app/broken.js", Kind: extract.FailureParse},
			{File: "/app/gone.js", Kind: extract.FailureRead, Err: &fs.PathError{Op: "open", Path: "/app/gone.js", Err: fs.ErrNotExist}},
		},
		StringsFound:  []string{"Save", "Cancel", "Save", `Say "hi"`},
		UniqueStrings: []string{"Save", "Cancel", `Say "hi"`},
	}
}

func TestTextFormatter_Summary(t *testing.T) {
	formatter := &formatters.TextFormatter{}

	output, err := formatter.Format(sampleReport(), formatters.FormatOptions{})
	require.NoError(t, err)

	g := testhelpers.TextGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestTextFormatter_ShowStrings(t *testing.T) {
	formatter := &formatters.TextFormatter{}

	output, err := formatter.Format(sampleReport(), formatters.FormatOptions{ShowStrings: true})
	require.NoError(t, err)

	g := testhelpers.TextGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestTextFormatter_NoFailures(t *testing.T) {
	report := &collector.Report{
		RootDir:        "/app",
		ReachableFiles: []string{"/app/index.js"},
		StringsFound:   []string{"Hello"},
		UniqueStrings:  []string{"Hello"},
	}

	output, err := (&formatters.TextFormatter{}).Format(report, formatters.FormatOptions{})
	require.NoError(t, err)

	assert.Contains(t, output, "Files with errors: 0\n")
	assert.Contains(t, output, "Reachable files: 1\n")
}

func TestJSONFormatter_Report(t *testing.T) {
	formatter := &formatters.JSONFormatter{}

	output, err := formatter.Format(sampleReport(), formatters.FormatOptions{})
	require.NoError(t, err)

	g := testhelpers.JSONGoldie(t)
	g.Assert(t, t.Name(), []byte(output))
}

func TestJSONFormatter_EmptyReportUsesEmptyArrays(t *testing.T) {
	output, err := (&formatters.JSONFormatter{}).Format(&collector.Report{RootDir: "/app"}, formatters.FormatOptions{})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"rootDir": "/app",
		"reachableFileCount": 0,
		"errorFiles": [],
		"failures": [],
		"stringsFound": [],
		"uniqueStrings": []
	}`, output)
}

func TestNewFormatter(t *testing.T) {
	text, err := formatters.NewFormatter("TEXT")
	require.NoError(t, err)
	assert.IsType(t, &formatters.TextFormatter{}, text)

	jsonFormatter, err := formatters.NewFormatter("json")
	require.NoError(t, err)
	assert.IsType(t, &formatters.JSONFormatter{}, jsonFormatter)

	_, err = formatters.NewFormatter("yaml")
	assert.EqualError(t, err, "unknown format: yaml (valid options: text, json)")
}

func TestParseOutputFormat(t *testing.T) {
	format, ok := formatters.ParseOutputFormat("json")

	assert.True(t, ok)
	assert.Equal(t, formatters.OutputFormatJSON, format)
}
