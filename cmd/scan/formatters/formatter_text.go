package formatters

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/LegacyCodeHQ/i18nscan/collector"
	"github.com/charmbracelet/lipgloss"
)

const (
	colorTitle   = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
)

type renderFunc func(strs ...string) string

type textStyles struct {
	title   renderFunc
	muted   renderFunc
	success renderFunc
	error   renderFunc
}

func plain(strs ...string) string {
	return strings.Join(strs, " ")
}

func newTextStyles(renderer *lipgloss.Renderer) textStyles {
	if renderer == nil {
		return textStyles{title: plain, muted: plain, success: plain, error: plain}
	}
	return textStyles{
		title:   renderer.NewStyle().Bold(true).Foreground(colorTitle).Render,
		muted:   renderer.NewStyle().Foreground(colorMuted).Render,
		success: renderer.NewStyle().Foreground(colorSuccess).Render,
		error:   renderer.NewStyle().Bold(true).Foreground(colorError).Render,
	}
}

// TextFormatter formats reports as a human-readable summary.
type TextFormatter struct{}

// Format renders counts, failed files relative to the root directory and,
// with opts.ShowStrings, every unique string quoted one per line.
func (f *TextFormatter) Format(report *collector.Report, opts FormatOptions) (string, error) {
	styles := newTextStyles(opts.Renderer)
	var sb strings.Builder

	sb.WriteString(styles.title("Scanned "+report.RootDir) + "\n")
	fmt.Fprintf(&sb, "Reachable files: %s\n", styles.success(strconv.Itoa(report.ReachableFileCount())))

	if len(report.Failures) > 0 {
		fmt.Fprintf(&sb, "Files with errors: %s\n", styles.error(strconv.Itoa(len(report.Failures))))
		for _, failure := range report.Failures {
			fmt.Fprintf(&sb, "  %s %s\n", relativePath(report.RootDir, failure.File), styles.muted("("+string(failure.Kind)+")"))
		}
	} else {
		sb.WriteString("Files with errors: 0\n")
	}

	fmt.Fprintf(&sb, "Strings found: %d\n", len(report.StringsFound))
	fmt.Fprintf(&sb, "Unique strings: %d\n", len(report.UniqueStrings))

	if opts.ShowStrings {
		for _, value := range report.UniqueStrings {
			sb.WriteString("  " + strconv.Quote(value) + "\n")
		}
	}

	return sb.String(), nil
}

func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
