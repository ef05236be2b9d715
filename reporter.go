package beamlint

import (
	"fmt"
	"io"
	"os"
)

// Reporter formats diagnostics for terminal output, grouped by file.
type Reporter struct {
	w         io.Writer
	useColors bool
	printRule bool
}

// NewReporter creates a reporter. Colors follow the explicit flag, the
// FORCE_COLOR / GITHUB_ACTIONS environment, or TTY detection.
func NewReporter(w io.Writer, useColors, printRule bool) *Reporter {
	return &Reporter{
		w:         w,
		useColors: useColors || shouldUseColors(),
		printRule: printRule,
	}
}

func shouldUseColors() bool {
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// PrintDiagnostics writes diagnostics in `file:line:col: message (rule)`
// form. Input is expected in aggregator order, so equal files are adjacent
// and a header per file is enough to group them.
func (r *Reporter) PrintDiagnostics(diags []Diagnostic) {
	currentFile := ""
	for _, d := range diags {
		p := d.Primary()
		if p.File != currentFile {
			if currentFile != "" {
				fmt.Fprintln(r.w, "")
			}
			currentFile = p.File
			fmt.Fprintln(r.w, RenderStyle(StyleCyan, currentFile, r.useColors))
		}
		r.printDiagnostic(d)
	}
}

func (r *Reporter) printDiagnostic(d Diagnostic) {
	p := d.Primary()
	location := fmt.Sprintf("%s:%d:%d:", p.File, p.Line, p.Column)

	ruleSuffix := ""
	if r.printRule {
		ruleSuffix = fmt.Sprintf(" (%s)", d.Rule)
	}

	severity := RenderStyle(StyleRed, d.Severity, r.useColors)
	if d.Severity == SeverityWarning {
		severity = RenderStyle(StyleYellow, d.Severity, r.useColors)
	}

	fmt.Fprintf(r.w, "%s %s: %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		severity,
		d.Message,
		RenderStyle(StyleGray, ruleSuffix, r.useColors))

	if d.SuggestedFix != "" {
		fmt.Fprintf(r.w, "\tsuggested fix: %s\n", d.SuggestedFix)
	}
	for _, loc := range d.Locations[1:] {
		fmt.Fprintf(r.w, "\talso at %s\n", loc)
	}
}

// PrintSummary writes the issue counts and the final status line.
func (r *Reporter) PrintSummary(report *Report) {
	errors := report.ErrorCount()
	warnings := report.WarningCount()
	total := len(report.Diagnostics)

	fmt.Fprintln(r.w, "")
	if total > 0 {
		if errors > 0 && warnings > 0 {
			fmt.Fprintf(r.w, "%s (%s, %s)\n",
				pluralizeCount(total, "finding", "findings"),
				pluralizeCount(errors, "error", "errors"),
				pluralizeCount(warnings, "warning", "warnings"))
		} else {
			fmt.Fprintf(r.w, "%s\n", pluralizeCount(total, "finding", "findings"))
		}
	}

	switch report.Status {
	case StatusClean:
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "✓ clean", r.useColors))
	case StatusWarnings:
		fmt.Fprintln(r.w, RenderStyle(StyleYellow, "⚠ warnings", r.useColors))
	case StatusFailed:
		fmt.Fprintln(r.w, RenderStyle(StyleRed, "✗ failed", r.useColors))
	case StatusCancelled:
		fmt.Fprintln(r.w, RenderStyle(StyleYellow, "cancelled", r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form.
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
