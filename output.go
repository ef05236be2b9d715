package beamlint

import (
	"fmt"
	"io"
)

// OutputFormat represents the report output format.
type OutputFormat string

const (
	// OutputIssues shows diagnostics only, golangci-lint style (CI-friendly).
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows run statistics and the status line only.
	OutputSummary OutputFormat = "summary"
	// OutputJSON exports structured data for tooling integration.
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from the flag value.
// Issues-only is the default: clean, fast, consistent everywhere.
func DetermineOutputFormat(requested string, quiet bool) OutputFormat {
	if quiet {
		return OutputIssues // suppressed by the caller, exit code only
	}
	switch requested {
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "json":
		return OutputJSON
	}
	return OutputIssues
}

// OutputOptions controls rendering details of the textual formats.
type OutputOptions struct {
	UseColors bool
	PrintRule bool // show the (rule:...) suffix on each line
}

// WriteOutput writes the report in the requested format.
func WriteOutput(w io.Writer, report *Report, format OutputFormat, opts OutputOptions) error {
	switch format {
	case OutputSummary:
		reporter := NewReporter(w, opts.UseColors, opts.PrintRule)
		printStatistics(w, report)
		reporter.PrintSummary(report)

	case OutputJSON:
		return WriteJSON(w, report)

	default: // OutputIssues
		reporter := NewReporter(w, opts.UseColors, opts.PrintRule)
		reporter.PrintDiagnostics(report.Diagnostics)
		reporter.PrintSummary(report)
	}
	return nil
}

func printStatistics(w io.Writer, report *Report) {
	fmt.Fprintf(w, "Files checked:      %d\n", report.FilesChecked)
	fmt.Fprintf(w, "Selectors parsed:   %d\n", report.SelectorsParsed)
	fmt.Fprintf(w, "Elements observed:  %d\n", report.Observations)
	fmt.Fprintf(w, "Variables tracked:  %d\n", report.VariablesTracked)
	fmt.Fprintf(w, "Errors:             %d\n", report.ErrorCount())
	fmt.Fprintf(w, "Warnings:           %d\n", report.WarningCount())
}
